// Package migrations embeds the SQL migrations for the Postgres booking
// ledger and applies them through the goose provider API.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
