// Package seeddata embeds the default reference data so the binaries can
// start without any files on disk besides the ledger.
package seeddata

import _ "embed"

// Pakistan is the default network and timetable, loaded by seed.LoadDefault.
//
//go:embed pakistan.yaml
var Pakistan []byte
