// Package domain contains the core data types for the rail booking system.
// This package has zero external dependencies and is imported by every other
// internal package (refdata, repo, service, handler).
package domain

// Station is a named node in the rail network.
// Name is the identity and is compared case-sensitively.
type Station struct {
	Name   string  `json:"name"`
	Tracks []Track `json:"tracks"`
}

// Track is a directed, distance-weighted link owned by its From station.
// A bidirectional physical route is two Tracks, one per direction.
type Track struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Distance int    `json:"distance"`
}
