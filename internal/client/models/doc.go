// Package models defines the records AcadMate persists in the key/value store
// and the store keys they live under. The JSON field names are part of the
// on-disk format and must not change.
package models
