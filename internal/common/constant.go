// Package common contains shared constants and sentinel errors used across
// AcadMate components.
package common

// KeyPrefix is the namespace every persisted AcadMate key starts with.
const KeyPrefix = "acadmate-"

// MinPasswordLength is the minimum number of characters in a password.
const MinPasswordLength = 6
