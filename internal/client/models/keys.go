package models

// Store keys. Everything AcadMate writes lives under one of these.
const (
	KeySession    = "acadmate-user"
	KeyUsers      = "acadmate-users"
	KeyProfiles   = "acadmate-profiles"
	KeyNotes      = "acadmate-notes"
	KeyPdfFolders = "acadmate-pdf-folders"
)

// DefaultFolder is present in every library that has never been saved.
const DefaultFolder = "General"

// Credentials maps an email to its stored password credential.
type Credentials map[string]string
