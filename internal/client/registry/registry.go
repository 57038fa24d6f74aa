package registry

import (
	"github.com/dmitrijs2005/acadmate/internal/kvstore"
)

// Registry bundles every registry over one store.
type Registry struct {
	Session  *Session
	Profiles *Profiles
	Accounts *Accounts
	Notes    *Notes
	Library  *PdfLibrary
}

// New wires the registries. passwordScheme selects how new credentials are
// stored (see cryptox).
func New(store kvstore.Store, passwordScheme string) *Registry {
	session := NewSession(store)
	profiles := NewProfiles(store)
	return &Registry{
		Session:  session,
		Profiles: profiles,
		Accounts: NewAccounts(store, profiles, session, passwordScheme),
		Notes:    NewNotes(store),
		Library:  NewPdfLibrary(store),
	}
}
