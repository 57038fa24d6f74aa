package registry

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/acadmate/internal/client/models"
	"github.com/dmitrijs2005/acadmate/internal/common"
	"github.com/dmitrijs2005/acadmate/internal/kvstore"
)

type Profiles struct {
	store kvstore.Store
}

func NewProfiles(store kvstore.Store) *Profiles {
	return &Profiles{store: store}
}

func (p *Profiles) load(ctx context.Context) (models.Profiles, error) {
	all := models.Profiles{}
	if _, err := loadJSON(ctx, p.store, models.KeyProfiles, &all); err != nil {
		return nil, err
	}
	if all == nil {
		all = models.Profiles{}
	}
	return all, nil
}

func (p *Profiles) Get(ctx context.Context, email string) (models.Profile, bool, error) {
	all, err := p.load(ctx)
	if err != nil {
		return models.Profile{}, false, err
	}
	prof, ok := all[email]
	return prof, ok, nil
}

// Upsert stores profile under its email, replacing any previous record.
func (p *Profiles) Upsert(ctx context.Context, profile models.Profile) error {
	if profile.Email == "" {
		return fmt.Errorf("upsert profile: %w: email is required", common.ErrValidation)
	}
	all, err := p.load(ctx)
	if err != nil {
		return err
	}
	all[profile.Email] = profile
	return saveJSON(ctx, p.store, models.KeyProfiles, all)
}

// Remove deletes the profile of email. Removing a missing profile is a no-op.
func (p *Profiles) Remove(ctx context.Context, email string) error {
	all, err := p.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := all[email]; !ok {
		return nil
	}
	delete(all, email)
	return saveJSON(ctx, p.store, models.KeyProfiles, all)
}

// Ensure returns the profile for email, creating the default one when the
// account has none.
func (p *Profiles) Ensure(ctx context.Context, email string) (models.Profile, error) {
	prof, ok, err := p.Get(ctx, email)
	if err != nil {
		return models.Profile{}, err
	}
	if ok {
		return prof, nil
	}
	prof = models.DefaultProfile(email)
	if err := p.Upsert(ctx, prof); err != nil {
		return models.Profile{}, err
	}
	return prof, nil
}
