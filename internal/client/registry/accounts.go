package registry

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/dmitrijs2005/acadmate/internal/client/models"
	"github.com/dmitrijs2005/acadmate/internal/common"
	"github.com/dmitrijs2005/acadmate/internal/cryptox"
	"github.com/dmitrijs2005/acadmate/internal/kvstore"
	"github.com/dmitrijs2005/acadmate/internal/logging"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether email has the shape local@domain.tld.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Accounts manages credentials.
//
// With the plain scheme passwords are stored verbatim, which is how existing
// stores were written. That is a known weakness; the argon2id scheme stores a
// salted hash instead and upgrades plaintext records on the next login.
type Accounts struct {
	store    kvstore.Store
	profiles *Profiles
	session  *Session
	scheme   string
	log      logging.Logger
}

func NewAccounts(store kvstore.Store, profiles *Profiles, session *Session, scheme string) *Accounts {
	if scheme == "" {
		scheme = cryptox.SchemePlain
	}
	return &Accounts{store: store, profiles: profiles, session: session, scheme: scheme, log: logging.Discard()}
}

// SetLogger sets where failures that do not fail the operation are reported.
func (a *Accounts) SetLogger(l logging.Logger) {
	if l != nil {
		a.log = l
	}
}

func (a *Accounts) load(ctx context.Context) (models.Credentials, error) {
	creds := models.Credentials{}
	if _, err := loadJSON(ctx, a.store, models.KeyUsers, &creds); err != nil {
		return nil, err
	}
	if creds == nil {
		creds = models.Credentials{}
	}
	return creds, nil
}

func (a *Accounts) save(ctx context.Context, creds models.Credentials) error {
	return saveJSON(ctx, a.store, models.KeyUsers, creds)
}

// Register creates an account with its default profile and signs it in.
func (a *Accounts) Register(ctx context.Context, email, password, confirm string) error {
	if !ValidEmail(email) {
		return fmt.Errorf("register: %w", common.ErrInvalidEmail)
	}
	if utf8.RuneCountInString(password) < common.MinPasswordLength {
		return fmt.Errorf("register: %w", common.ErrWeakPassword)
	}
	if password != confirm {
		return fmt.Errorf("register: %w", common.ErrPasswordMismatch)
	}

	creds, err := a.load(ctx)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if _, ok := creds[email]; ok {
		return fmt.Errorf("register: %w", common.ErrAlreadyExists)
	}

	prev, hadPrev, err := a.profiles.Get(ctx, email)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	creds[email] = cryptox.Encode(a.scheme, password)
	if err := a.save(ctx, creds); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	// on failure below, leave neither a credential nor a new profile behind
	undo := func(cause error) error {
		var errs []error
		if hadPrev {
			errs = append(errs, a.profiles.Upsert(ctx, prev))
		} else {
			errs = append(errs, a.profiles.Remove(ctx, email))
		}
		delete(creds, email)
		errs = append(errs, a.save(ctx, creds))
		if rbErr := errors.Join(errs...); rbErr != nil {
			return fmt.Errorf("register: %w (rollback: %w)", cause, rbErr)
		}
		return fmt.Errorf("register: %w", cause)
	}

	if err := a.profiles.Upsert(ctx, models.DefaultProfile(email)); err != nil {
		return undo(err)
	}
	if err := a.session.Start(ctx, email); err != nil {
		return undo(err)
	}
	return nil
}

// Login checks the password and starts a session for email.
func (a *Accounts) Login(ctx context.Context, email, password string) error {
	if !ValidEmail(email) {
		return fmt.Errorf("login: %w", common.ErrInvalidEmail)
	}

	creds, err := a.load(ctx)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	stored, ok := creds[email]
	if !ok {
		return fmt.Errorf("login: %w", common.ErrInvalidCredentials)
	}
	if !cryptox.VerifyPassword(stored, password) {
		return fmt.Errorf("login: %w", common.ErrInvalidCredentials)
	}

	if a.scheme == cryptox.SchemeArgon2id && !cryptox.IsHashed(stored) {
		creds[email] = cryptox.HashPassword(password)
		// a failed upgrade keeps the old record, which still verifies
		if err := a.save(ctx, creds); err != nil {
			a.log.Warn(ctx, "credential upgrade failed", "email", email, "error", err)
		}
	}

	if err := a.session.Start(ctx, email); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

// ChangePassword replaces the password of email after checking the current
// one. The stored credential is untouched on any failure.
func (a *Accounts) ChangePassword(ctx context.Context, email, current, next, confirm string) error {
	if utf8.RuneCountInString(next) < common.MinPasswordLength {
		return fmt.Errorf("change password: %w", common.ErrWeakPassword)
	}
	if next != confirm {
		return fmt.Errorf("change password: %w", common.ErrPasswordMismatch)
	}

	creds, err := a.load(ctx)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	stored, ok := creds[email]
	if !ok {
		return fmt.Errorf("change password: %w", common.ErrInvalidCredentials)
	}
	if !cryptox.VerifyPassword(stored, current) {
		return fmt.Errorf("change password: %w", common.ErrInvalidCredentials)
	}

	creds[email] = cryptox.Encode(a.scheme, next)
	if err := a.save(ctx, creds); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

// Exists reports whether an account is registered for email.
func (a *Accounts) Exists(ctx context.Context, email string) (bool, error) {
	creds, err := a.load(ctx)
	if err != nil {
		return false, err
	}
	_, ok := creds[email]
	return ok, nil
}

// Logout ends the session regardless of its state.
func (a *Accounts) Logout(ctx context.Context) error {
	return a.session.End(ctx)
}
