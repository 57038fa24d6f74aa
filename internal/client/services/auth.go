// Package services contains application services for the AcadMate CLI.
// This file defines the authentication service: the logged-out/logged-in
// state machine on top of the account, profile and session registries.
package services

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/dmitrijs2005/acadmate/internal/client/models"
	"github.com/dmitrijs2005/acadmate/internal/client/registry"
	"github.com/dmitrijs2005/acadmate/internal/common"
	"github.com/dmitrijs2005/acadmate/internal/logging"
)

// MaxProfilePicture caps the size of an uploaded profile picture.
const MaxProfilePicture = 512 << 10

type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	if s == LoggedIn {
		return "logged-in"
	}
	return "logged-out"
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Resume: restore a persisted session on startup, ensuring a profile exists.
//   - Register: create an account and default profile, then log in.
//   - Login: verify credentials and start a session.
//   - Logout: end the session.
//   - ChangePassword: replace the password of the logged-in account.
//   - Profile/UpdateProfile/SetProfilePicture: read and edit the current profile.
//   - State: report whether an account is logged in.
//
// Operations that need a logged-in account return common.ErrInvalidCredentials
// when there is none.
type AuthService interface {
	Resume(ctx context.Context) (models.Profile, bool, error)
	Register(ctx context.Context, email, password, confirm string) (models.Profile, error)
	Login(ctx context.Context, email, password string) (models.Profile, error)
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context, current, next, confirm string) error
	Profile(ctx context.Context) (models.Profile, error)
	UpdateProfile(ctx context.Context, p models.Profile) (models.Profile, error)
	SetProfilePicture(ctx context.Context, path string) (models.Profile, error)
	State() State
}

type authService struct {
	reg *registry.Registry
	log logging.Logger

	mu    sync.Mutex
	state State
	email string
}

// NewAuthService constructs an AuthService over the registries.
func NewAuthService(reg *registry.Registry, log logging.Logger) AuthService {
	return &authService{reg: reg, log: log.With("component", "auth")}
}

func (a *authService) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *authService) enter(ctx context.Context, email string) (models.Profile, error) {
	prof, err := a.reg.Profiles.Ensure(ctx, email)
	if err != nil {
		return models.Profile{}, err
	}
	a.mu.Lock()
	a.state, a.email = LoggedIn, email
	a.mu.Unlock()
	return prof, nil
}

// leave resets the state to LoggedOut and returns the previous email.
func (a *authService) leave() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	email := a.email
	a.state, a.email = LoggedOut, ""
	return email
}

func (a *authService) current() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != LoggedIn {
		return "", fmt.Errorf("%w: not logged in", common.ErrInvalidCredentials)
	}
	return a.email, nil
}

// Resume restores the persisted session. A session whose account no longer
// exists is ended.
func (a *authService) Resume(ctx context.Context) (models.Profile, bool, error) {
	email, ok, err := a.reg.Session.Restore(ctx)
	if err != nil {
		return models.Profile{}, false, err
	}
	if !ok {
		a.leave()
		return models.Profile{}, false, nil
	}

	exists, err := a.reg.Accounts.Exists(ctx, email)
	if err != nil {
		return models.Profile{}, false, err
	}
	if !exists {
		a.log.Warn(ctx, "dropping session of unknown account", "email", email)
		a.leave()
		return models.Profile{}, false, a.reg.Session.End(ctx)
	}

	prof, err := a.enter(ctx, email)
	if err != nil {
		return models.Profile{}, false, err
	}
	a.log.Info(ctx, "session resumed", "email", email)
	return prof, true, nil
}

func (a *authService) Register(ctx context.Context, email, password, confirm string) (models.Profile, error) {
	email = strings.TrimSpace(email)
	if err := a.reg.Accounts.Register(ctx, email, password, confirm); err != nil {
		a.log.Debug(ctx, "register rejected", "email", email, "error", err)
		return models.Profile{}, err
	}
	prof, err := a.enter(ctx, email)
	if err != nil {
		return models.Profile{}, err
	}
	a.log.Info(ctx, "account registered", "email", email)
	return prof, nil
}

func (a *authService) Login(ctx context.Context, email, password string) (models.Profile, error) {
	email = strings.TrimSpace(email)
	if err := a.reg.Accounts.Login(ctx, email, password); err != nil {
		a.log.Debug(ctx, "login rejected", "email", email, "error", err)
		return models.Profile{}, err
	}
	prof, err := a.enter(ctx, email)
	if err != nil {
		return models.Profile{}, err
	}
	a.log.Info(ctx, "logged in", "email", email)
	return prof, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.reg.Accounts.Logout(ctx); err != nil {
		return err
	}
	a.log.Info(ctx, "logged out", "email", a.leave())
	return nil
}

func (a *authService) ChangePassword(ctx context.Context, current, next, confirm string) error {
	email, err := a.current()
	if err != nil {
		return err
	}
	if err := a.reg.Accounts.ChangePassword(ctx, email, current, next, confirm); err != nil {
		return err
	}
	a.log.Info(ctx, "password changed", "email", email)
	return nil
}

func (a *authService) Profile(ctx context.Context) (models.Profile, error) {
	email, err := a.current()
	if err != nil {
		return models.Profile{}, err
	}
	return a.reg.Profiles.Ensure(ctx, email)
}

// UpdateProfile saves p as the current account's profile. The email cannot be
// changed this way; it always matches the session.
func (a *authService) UpdateProfile(ctx context.Context, p models.Profile) (models.Profile, error) {
	email, err := a.current()
	if err != nil {
		return models.Profile{}, err
	}
	p.Email = email
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return models.Profile{}, fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	if err := a.reg.Profiles.Upsert(ctx, p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// SetProfilePicture reads an image file and stores it as a data URL.
func (a *authService) SetProfilePicture(ctx context.Context, path string) (models.Profile, error) {
	prof, err := a.Profile(ctx)
	if err != nil {
		return models.Profile{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: read %s: %v", common.ErrValidation, path, err)
	}
	if len(data) > MaxProfilePicture {
		return models.Profile{}, fmt.Errorf("%w: picture is larger than %d KiB", common.ErrValidation, MaxProfilePicture>>10)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return models.Profile{}, fmt.Errorf("%w: %s is not an image", common.ErrValidation, path)
	}

	prof.ProfilePic = models.EncodeDataURL(mime, data)
	return a.UpdateProfile(ctx, prof)
}
