package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/acadmate/internal/client/models"
	"github.com/dmitrijs2005/acadmate/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) askPassword(prompt string) (string, error) {
	pw, err := getPassword(prompt, a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// Register prompts for an email, a password and its confirmation, creates the
// account and logs it in.
func (a *App) Register(ctx context.Context, args []string) error {
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	password, err := a.askPassword("Enter password")
	if err != nil {
		return err
	}
	confirm, err := a.askPassword("Confirm password")
	if err != nil {
		return err
	}

	prof, err := a.authService.Register(ctx, email, password, confirm)
	if err != nil {
		return err
	}
	a.profile = prof
	a.printf("Welcome, %s!\n", prof.Name)
	return nil
}

// Login prompts for credentials. An email may be passed as the argument.
func (a *App) Login(ctx context.Context, args []string) error {
	if a.isLoggedIn() {
		a.printf("Already logged in as %s. Log out first.\n", a.profile.Email)
		return nil
	}

	email := strings.Join(args, " ")
	if email == "" {
		var err error
		if email, err = a.ask("Enter email"); err != nil {
			return err
		}
	}
	password, err := a.askPassword("Enter password")
	if err != nil {
		return err
	}

	prof, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.profile = prof
	a.printf("Welcome, %s!\n", prof.Name)
	return nil
}

func (a *App) Logout(ctx context.Context, args []string) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.profile = models.Profile{}
	a.lastNotes = nil
	a.println("Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context, args []string) error {
	prof, err := a.authService.Profile(ctx)
	if err != nil {
		return err
	}
	a.profile = prof
	a.printf("[%s] %s <%s>\n", prof.Initials(), prof.Name, prof.Email)
	return nil
}

func (a *App) Profile(ctx context.Context, args []string) error {
	prof, err := a.authService.Profile(ctx)
	if err != nil {
		return err
	}
	a.profile = prof

	a.printf("Name:    %s\n", prof.Name)
	a.printf("Email:   %s\n", prof.Email)
	a.printf("DOB:     %s\n", orDash(prof.DOB))
	a.printf("College: %s\n", orDash(prof.College))
	if prof.ProfilePic != "" {
		a.printf("Picture: set (%d bytes)\n", len(prof.ProfilePic))
	} else {
		a.println("Picture: -")
	}
	return nil
}

// EditProfile prompts for each editable field; an empty answer keeps the
// current value and "-" clears an optional one.
func (a *App) EditProfile(ctx context.Context, args []string) error {
	prof, err := a.authService.Profile(ctx)
	if err != nil {
		return err
	}

	fields := []struct {
		label    string
		dst      *string
		optional bool
	}{
		{"Name", &prof.Name, false},
		{"Date of birth (YYYY-MM-DD)", &prof.DOB, true},
		{"College", &prof.College, true},
	}
	for _, f := range fields {
		v, err := a.ask(f.label + " [" + *f.dst + "]")
		if err != nil {
			return err
		}
		switch {
		case v == "":
		case v == "-" && f.optional:
			*f.dst = ""
		default:
			*f.dst = v
		}
	}

	if prof, err = a.authService.UpdateProfile(ctx, prof); err != nil {
		return err
	}
	a.profile = prof

	path, err := a.ask("Profile picture file (empty to keep)")
	if err != nil {
		return err
	}
	if path != "" {
		if prof, err = a.authService.SetProfilePicture(ctx, path); err != nil {
			return err
		}
		a.profile = prof
	}

	a.println("Profile updated successfully!")
	return nil
}

func (a *App) Passwd(ctx context.Context, args []string) error {
	current, err := a.askPassword("Current password")
	if err != nil {
		return err
	}
	next, err := a.askPassword("New password")
	if err != nil {
		return err
	}
	confirm, err := a.askPassword("Confirm new password")
	if err != nil {
		return err
	}

	if err := a.authService.ChangePassword(ctx, current, next, confirm); err != nil {
		return err
	}
	a.println("Password updated successfully!")
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
