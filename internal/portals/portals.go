// Package portals launches external web portals in the system browser.
package portals

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/acadmate/internal/common"
)

var ErrUnknownPortal = fmt.Errorf("%w: unknown portal", common.ErrNotFound)

type Site struct {
	Name string
	URL  string
}

// browserCommand returns the OS command that opens a URL in the default
// browser. It is a variable so tests can replace it.
var browserCommand = func(goos, target string) (string, []string) {
	switch goos {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	case "darwin":
		return "open", []string{target}
	default:
		return "xdg-open", []string{target}
	}
}

// runCommand starts name without waiting for it. Replaced in tests.
var runCommand = func(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

type Launcher struct {
	sites []Site
}

// New validates sites. Only absolute http and https URLs are accepted.
func New(sites ...Site) (*Launcher, error) {
	for _, s := range sites {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("%w: portal name is empty", common.ErrValidation)
		}
		u, err := url.Parse(s.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("%w: portal %q has invalid url %q", common.ErrValidation, s.Name, s.URL)
		}
	}
	return &Launcher{sites: append([]Site(nil), sites...)}, nil
}

func (l *Launcher) Sites() []Site {
	return append([]Site(nil), l.sites...)
}

// Find resolves a portal by 1-based index or case-insensitive name.
func (l *Launcher) Find(ref string) (Site, error) {
	ref = strings.TrimSpace(ref)
	if i, err := strconv.Atoi(ref); err == nil {
		if i >= 1 && i <= len(l.sites) {
			return l.sites[i-1], nil
		}
		return Site{}, fmt.Errorf("%w: %s", ErrUnknownPortal, ref)
	}
	for _, s := range l.sites {
		if strings.EqualFold(s.Name, ref) {
			return s, nil
		}
	}
	return Site{}, fmt.Errorf("%w: %s", ErrUnknownPortal, ref)
}

// Open hands the portal's URL to the OS browser opener.
func (l *Launcher) Open(ctx context.Context, ref string) (Site, error) {
	site, err := l.Find(ref)
	if err != nil {
		return Site{}, err
	}
	name, args := browserCommand(runtime.GOOS, site.URL)
	if err := runCommand(ctx, name, args...); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return site, fmt.Errorf("%w: no browser opener (%s)", common.ErrExternalServiceUnavailable, name)
		}
		return site, fmt.Errorf("%w: open %s: %v", common.ErrExternalOperationFailed, site.URL, err)
	}
	return site, nil
}
