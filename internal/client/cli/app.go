package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/acadmate/internal/client/client"
	"github.com/dmitrijs2005/acadmate/internal/client/config"
	"github.com/dmitrijs2005/acadmate/internal/client/models"
	"github.com/dmitrijs2005/acadmate/internal/client/registry"
	"github.com/dmitrijs2005/acadmate/internal/client/services"
	"github.com/dmitrijs2005/acadmate/internal/client/storage"
	"github.com/dmitrijs2005/acadmate/internal/kvstore"
	"github.com/dmitrijs2005/acadmate/internal/logging"
	"github.com/dmitrijs2005/acadmate/internal/pomodoro"
	"github.com/dmitrijs2005/acadmate/internal/portals"
)

// openStorage is a test seam for storage.Open.
var openStorage = storage.Open

type App struct {
	config *config.Config
	log    logging.Logger

	store      kvstore.Store
	closeStore func() error
	reg        *registry.Registry

	authService    services.AuthService
	libraryService services.LibraryService
	chatService    services.ChatService
	timer          *pomodoro.Timer
	portals        *portals.Launcher

	profile   models.Profile
	lastNotes []models.Note

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the configured store and wires every service on top of it.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(os.Stderr, c.LogLevel)

	store, closeFn, err := openStorage(ctx, c)
	if err != nil {
		log.Error(ctx, "error opening storage", "driver", c.StorageDriver, "error", err)
		return nil, err
	}

	var cc client.ChatClient
	if c.GeminiAPIKey != "" {
		gc, err := client.NewGeminiClient(c.GeminiAPIKey, c.GeminiModel, c.GeminiBaseURL)
		if err != nil {
			log.Warn(ctx, "chat client disabled", "error", err)
		} else {
			cc = gc
		}
	}

	a, err := newApp(c, log, store, cc, bufio.NewReader(os.Stdin), os.Stdout)
	if err != nil {
		_ = closeFn()
		return nil, err
	}
	a.closeStore = closeFn
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, store kvstore.Store, cc client.ChatClient, reader *bufio.Reader, out io.Writer) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	sites := make([]portals.Site, 0, len(c.Portals))
	for _, p := range c.Portals {
		sites = append(sites, portals.Site{Name: p.Name, URL: p.URL})
	}
	launcher, err := portals.New(sites...)
	if err != nil {
		return nil, err
	}

	reg := registry.New(store, c.PasswordScheme)
	reg.Accounts.SetLogger(log)
	a := &App{
		config:         c,
		log:            log,
		store:          store,
		closeStore:     func() error { return nil },
		reg:            reg,
		authService:    services.NewAuthService(reg, log),
		libraryService: services.NewLibraryService(reg.Library, log),
		chatService:    services.NewChatService(cc, log),
		portals:        launcher,
		reader:         reader,
		out:            out,
	}
	a.timer = pomodoro.New(c.PomodoroWork, c.PomodoroBreak, a.notify)
	return a, nil
}

// Run resumes a persisted session, starts the Pomodoro ticker and blocks in
// the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() { _ = a.timer.Run(ctx) }()

	a.println("Welcome to AcadMate (type 'help' for commands)")
	prof, ok, err := a.authService.Resume(ctx)
	switch {
	case err != nil:
		reportError(err)
	case ok:
		a.profile = prof
		a.printf("Welcome back, %s!\n", prof.Name)
	}

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) Close() error {
	if err := a.closeStore(); err != nil {
		a.log.Error(context.Background(), "error closing storage", "error", err)
		return err
	}
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.authService.State() == services.LoggedIn
}

func (a *App) status() string {
	s := ""
	if a.isLoggedIn() {
		s = a.profile.Email
	}
	if st := a.timer.State(); st.Running {
		if s != "" {
			s += " "
		}
		s += fmt.Sprintf("%s %s", st.Mode, st.Display())
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// notify prints an asynchronous notification such as a Pomodoro alert.
func (a *App) notify(msg string) {
	a.printf("\n!! %s\n", msg)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}
