package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/acadmate/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

type handler func(ctx context.Context, args []string) error

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	EditProfile(ctx context.Context, args []string) error
	Passwd(ctx context.Context, args []string) error

	Notes(ctx context.Context, args []string) error
	AddNote(ctx context.Context, args []string) error
	EditNote(ctx context.Context, args []string) error
	DelNote(ctx context.Context, args []string) error

	Folders(ctx context.Context, args []string) error
	MkFolder(ctx context.Context, args []string) error
	RmFolder(ctx context.Context, args []string) error
	Files(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	RmFile(ctx context.Context, args []string) error
	View(ctx context.Context, args []string) error

	Chat(ctx context.Context, args []string) error
	Pomodoro(ctx context.Context, args []string) error
	Portals(ctx context.Context, args []string) error
	Open(ctx context.Context, args []string) error
	Backup(ctx context.Context, args []string) error
	Restore(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: whoami, profile, editprofile, passwd, " +
		"notes [term], addnote, editnote <n|id>, delnote <n|id>, " +
		"folders, mkfolder <name>, rmfolder <name>, files [folder], upload [folder path], rmfile, view, " +
		"chat, pomodoro [start|pause|reset|work|break], portals, open <n|name>, " +
		"backup [list], restore [name], logout, exit"
)

// runREPL starts a simple read–eval–print loop for the AcadMate CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a' with the remaining tokens as arguments.
// Unknown commands are reported back to the user. The loop exits on EOF or
// when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in: see helpLoggedIn.
//
// Errors returned by handlers are printed by reportError, which makes quota
// and external-service failures stand out.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	public := map[string]handler{
		"register": a.Register,
		"login":    a.Login,
	}
	private := map[string]handler{
		"logout":      a.Logout,
		"whoami":      a.WhoAmI,
		"profile":     a.Profile,
		"editprofile": a.EditProfile,
		"passwd":      a.Passwd,
		"notes":       a.Notes,
		"addnote":     a.AddNote,
		"editnote":    a.EditNote,
		"delnote":     a.DelNote,
		"folders":     a.Folders,
		"mkfolder":    a.MkFolder,
		"rmfolder":    a.RmFolder,
		"files":       a.Files,
		"upload":      a.Upload,
		"rmfile":      a.RmFile,
		"view":        a.View,
		"chat":        a.Chat,
		"pomodoro":    a.Pomodoro,
		"portals":     a.Portals,
		"open":        a.Open,
		"backup":      a.Backup,
		"restore":     a.Restore,
	}

	for {
		printlnFn(fmt.Sprintf("acadmate %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		h, ok := public[cmd]
		if !ok {
			h, ok = private[cmd]
			if ok && !a.isLoggedIn() {
				printlnFn("Please log in first (type 'help' for commands)")
				continue
			}
		}
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if err := h(ctx, args); err != nil && !errors.Is(err, io.EOF) {
			reportError(err)
		}
	}
}

// reportError prints err for the user. Quota and external-service failures
// get a prominent "!!" notification; the rest are shown inline.
func reportError(err error) {
	switch {
	case errors.Is(err, common.ErrStorageQuotaExceeded):
		printlnFn("!! Error saving data. Storage is full; delete some files or raise the quota.")
	case errors.Is(err, common.ErrExternalServiceUnavailable),
		errors.Is(err, common.ErrExternalOperationFailed):
		printlnFn("!!", err.Error())
	default:
		printlnFn(userMessage(err))
	}
}

// userMessage maps well-known errors to the wording users see.
func userMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrInvalidEmail):
		return "Please enter a valid email address."
	case errors.Is(err, common.ErrWeakPassword):
		return fmt.Sprintf("Password must be at least %d characters long.", common.MinPasswordLength)
	case errors.Is(err, common.ErrPasswordMismatch):
		return "Passwords do not match."
	case errors.Is(err, common.ErrAlreadyExists):
		return "An account with this email already exists."
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, common.ErrNotPDF):
		return "Please select a PDF file."
	case errors.Is(err, common.ErrDuplicateFolder):
		return "A folder with that name already exists."
	case errors.Is(err, common.ErrDuplicateFile):
		return "A file with that name already exists in this folder."
	case errors.Is(err, common.ErrFolderNotFound):
		return "No such folder."
	default:
		return "Error: " + err.Error()
	}
}

// usage builds the error returned for malformed command arguments.
func usage(s string) error {
	return fmt.Errorf("%w: usage: %s", common.ErrValidation, s)
}
