package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/acadmate/internal/common"
)

const previewLen = 60

// Notes lists notes, newest first, optionally filtered by a search term.
// The numbering is remembered so editnote and delnote can refer to it.
func (a *App) Notes(ctx context.Context, args []string) error {
	term := strings.Join(args, " ")
	notes, err := a.reg.Notes.List(ctx, term)
	if err != nil {
		return err
	}
	a.lastNotes = notes

	if len(notes) == 0 {
		if term != "" {
			a.printf("No notes match %q.\n", term)
		} else {
			a.println("No notes yet. Use addnote to create one.")
		}
		return nil
	}
	for i, n := range notes {
		a.printf("%d. %s  (%s)\n", i+1, n.Title, n.Timestamp.Local().Format("2006-01-02 15:04"))
		a.printf("   %s\n", strings.ReplaceAll(n.Preview(previewLen), "\n", " "))
	}
	return nil
}

func (a *App) AddNote(ctx context.Context, args []string) error {
	title := strings.Join(args, " ")
	if title == "" {
		var err error
		if title, err = a.ask("Title"); err != nil {
			return err
		}
	}
	content, err := GetMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}

	n, err := a.reg.Notes.Create(ctx, title, content)
	if err != nil {
		return err
	}
	a.lastNotes = nil
	a.printf("Note %q saved.\n", n.Title)
	return nil
}

// EditNote edits a note by list number or id. Empty answers keep the current
// title or content.
func (a *App) EditNote(ctx context.Context, args []string) error {
	id, err := a.noteID(args, "editnote <n|id>")
	if err != nil {
		return err
	}
	n, err := a.reg.Notes.Get(ctx, id)
	if err != nil {
		return err
	}

	title, err := a.ask("Title [" + n.Title + "]")
	if err != nil {
		return err
	}
	if title == "" {
		title = n.Title
	}
	a.printf("Current content:\n%s\n", n.Content)
	content, err := GetMultiline(a.reader, "New content (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if content == "" {
		content = n.Content
	}

	if _, err := a.reg.Notes.Update(ctx, id, title, content); err != nil {
		return err
	}
	a.lastNotes = nil
	a.println("Note updated.")
	return nil
}

func (a *App) DelNote(ctx context.Context, args []string) error {
	id, err := a.noteID(args, "delnote <n|id>")
	if err != nil {
		return err
	}
	n, err := a.reg.Notes.Get(ctx, id)
	if err != nil {
		return err
	}
	ok, err := GetConfirm(a.reader, fmt.Sprintf("Delete note %q?", n.Title), a.out)
	if err != nil || !ok {
		return err
	}

	if err := a.reg.Notes.Delete(ctx, id); err != nil {
		return err
	}
	a.lastNotes = nil
	a.println("Note deleted.")
	return nil
}

// noteID resolves a list number from the last listing, or takes the
// argument as a note id.
func (a *App) noteID(args []string, usageText string) (string, error) {
	if len(args) != 1 {
		return "", usage(usageText)
	}
	if i, err := strconv.Atoi(args[0]); err == nil {
		if i < 1 || i > len(a.lastNotes) {
			return "", fmt.Errorf("%w: note %d (run notes first)", common.ErrNotFound, i)
		}
		return a.lastNotes[i-1].ID, nil
	}
	return args[0], nil
}
