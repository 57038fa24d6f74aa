package registry

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/acadmate/internal/client/models"
	"github.com/dmitrijs2005/acadmate/internal/common"
	"github.com/dmitrijs2005/acadmate/internal/kvstore"
	"github.com/google/uuid"
)

// Notes is the note collection. Notes are shared by every account of the
// store, as in the browser version.
type Notes struct {
	store kvstore.Store
	now   func() time.Time
	newID func() string
}

func NewNotes(store kvstore.Store) *Notes {
	return &Notes{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

func (n *Notes) load(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	if _, err := loadJSON(ctx, n.store, models.KeyNotes, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (n *Notes) save(ctx context.Context, notes []models.Note) error {
	if notes == nil {
		notes = []models.Note{}
	}
	return saveJSON(ctx, n.store, models.KeyNotes, notes)
}

// List returns the notes newest first. A non-empty search keeps only notes
// whose title or content contains it, ignoring case.
func (n *Notes) List(ctx context.Context, search string) ([]models.Note, error) {
	notes, err := n.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	out := make([]models.Note, 0, len(notes))
	for _, note := range notes {
		if note.Matches(search) {
			out = append(out, note)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Note) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out, nil
}

func (n *Notes) Get(ctx context.Context, id string) (models.Note, error) {
	notes, err := n.load(ctx)
	if err != nil {
		return models.Note{}, fmt.Errorf("get note: %w", err)
	}
	i := indexOfNote(notes, id)
	if i < 0 {
		return models.Note{}, fmt.Errorf("get note %s: %w", id, common.ErrNotFound)
	}
	return notes[i], nil
}

func (n *Notes) Create(ctx context.Context, title, content string) (models.Note, error) {
	if err := validateNote(title, content); err != nil {
		return models.Note{}, fmt.Errorf("create note: %w", err)
	}

	notes, err := n.load(ctx)
	if err != nil {
		return models.Note{}, fmt.Errorf("create note: %w", err)
	}

	note := models.Note{ID: n.newID(), Title: title, Content: content, Timestamp: n.now()}
	notes = slices.Insert(notes, 0, note)
	if err := n.save(ctx, notes); err != nil {
		return models.Note{}, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

// Update rewrites the title and content and refreshes the timestamp.
func (n *Notes) Update(ctx context.Context, id, title, content string) (models.Note, error) {
	if err := validateNote(title, content); err != nil {
		return models.Note{}, fmt.Errorf("update note: %w", err)
	}

	notes, err := n.load(ctx)
	if err != nil {
		return models.Note{}, fmt.Errorf("update note: %w", err)
	}
	i := indexOfNote(notes, id)
	if i < 0 {
		return models.Note{}, fmt.Errorf("update note %s: %w", id, common.ErrNotFound)
	}

	notes[i].Title = title
	notes[i].Content = content
	notes[i].Timestamp = n.now()
	if err := n.save(ctx, notes); err != nil {
		return models.Note{}, fmt.Errorf("update note: %w", err)
	}
	return notes[i], nil
}

func (n *Notes) Delete(ctx context.Context, id string) error {
	notes, err := n.load(ctx)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	i := indexOfNote(notes, id)
	if i < 0 {
		return fmt.Errorf("delete note %s: %w", id, common.ErrNotFound)
	}
	notes = slices.Delete(notes, i, i+1)
	if err := n.save(ctx, notes); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

func validateNote(title, content string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: please provide both a title and content", common.ErrValidation)
	}
	return nil
}

func indexOfNote(notes []models.Note, id string) int {
	return slices.IndexFunc(notes, func(n models.Note) bool { return n.ID == id })
}
