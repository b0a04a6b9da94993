package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Storage keys for the two persisted records.
const (
	NotesKey      = "notes-app-data"
	CategoriesKey = "notes-app-categories"
)

// Store owns the canonical note and category collections and all persistence.
// Every mutation writes the full updated collection through the Storage port
// before returning. Reads through ListAll and Categories return copies; the
// visible/filtered list is always derived from those, never mutated directly.
type Store struct {
	storage Storage
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string

	mu         sync.Mutex
	notes      []Note
	categories []Category
}

// StoreConfig holds the dependencies for a Store.
type StoreConfig struct {
	Storage Storage
	Logger  *slog.Logger
	Now     func() time.Time // defaults to time.Now
	NewID   func() string    // defaults to uuid.NewString
}

// NewStore wires a Store. Call Load before use.
func NewStore(cfg StoreConfig) *Store {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	newID := cfg.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return &Store{
		storage: cfg.Storage,
		logger:  cfg.Logger,
		now:     now,
		newID:   newID,
	}
}

// Load reads the persisted notes and categories. Absent records fall back to
// an empty collection and the seeded default categories. Malformed records are
// discarded with a warning instead of failing initialization; only storage
// I/O errors propagate.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.loadNotes(ctx)
	if err != nil {
		return err
	}
	categories, err := s.loadCategories(ctx)
	if err != nil {
		return err
	}

	s.notes = notes
	s.categories = categories
	return nil
}

func (s *Store) loadNotes(ctx context.Context) ([]Note, error) {
	data, err := s.storage.Get(ctx, NotesKey)
	if errors.Is(err, ErrNoRecord) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read notes record: %w", err)
	}

	var raw []Note
	if err := json.Unmarshal(data, &raw); err != nil {
		if s.logger != nil {
			s.logger.Warn("discarding malformed notes record", "error", err)
		}
		return nil, nil
	}

	notes := make([]Note, 0, len(raw))
	for _, n := range raw {
		if n.ID == "" {
			if s.logger != nil {
				s.logger.Warn("discarding note without id", "title", n.Title)
			}
			continue
		}
		notes = append(notes, normalize(n))
	}
	return notes, nil
}

func (s *Store) loadCategories(ctx context.Context) ([]Category, error) {
	data, err := s.storage.Get(ctx, CategoriesKey)
	if errors.Is(err, ErrNoRecord) {
		return DefaultCategories(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read categories record: %w", err)
	}

	var categories []Category
	if err := json.Unmarshal(data, &categories); err != nil {
		if s.logger != nil {
			s.logger.Warn("discarding malformed categories record", "error", err)
		}
		return DefaultCategories(), nil
	}
	if len(categories) == 0 {
		return DefaultCategories(), nil
	}
	return categories, nil
}

// Create builds a note from the draft, prepends it to the collection
// (most-recent-first at the storage level) and persists. A blank title becomes
// UntitledTitle. The created note is returned.
func (s *Store) Create(ctx context.Context, d Draft) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := normalize(Note{
		ID:        s.newID(),
		Title:     d.Title,
		Content:   d.Content,
		Category:  d.Category,
		CreatedAt: now,
		UpdatedAt: now,
		Important: d.Important,
		Reminder:  d.Reminder,
	})

	s.notes = append([]Note{n}, s.notes...)
	if err := s.persistNotes(ctx); err != nil {
		return Note{}, err
	}

	if s.logger != nil {
		s.logger.Debug("note created", "id", n.ID, "title", n.Title)
	}
	return n, nil
}

// Update merges the patch into the note matching id and refreshes UpdatedAt,
// regardless of which fields changed. An unknown id is a no-op: it never
// creates a note as a side effect.
func (s *Store) Update(ctx context.Context, id string, p Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		if s.logger != nil {
			s.logger.Debug("update skipped, note not found", "id", id)
		}
		return nil
	}

	n := &s.notes[i]
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Category != nil {
		n.Category = *p.Category
	}
	if p.Important != nil {
		n.Important = *p.Important
	}
	if p.Checked != nil {
		n.Checked = *p.Checked
	}
	if p.ClearReminder {
		n.Reminder = nil
	} else if p.Reminder != nil {
		n.Reminder = p.Reminder
	}
	n.UpdatedAt = s.now()
	*n = normalize(*n)

	return s.persistNotes(ctx)
}

// Delete removes the note matching id. An unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.notes = append(s.notes[:i], s.notes[i+1:]...)

	if s.logger != nil {
		s.logger.Debug("note deleted", "id", id)
	}
	return s.persistNotes(ctx)
}

// Get returns the note matching id.
func (s *Store) Get(id string) (Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Note{}, false
	}
	return s.notes[i], true
}

// ListAll returns a copy of the full, unfiltered collection. Category counts
// and empty-state decisions must be derived from this, independent of any
// active filter.
func (s *Store) ListAll() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Note(nil), s.notes...)
}

// Categories returns a copy of the category collection.
func (s *Store) Categories() []Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Category(nil), s.categories...)
}

// SaveCategories replaces the category collection wholesale and persists it.
func (s *Store) SaveCategories(ctx context.Context, categories []Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = append([]Category(nil), categories...)

	data, err := json.MarshalIndent(s.categories, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize categories: %w", err)
	}
	if err := s.storage.Set(ctx, CategoriesKey, data); err != nil {
		return fmt.Errorf("failed to persist categories: %w", err)
	}
	return nil
}

// indexOf requires s.mu held.
func (s *Store) indexOf(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

// persistNotes requires s.mu held.
func (s *Store) persistNotes(ctx context.Context) error {
	data, err := json.MarshalIndent(s.notes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize notes: %w", err)
	}
	if err := s.storage.Set(ctx, NotesKey, data); err != nil {
		return fmt.Errorf("failed to persist notes: %w", err)
	}
	return nil
}
