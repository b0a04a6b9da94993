package core

import (
	"strings"
	"time"
)

// UntitledTitle is substituted when a note is saved without a title.
const UntitledTitle = "Untitled Note"

// Note is the central entity of the domain.
// JSON tags match the persisted record layout; timestamps round-trip as RFC 3339.
type Note struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Category  string     `json:"category"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Important bool       `json:"isImportant,omitempty"`
	Checked   bool       `json:"isChecked,omitempty"`
	Reminder  *time.Time `json:"reminderDate,omitempty"`
}

// Category is a named, colored tag used to group notes.
// There is no referential integrity between notes and categories: a note may
// reference a category id that no longer exists.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DefaultCategories returns the three categories seeded when none are persisted.
func DefaultCategories() []Category {
	return []Category{
		{ID: "personal", Name: "Personal", Color: "#8B5CF6"},
		{ID: "work", Name: "Work", Color: "#06B6D4"},
		{ID: "ideas", Name: "Ideas", Color: "#F59E0B"},
	}
}

// Draft carries the user-submitted fields for a new note.
type Draft struct {
	Title     string
	Content   string
	Category  string
	Important bool
	Reminder  *time.Time
}

// Patch describes a partial update to an existing note. Nil fields are left
// unchanged. ClearReminder removes an armed reminder; it takes precedence over
// Reminder when both are set.
type Patch struct {
	Title         *string
	Content       *string
	Category      *string
	Important     *bool
	Checked       *bool
	Reminder      *time.Time
	ClearReminder bool
}

// ValidateDraft rejects a save where both title and content are blank.
// This is the only validation the domain performs; everything else degrades to
// a default value instead.
func ValidateDraft(title, content string) error {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(content) == "" {
		return ErrEmptyDraft
	}
	return nil
}

// normalize applies the default-value substitutions for optional fields.
// It is the single construction step shared by Create and Load so that
// records persisted by older versions (missing newer fields) stay valid.
func normalize(n Note) Note {
	if strings.TrimSpace(n.Title) == "" {
		n.Title = UntitledTitle
	}
	if n.UpdatedAt.Before(n.CreatedAt) {
		n.UpdatedAt = n.CreatedAt
	}
	return n
}
