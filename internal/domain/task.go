package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Field constraints shared by creation and update.
const (
	MaxTitleLength       = 50
	MaxDescriptionLength = 200
	DefaultCategory      = "To-Do"
)

// Task is a single to-do item owned by exactly one user.
//
// The JSON names follow the wire contract the web client already consumes:
// the owner identity travels as "userId" and the identifier as "_id".
type Task struct {
	ID          uuid.UUID `json:"_id"`
	OwnerEmail  string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewTask builds a validated task for owner. An empty category becomes
// DefaultCategory. The identifier is generated here and never taken from
// client input.
func NewTask(owner, title, description, category string, now time.Time) (*Task, error) {
	if category == "" {
		category = DefaultCategory
	}
	task := &Task{
		ID:          uuid.New(),
		OwnerEmail:  owner,
		Title:       title,
		Description: description,
		Category:    category,
		CreatedAt:   now.UTC(),
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks the task's field constraints.
func (t *Task) Validate() error {
	if t.OwnerEmail == "" {
		return ErrEmptyOwner
	}
	if !ValidTitle(t.Title) {
		return ErrInvalidTitle
	}
	if !ValidDescription(t.Description) {
		return ErrDescriptionTooLong
	}
	if !ValidCategory(t.Category) {
		return ErrInvalidCategory
	}
	return nil
}

// ValidTitle reports whether title is non-empty and at most MaxTitleLength
// characters. Length is counted in Unicode code points.
func ValidTitle(title string) bool {
	return title != "" && storable(title) && utf8.RuneCountInString(title) <= MaxTitleLength
}

// ValidDescription reports whether description fits MaxDescriptionLength.
// An empty description is valid.
func ValidDescription(description string) bool {
	return storable(description) && utf8.RuneCountInString(description) <= MaxDescriptionLength
}

// ValidCategory reports whether category can be stored. Categories are free
// text with no length bound.
func ValidCategory(category string) bool {
	return storable(category)
}

// storable reports whether s can be kept in a PostgreSQL text column,
// which rejects the NUL character.
func storable(s string) bool {
	return !strings.ContainsRune(s, 0)
}

// TaskUpdate is the set of fields an update will write. Nil fields are left
// untouched by the store.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
}

// SanitizeUpdate keeps only the provided fields that satisfy the creation
// constraints. Values that are empty or too long are dropped instead of
// failing the update.
func SanitizeUpdate(title, description, category *string) TaskUpdate {
	var u TaskUpdate
	if title != nil && ValidTitle(*title) {
		u.Title = title
	}
	if description != nil && *description != "" && ValidDescription(*description) {
		u.Description = description
	}
	if category != nil && *category != "" && ValidCategory(*category) {
		u.Category = category
	}
	return u
}

// IsEmpty reports whether the update writes nothing.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Category == nil
}

// ApplyTo copies the update's fields onto t.
func (u TaskUpdate) ApplyTo(t *Task) {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Category != nil {
		t.Category = *u.Category
	}
}
