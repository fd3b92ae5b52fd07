package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func TestNewTask(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("CET", 3600))

	task, err := NewTask("alice@example.com", "Buy milk", "2 litres", "", now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected generated ID, got nil UUID")
	}
	if task.OwnerEmail != "alice@example.com" {
		t.Errorf("Expected owner alice@example.com, got %s", task.OwnerEmail)
	}
	if task.Category != DefaultCategory {
		t.Errorf("Expected category %q, got %q", DefaultCategory, task.Category)
	}
	if !task.CreatedAt.Equal(now) || task.CreatedAt.Location() != time.UTC {
		t.Errorf("Expected CreatedAt %v in UTC, got %v", now, task.CreatedAt)
	}
}

func TestNewTaskKeepsExplicitCategory(t *testing.T) {
	t.Parallel()

	task, err := NewTask("alice@example.com", "Ship release", "", "In Progress", time.Now())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Category != "In Progress" {
		t.Errorf("Expected category In Progress, got %s", task.Category)
	}
}

func TestNewTaskTitleBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		title   string
		wantErr error
	}{
		{name: "empty", title: "", wantErr: ErrInvalidTitle},
		{name: "one char", title: "a", wantErr: nil},
		{name: "exactly 50", title: strings.Repeat("a", 50), wantErr: nil},
		{name: "51", title: strings.Repeat("a", 51), wantErr: ErrInvalidTitle},
		{name: "50 multibyte runes", title: strings.Repeat("é", 50), wantErr: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTask("alice@example.com", tc.title, "", "", time.Now())
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("Expected %v to wrap ErrValidation", err)
			}
		})
	}
}

func TestNewTaskDescriptionBounds(t *testing.T) {
	t.Parallel()

	if _, err := NewTask("a@b.co", "t", strings.Repeat("d", 200), "", time.Now()); err != nil {
		t.Errorf("Expected 200-char description to pass, got %v", err)
	}
	_, err := NewTask("a@b.co", "t", strings.Repeat("d", 201), "", time.Now())
	if !errors.Is(err, ErrDescriptionTooLong) {
		t.Errorf("Expected ErrDescriptionTooLong, got %v", err)
	}
}

func TestNewTaskRejectsNulCharacter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                         string
		title, description, category string
		wantErr                      error
	}{
		{"title", "a\x00", "", "", ErrInvalidTitle},
		{"only nul title", "\x00", "", "", ErrInvalidTitle},
		{"description", "ok", "d\x00", "", ErrDescriptionTooLong},
		{"category", "ok", "", "To-Do\x00", ErrInvalidCategory},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTask("alice@example.com", tc.title, tc.description, tc.category, time.Now())
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}

	u := SanitizeUpdate(strPtr("t\x00"), strPtr("d\x00"), strPtr("c\x00"))
	if !u.IsEmpty() {
		t.Errorf("Expected fields with NUL to be dropped, got %+v", u)
	}
}

func TestNewTaskRequiresOwner(t *testing.T) {
	t.Parallel()

	_, err := NewTask("", "title", "", "", time.Now())
	if !errors.Is(err, ErrEmptyOwner) {
		t.Errorf("Expected ErrEmptyOwner, got %v", err)
	}
}

func TestSanitizeUpdate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		title       *string
		description *string
		category    *string
		want        TaskUpdate
	}{
		{
			name: "nothing provided",
			want: TaskUpdate{},
		},
		{
			name:        "all valid",
			title:       strPtr("New title"),
			description: strPtr("New description"),
			category:    strPtr("Done"),
			want: TaskUpdate{
				Title:       strPtr("New title"),
				Description: strPtr("New description"),
				Category:    strPtr("Done"),
			},
		},
		{
			name:     "overlong title dropped",
			title:    strPtr(strings.Repeat("x", 51)),
			category: strPtr("Done"),
			want:     TaskUpdate{Category: strPtr("Done")},
		},
		{
			name:        "overlong description dropped",
			title:       strPtr("ok"),
			description: strPtr(strings.Repeat("x", 201)),
			want:        TaskUpdate{Title: strPtr("ok")},
		},
		{
			name:        "empty strings dropped",
			title:       strPtr(""),
			description: strPtr(""),
			category:    strPtr(""),
			want:        TaskUpdate{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SanitizeUpdate(tc.title, tc.description, tc.category)
			if !equalPtr(got.Title, tc.want.Title) ||
				!equalPtr(got.Description, tc.want.Description) ||
				!equalPtr(got.Category, tc.want.Category) {
				t.Errorf("SanitizeUpdate() = %+v, want %+v", got, tc.want)
			}
			if got.IsEmpty() != tc.want.IsEmpty() {
				t.Errorf("IsEmpty() = %v, want %v", got.IsEmpty(), tc.want.IsEmpty())
			}
		})
	}
}

func TestTaskUpdateApplyTo(t *testing.T) {
	t.Parallel()

	task := &Task{Title: "Old", Description: "Keep me", Category: DefaultCategory}
	TaskUpdate{Category: strPtr("Done")}.ApplyTo(task)

	if task.Title != "Old" || task.Description != "Keep me" {
		t.Errorf("Expected title and description untouched, got %+v", task)
	}
	if task.Category != "Done" {
		t.Errorf("Expected category Done, got %s", task.Category)
	}
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
