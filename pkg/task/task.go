package task

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ID string

// NewID returns a random (v4) UUID
func NewID() ID {
	return ID(uuid.NewString())
}

type Priority string

const (
	Low    Priority = "low"
	Medium Priority = "medium"
	High   Priority = "high"
)

// Priorities lists every priority from lowest to highest
var Priorities = []Priority{Low, Medium, High}

// DefaultCategories is the category set offered when creating a task.
// The store itself accepts any category.
var DefaultCategories = []string{"Personal", "Work", "Health", "Learning", "Shopping", "Others"}

var (
	ErrEmptyTitle      = errors.New("title must not be empty")
	ErrInvalidPriority = errors.New("priority must be one of low, medium, high")
)

func (p Priority) Valid() bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}

// Next cycles low -> medium -> high -> low
func (p Priority) Next() Priority {
	for i, v := range Priorities {
		if p == v {
			return Priorities[(i+1)%len(Priorities)]
		}
	}
	return Low
}

// ParsePriority is case insensitive and accepts the first letter as a shorthand
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range Priorities {
		if s == string(p) || (len(s) == 1 && s[0] == p[0]) {
			return p, nil
		}
	}
	return "", ErrInvalidPriority
}

type Task struct {
	ID          ID       `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Completed   bool     `json:"completed"`
	Priority    Priority `json:"priority"`
	Category    string   `json:"category"`
	// DueDate is a calendar date, YYYY-MM-DD
	DueDate string `json:"dueDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Draft is a task that has not been added to a store yet
type Draft struct {
	Title       string
	Description string
	Completed   bool
	Priority    Priority
	Category    string
	DueDate     string
}

// Validate checks the fields the entry form requires
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	if !d.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// Changes is a partial update, nil fields are left untouched
type Changes struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *Priority
	Category    *string
	DueDate     *string
}

// Empty reports whether applying the changes would not touch any field
func (c Changes) Empty() bool {
	return c.Title == nil && c.Description == nil && c.Completed == nil &&
		c.Priority == nil && c.Category == nil && c.DueDate == nil
}

func (c Changes) apply(t Task) Task {
	if c.Title != nil {
		t.Title = *c.Title
	}
	if c.Description != nil {
		t.Description = *c.Description
	}
	if c.Completed != nil {
		t.Completed = *c.Completed
	}
	if c.Priority != nil {
		t.Priority = *c.Priority
	}
	if c.Category != nil {
		t.Category = *c.Category
	}
	if c.DueDate != nil {
		t.DueDate = *c.DueDate
	}
	return t
}
