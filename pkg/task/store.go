package task

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/td0m/desktasks/pkg/persist"
)

// StorageKey is where the collection lives in the backend
const StorageKey = "desktop-tasks"

// Store is the only owner of the task collection.
// Every mutation is written through to the backend before it returns.
// It is not safe for concurrent use.
type Store struct {
	backend persist.Backend
	key     string
	log     zerolog.Logger
	now     func() time.Time
	newID   func() ID

	// newest first
	tasks  []Task
	loaded bool
	err    error
}

type Option func(*Store)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDs(newID func() ID) Option {
	return func(s *Store) { s.newID = newID }
}

func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func NewStore(backend persist.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     StorageKey,
		log:     zerolog.Nop(),
		now:     func() time.Time { return time.Now().UTC() },
		newID:   NewID,
		tasks:   []Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load restores the collection from the backend.
// Only the first call reads; missing or malformed data leaves the store empty.
// Every other method loads first, so calling it explicitly is optional.
func (s *Store) Load() {
	if s.loaded {
		return
	}
	s.loaded = true

	bs, err := s.backend.Get(s.key)
	if errors.Is(err, persist.ErrNotFound) {
		s.log.Debug().Str("key", s.key).Msg("no saved tasks")
		return
	}
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("failed to read tasks, starting empty")
		return
	}
	tasks, err := Decode(bs)
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("failed to load tasks, starting empty")
		return
	}

	// ids must stay unique, keep the first occurrence
	seen := make(map[ID]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			s.log.Warn().Str("task_id", string(t.ID)).Msg("dropping task with duplicate id")
			continue
		}
		seen[t.ID] = true
		s.tasks = append(s.tasks, t)
	}
	s.log.Debug().Int("count", len(s.tasks)).Msg("loaded tasks")
}

// Err returns the error of the last failed write, or nil once a write succeeds again
func (s *Store) Err() error {
	return s.err
}

func (s *Store) persist() {
	bs, err := Encode(s.tasks)
	if err == nil {
		err = s.backend.Set(s.key, bs)
	}
	if err != nil {
		s.err = err
		s.log.Error().Err(err).Str("key", s.key).Msg("failed to persist tasks")
		return
	}
	s.err = nil
}

// All returns a copy of the whole collection, newest first
func (s *Store) All() []Task {
	s.Load()
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Len() int {
	s.Load()
	return len(s.tasks)
}

func (s *Store) Get(id ID) (Task, bool) {
	s.Load()
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

func (s *Store) index(id ID) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// uniqueID retries the generator until it returns an id that is not taken
func (s *Store) uniqueID() ID {
	for {
		id := s.newID()
		if id != "" && s.index(id) < 0 {
			return id
		}
		s.log.Warn().Str("task_id", string(id)).Msg("generated id already taken, retrying")
	}
}

// stamp returns the current time, never earlier than prev
func (s *Store) stamp(prev time.Time) time.Time {
	now := s.now()
	if now.Before(prev) {
		return prev
	}
	return now
}

// Add creates a task from d and puts it at the front of the collection
func (s *Store) Add(d Draft) Task {
	s.Load()
	now := s.now()
	t := Task{
		ID:          s.uniqueID(),
		Title:       d.Title,
		Description: d.Description,
		Completed:   d.Completed,
		Priority:    d.Priority,
		Category:    d.Category,
		DueDate:     d.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks = append([]Task{t}, s.tasks...)
	s.log.Info().Str("task_id", string(t.ID)).Msg("added task")
	s.persist()
	return t
}

// Update merges c over the task and refreshes UpdatedAt
// it reports false (and does nothing) when the id is unknown
func (s *Store) Update(id ID, c Changes) bool {
	s.Load()
	i := s.index(id)
	if i < 0 {
		s.log.Debug().Str("task_id", string(id)).Msg("update of unknown task ignored")
		return false
	}
	old := s.tasks[i]
	t := c.apply(old)
	t.UpdatedAt = s.stamp(old.UpdatedAt)
	s.tasks[i] = t
	s.log.Info().Str("task_id", string(id)).Msg("updated task")
	s.persist()
	return true
}

// Toggle flips the completed flag
func (s *Store) Toggle(id ID) bool {
	t, ok := s.Get(id)
	if !ok {
		return false
	}
	completed := !t.Completed
	return s.Update(id, Changes{Completed: &completed})
}

func (s *Store) Delete(id ID) bool {
	s.Load()
	i := s.index(id)
	if i < 0 {
		s.log.Debug().Str("task_id", string(id)).Msg("delete of unknown task ignored")
		return false
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.log.Info().Str("task_id", string(id)).Msg("deleted task")
	s.persist()
	return true
}

// ClearCompleted removes every completed task with a single write
// and returns how many were removed
func (s *Store) ClearCompleted() int {
	s.Load()
	kept := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	if removed == 0 {
		return 0
	}
	s.tasks = kept
	s.log.Info().Int("count", removed).Msg("cleared completed tasks")
	s.persist()
	return removed
}

var (
	ErrNotFound  = errors.New("no task matches the given id")
	ErrAmbiguous = errors.New("more than one task matches the given id")
)

// Resolve finds the task whose id is or starts with prefix
func (s *Store) Resolve(prefix string) (ID, error) {
	s.Load()
	if prefix == "" {
		return "", ErrNotFound
	}
	if s.index(ID(prefix)) >= 0 {
		return ID(prefix), nil
	}
	var found ID
	for _, t := range s.tasks {
		if strings.HasPrefix(string(t.ID), prefix) {
			if found != "" {
				return "", ErrAmbiguous
			}
			found = t.ID
		}
	}
	if found == "" {
		return "", ErrNotFound
	}
	return found, nil
}
