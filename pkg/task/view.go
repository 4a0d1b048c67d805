package task

import (
	"math"
	"strings"
)

type Status string

const (
	StatusAll       Status = "all"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Statuses in the order the status tabs show them
var Statuses = []Status{StatusAll, StatusPending, StatusCompleted}

func ParseStatus(s string) (Status, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StatusAll, true
	}
	for _, v := range Statuses {
		if s == string(v) {
			return v, true
		}
	}
	return "", false
}

// Filter is the set of view criteria, zero values match everything
type Filter struct {
	// Search is matched case-insensitively against the title
	Search   string
	Category string
	Priority Priority
	Status   Status
}

// Active reports whether any criterion narrows the view
func (f Filter) Active() bool {
	return f.Search != "" || f.Category != "" || f.Priority != "" ||
		(f.Status != "" && f.Status != StatusAll)
}

// Match reports whether t passes every criterion of f
func (f Filter) Match(t Task) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(f.Search)) {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	switch f.Status {
	case StatusPending:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	}
	return true
}

// Filtered returns the tasks matching f, keeping their order
func Filtered(ts []Task, f Filter) []Task {
	out := []Task{}
	for _, t := range ts {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Stats are counts over a whole collection.
// The priority counts only include pending tasks, they describe the work left.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	High      int `json:"high"`
	Medium    int `json:"medium"`
	Low       int `json:"low"`
}

func ComputeStats(ts []Task) Stats {
	s := Stats{Total: len(ts)}
	for _, t := range ts {
		if t.Completed {
			s.Completed++
			continue
		}
		switch t.Priority {
		case High:
			s.High++
		case Medium:
			s.Medium++
		case Low:
			s.Low++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}

// CompletionRate is the rounded percentage of completed tasks, 0 when there are none
func (s Stats) CompletionRate() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
}

// Categories returns base followed by any other category used in ts, first seen first
func Categories(base []string, ts []Task) []string {
	out := append([]string{}, base...)
	seen := map[string]bool{}
	for _, c := range base {
		seen[c] = true
	}
	for _, t := range ts {
		if t.Category == "" || seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		out = append(out, t.Category)
	}
	return out
}
