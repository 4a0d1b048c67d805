package task

import (
	"testing"

	"github.com/matryer/is"
)

func scenario() []Task {
	return []Task{
		{ID: "1", Title: "Buy milk", Priority: High, Category: "Shopping", Completed: false},
		{ID: "2", Title: "Write report", Priority: Low, Category: "Work", Completed: true},
	}
}

func TestComputeStats(t *testing.T) {
	t.Run("scenario", func(t *testing.T) {
		is := is.New(t)
		s := ComputeStats(scenario())
		// task 2 is done, it does not count towards the priority breakdown
		is.Equal(s, Stats{Total: 2, Completed: 1, Pending: 1, High: 1, Medium: 0, Low: 0})
		is.Equal(s.CompletionRate(), 50)
	})
	t.Run("empty", func(t *testing.T) {
		is := is.New(t)
		s := ComputeStats(nil)
		is.Equal(s, Stats{})
		is.Equal(s.CompletionRate(), 0)
	})
	t.Run("rounds completion rate", func(t *testing.T) {
		is := is.New(t)
		is.Equal(Stats{Total: 3, Completed: 1}.CompletionRate(), 33)
		is.Equal(Stats{Total: 3, Completed: 2}.CompletionRate(), 67)
		is.Equal(Stats{Total: 8, Completed: 1}.CompletionRate(), 13)
		is.Equal(Stats{Total: 1, Completed: 1}.CompletionRate(), 100)
	})
}

func TestFiltered(t *testing.T) {
	ts := append(scenario(),
		Task{ID: "3", Title: "Read REPORT draft", Priority: Medium, Category: "Work"},
		Task{ID: "4", Title: "Run", Priority: High, Category: "Health", Completed: true},
	)
	tests := []struct {
		name   string
		filter Filter
		want   []ID
	}{
		{"empty filter keeps everything in order", Filter{}, []ID{"1", "2", "3", "4"}},
		{"status all", Filter{Status: StatusAll}, []ID{"1", "2", "3", "4"}},
		{"pending", Filter{Status: StatusPending}, []ID{"1", "3"}},
		{"completed", Filter{Status: StatusCompleted}, []ID{"2", "4"}},
		{"search ignores completed state", Filter{Search: "report"}, []ID{"2", "3"}},
		{"search is case insensitive", Filter{Search: "MiLk"}, []ID{"1"}},
		{"search only looks at titles", Filter{Search: "shopping"}, []ID{}},
		{"category", Filter{Category: "Work"}, []ID{"2", "3"}},
		{"priority", Filter{Priority: High}, []ID{"1", "4"}},
		{"conjunction", Filter{Search: "r", Category: "Work", Status: StatusPending}, []ID{"3"}},
		{"no match", Filter{Category: "Learning"}, []ID{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			is.Equal(ids(Filtered(ts, tt.filter)), tt.want)
		})
	}
}

func TestFiltered_Scenario(t *testing.T) {
	is := is.New(t)
	is.Equal(ids(Filtered(scenario(), Filter{Status: StatusPending})), []ID{"1"})
	is.Equal(ids(Filtered(scenario(), Filter{Search: "report"})), []ID{"2"})
}

func TestFiltered_DoesNotTouchInput(t *testing.T) {
	is := is.New(t)
	ts := scenario()
	Filtered(ts, Filter{Status: StatusCompleted})
	is.Equal(ts, scenario())
}

func TestFilter_Active(t *testing.T) {
	is := is.New(t)
	is.True(!Filter{}.Active())
	is.True(!Filter{Status: StatusAll}.Active())
	is.True(Filter{Status: StatusPending}.Active())
	is.True(Filter{Search: "x"}.Active())
	is.True(Filter{Category: "Work"}.Active())
	is.True(Filter{Priority: Low}.Active())
}

func TestCategories(t *testing.T) {
	is := is.New(t)
	ts := []Task{{Category: "Garden"}, {Category: "Work"}, {Category: ""}, {Category: "Garden"}, {Category: "Music"}}
	is.Equal(Categories([]string{"Personal", "Work"}, ts), []string{"Personal", "Work", "Garden", "Music"})
}

func TestParsePriority(t *testing.T) {
	is := is.New(t)
	for in, want := range map[string]Priority{"low": Low, "MEDIUM": Medium, " high ": High, "h": High, "l": Low} {
		got, err := ParsePriority(in)
		is.NoErr(err)
		is.Equal(got, want)
	}
	_, err := ParsePriority("urgent")
	is.Equal(err, ErrInvalidPriority)
	is.Equal(Low.Next(), Medium)
	is.Equal(High.Next(), Low)
}

func TestParseStatus(t *testing.T) {
	is := is.New(t)
	s, ok := ParseStatus("")
	is.True(ok)
	is.Equal(s, StatusAll)
	s, ok = ParseStatus("Pending")
	is.True(ok)
	is.Equal(s, StatusPending)
	_, ok = ParseStatus("archived")
	is.True(!ok)
}

func TestDraft_Validate(t *testing.T) {
	is := is.New(t)
	is.NoErr(milk().Validate())
	is.Equal(Draft{Title: "  ", Priority: Low}.Validate(), ErrEmptyTitle)
	is.Equal(Draft{Title: "x", Priority: "urgent"}.Validate(), ErrInvalidPriority)
}
