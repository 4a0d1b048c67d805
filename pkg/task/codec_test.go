package task

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestEncodeDecode(t *testing.T) {
	is := is.New(t)
	created := time.Date(2024, time.March, 1, 9, 30, 0, 123000000, time.UTC)
	ts := []Task{
		{ID: "b", Title: "Write report", Description: "quarterly", Completed: true, Priority: Low,
			Category: "Work", DueDate: "2024-03-08", CreatedAt: created, UpdatedAt: created.Add(time.Hour)},
		{ID: "a", Title: "Buy milk", Priority: High, Category: "Shopping", CreatedAt: created, UpdatedAt: created},
	}
	bs, err := Encode(ts)
	is.NoErr(err)
	got, err := Decode(bs)
	is.NoErr(err)
	is.Equal(got, ts)
}

func TestEncode_Layout(t *testing.T) {
	is := is.New(t)
	created := time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)
	bs, err := Encode([]Task{{ID: "a", Title: "Buy milk", Priority: High, Category: "Shopping", CreatedAt: created, UpdatedAt: created}})
	is.NoErr(err)
	is.Equal(string(bs), `[{"id":"a","title":"Buy milk","completed":false,"priority":"high","category":"Shopping",`+
		`"createdAt":"2024-03-01T09:30:00Z","updatedAt":"2024-03-01T09:30:00Z"}]`)

	bs, err = Encode(nil)
	is.NoErr(err)
	is.Equal(string(bs), `[]`)
}

func TestDecode(t *testing.T) {
	for _, in := range []string{"", " \n", "null", "[]"} {
		is := is.New(t)
		got, err := Decode([]byte(in))
		is.NoErr(err)
		is.Equal(len(got), 0)
		is.True(got != nil)
	}
	for _, in := range []string{"{", "tasks", `{"id":"a"}`, `[{"createdAt":"yesterday"}]`} {
		is := is.New(t)
		_, err := Decode([]byte(in))
		is.True(errors.Is(err, ErrMalformed))
		is.True(strings.Contains(err.Error(), "malformed"))
	}
}
