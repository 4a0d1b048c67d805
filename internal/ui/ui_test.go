package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/td0m/desktasks/pkg/task"
)

func TestTabs_Set(t *testing.T) {
	is := is.New(t)
	tabs := NewTabs([]string{"All", "Pending", "Completed"})
	tabs.Next()
	is.Equal(tabs.Value(), 1)
	tabs.Set(3)
	is.Equal(tabs.Value(), 0)
	tabs.Set(-1)
	is.Equal(tabs.Value(), 2)
	is.True(strings.Contains(tabs.View(), "Completed"))
}

func TestRenderTask(t *testing.T) {
	is := is.New(t)
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	out := RenderTask(task.Task{Title: "Buy milk", Priority: task.High, Category: "Shopping", DueDate: "2024-03-02"}, now, false, "")
	is.True(strings.Contains(out, "Buy milk"))
	is.True(strings.Contains(out, "high"))
	is.True(strings.Contains(out, "Shopping"))
	is.True(strings.Contains(out, "1 day"))

	out = RenderTask(task.Task{Title: "Buy milk", Priority: task.Low}, now, true, "EDITING")
	is.True(strings.Contains(out, "EDITING"))
	is.True(!strings.Contains(out, "Buy milk"))
}

func TestDueColor(t *testing.T) {
	is := is.New(t)
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	is.Equal(DueColor(now.AddDate(0, 0, -3), now), Red)
	is.Equal(DueColor(now.AddDate(0, 0, 2), now), Red)
	is.Equal(DueColor(now.AddDate(0, 0, 10), now), Orange)
	is.Equal(DueColor(now.AddDate(0, 0, 30), now), Faded)
}

func TestRenderStats(t *testing.T) {
	is := is.New(t)
	out := RenderStats(task.Stats{Total: 4, Completed: 1, Pending: 3, High: 2, Medium: 1})
	is.True(strings.Contains(out, "1/4"))
	is.True(strings.Contains(out, "(25%)"))
	is.True(strings.Contains(out, " 2"))
}
