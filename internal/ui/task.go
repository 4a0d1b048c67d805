package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/td0m/desktasks/pkg/task"
	"github.com/td0m/desktasks/pkg/task/date"
)

var (
	TaskIcon  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	undone    = TaskIcon.Copy().Foreground(Secondary).Render("•")
	done      = TaskIcon.Copy().Foreground(Green).Render("✓")
	TaskTitle = lipgloss.NewStyle().Bold(true)
	titleDone = TaskTitle.Copy().Foreground(Secondary).Strikethrough(true)
	Selected  = lipgloss.NewStyle().Background(Faded)

	TaskDivider  = lipgloss.NewStyle().Foreground(Faded).Padding(0, 1).Render("∙")
	TaskCategory = lipgloss.NewStyle().Foreground(Blue)
	TaskNotes    = lipgloss.NewStyle().Foreground(Secondary)

	Muted = lipgloss.NewStyle().Foreground(Faded)
	Error = lipgloss.NewStyle().Foreground(Red)
)

func RenderIcon(t task.Task) string {
	if t.Completed {
		return done
	}
	return undone
}

func Title(t task.Task) lipgloss.Style {
	if t.Completed {
		return titleDone
	}
	return TaskTitle
}

func RenderPriority(p task.Priority) string {
	return lipgloss.NewStyle().Foreground(PriorityColor(p)).Render(string(p))
}

// DueColor is red within two days (or overdue), orange within two weeks
func DueColor(due, now time.Time) lipgloss.Color {
	switch days := date.Days(due, now); {
	case days <= 2:
		return Red
	case days <= 14:
		return Orange
	default:
		return Faded
	}
}

// RenderDue shows the stored due date relative to now, "" when there is none
func RenderDue(t task.Task, now time.Time) string {
	if t.DueDate == "" {
		return ""
	}
	due, err := date.ParseISO(t.DueDate)
	if err != nil {
		return TaskDivider + Error.Render(t.DueDate)
	}
	f := lipgloss.NewStyle().Foreground(DueColor(due, now))
	if t.Completed {
		f = f.Copy().Foreground(Faded)
	}
	return TaskDivider + f.Render(date.Relative(due, now))
}

// RenderTask renders a task on one line, title replaces the title when not empty
// (e.g. with a text input while editing)
func RenderTask(t task.Task, now time.Time, selected bool, title string) string {
	var s strings.Builder
	s.WriteString(RenderIcon(t))
	if title == "" {
		style := Title(t)
		if selected {
			style = style.Copy().Background(Faded)
		}
		title = style.Render(t.Title)
	}
	s.WriteString(title)
	s.WriteString(TaskDivider)
	s.WriteString(RenderPriority(t.Priority))
	if t.Category != "" {
		s.WriteString(TaskDivider)
		s.WriteString(TaskCategory.Render(t.Category))
	}
	s.WriteString(RenderDue(t, now))
	if t.Description != "" {
		s.WriteString(TaskDivider)
		s.WriteString(TaskNotes.Render(t.Description))
	}
	return s.String()
}
