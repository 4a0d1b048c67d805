package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/td0m/desktasks/pkg/task"
)

var statLabel = lipgloss.NewStyle().Foreground(Secondary)

// RenderStats is the one line summary shown next to the tabs
func RenderStats(s task.Stats) string {
	left := make([]string, len(task.Priorities))
	// highest first
	for i, p := range []task.Priority{task.High, task.Medium, task.Low} {
		left[i] = RenderPriority(p) + fmt.Sprintf(" %d", count(s, p))
	}
	return statLabel.Render("done ") + fmt.Sprintf("%d/%d", s.Completed, s.Total) +
		statLabel.Render(fmt.Sprintf(" (%d%%)", s.CompletionRate())) +
		TaskDivider + statLabel.Render("left ") + strings.Join(left, " ")
}

func count(s task.Stats, p task.Priority) int {
	switch p {
	case task.High:
		return s.High
	case task.Medium:
		return s.Medium
	case task.Low:
		return s.Low
	}
	return 0
}
