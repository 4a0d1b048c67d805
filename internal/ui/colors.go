package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/td0m/desktasks/pkg/task"
)

const (
	Background = lipgloss.Color("#000")

	Primary   = lipgloss.Color("#fff")
	Secondary = lipgloss.Color("#888")
	Faded     = lipgloss.Color("#555")

	Blue   = lipgloss.Color("#4db7ff")
	Green  = lipgloss.Color("#00a352")
	Red    = lipgloss.Color("#c42912")
	Yellow = lipgloss.Color("#c4b810")
	Orange = lipgloss.Color("#c27510")
)

var priorityColors = map[task.Priority]lipgloss.Color{
	task.High:   Red,
	task.Medium: Yellow,
	task.Low:    Green,
}

// PriorityColor falls back to Secondary for priorities it does not know
func PriorityColor(p task.Priority) lipgloss.Color {
	if c, ok := priorityColors[p]; ok {
		return c
	}
	return Secondary
}
