package ui

import (
	"github.com/charmbracelet/lipgloss"

	"tagdo/internal/present"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	badgeStyle = lipgloss.NewStyle().Padding(0, 1)
	doneStyle  = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
	grabStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))

	filterOn  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#22C55E")).Padding(0, 1)
	filterOff = lipgloss.NewStyle().Padding(0, 1)
	tagOn     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#3B82F6")).Padding(0, 1)
)

type colors struct{ fg, bg string }

var tagColors = map[present.TagCategory]colors{
	present.TagWork:     {"#1E40AF", "#DBEAFE"},
	present.TagStudy:    {"#166534", "#DCFCE7"},
	present.TagPersonal: {"#6B21A8", "#F3E8FF"},
	present.TagHealth:   {"#991B1B", "#FEE2E2"},
	present.TagShopping: {"#854D0E", "#FEF9C3"},
	present.TagDefault:  {"#1F2937", "#F3F4F6"},
}

var urgencyColors = map[present.Urgency]colors{
	present.Overdue:     {"#DC2626", "#FEE2E2"},
	present.DueToday:    {"#CA8A04", "#FEF9C3"},
	present.DueTomorrow: {"#EA580C", "#FFEDD5"},
	present.DueSoon:     {"#2563EB", "#DBEAFE"},
	present.DueLater:    {"#6B7280", "#F3F4F6"},
}

func (c colors) style() lipgloss.Style {
	return badgeStyle.Foreground(lipgloss.Color(c.fg)).Background(lipgloss.Color(c.bg))
}

func tagBadge(tag string) string {
	return tagColors[present.ClassifyTag(tag)].style().Render(tag)
}

func deadlineBadge(b present.Badge) string {
	return urgencyColors[b.Urgency].style().Render(b.Label)
}
