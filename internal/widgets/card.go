// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing helpers (board frame, cards, canvas compositor)
//
// Not allowed here:
// - input handling, drag state, or board policy
package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 0)
	activeStyle = cardStyle.BorderStyle(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("212"))
	pinnedStyle = cardStyle.BorderForeground(lipgloss.Color("238"))
	gripStyle   = lipgloss.NewStyle().Bold(true).Reverse(true)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	bodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// Frame renders an empty bordered box of the given outer size with title
// set into the top border.
func Frame(title string, width, height int) string {
	if width < 2 || height < 2 {
		return ""
	}
	box := frameStyle.Width(width - 2).Height(height - 2).Render("")
	if title == "" || width < 6 {
		return box
	}
	c := NewCanvas(width, height)
	c.Paint(box, 0, 0)
	c.Paint(titleStyle.Render(" "+ansi.Truncate(title, width-6, "…")+" "), 2, 0)
	return c.String()
}

// Card is one board card.
type Card struct {
	Title  string
	Body   string
	Width  int
	Height int
	// Grip renders the title row as the drag handle.
	Grip   bool
	Active bool
	Pinned bool
}

// Render draws the card at its outer size.
func (c Card) Render() string {
	if c.Width < 3 || c.Height < 3 {
		return ""
	}
	inner := c.Width - 2
	title := ansi.Truncate(c.Title, inner, "…")
	if c.Grip {
		title = gripStyle.Render(padRight(title, inner))
	} else {
		title = titleStyle.Render(title)
	}
	lines := []string{title}
	for _, l := range strings.Split(c.Body, "\n") {
		if len(lines) >= c.Height-2 {
			break
		}
		lines = append(lines, bodyStyle.Render(ansi.Truncate(l, inner, "…")))
	}

	style := cardStyle
	switch {
	case c.Active:
		style = activeStyle
	case c.Pinned:
		style = pinnedStyle
	}
	return style.Width(inner).Height(c.Height - 2).Render(strings.Join(lines, "\n"))
}

func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
