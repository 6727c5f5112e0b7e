package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/jaskboard/internal/dom"
	"github.com/jask/jaskboard/internal/widgets"
)

var (
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Padding(0, 2)
	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 2)
	statusErrStyle = statusBarStyle.Foreground(lipgloss.Color("203"))
)

func (a *App) View() string {
	width, height := a.width, a.height-2
	if a.container != nil && (width <= 0 || height <= 0) {
		r := a.container.Rect()
		width, height = r.X+r.W, r.Y+r.H
	}
	if width <= 0 || height <= 0 {
		return a.statusLine(0) + "\n" + a.footerLine(0)
	}

	canvas := widgets.NewCanvas(width, height)
	if a.container != nil {
		r := a.container.Rect()
		canvas.Paint(widgets.Frame(a.container.Text, r.W, r.H), r.X, r.Y)
		a.paintCards(canvas)
	}
	return canvas.String() + "\n" + a.statusLine(width) + "\n" + a.footerLine(width)
}

// paintCards draws cards in document order with the held card on top.
func (a *App) paintCards(c *widgets.Canvas) {
	var held *dom.Element
	if a.engine != nil {
		if it, ok := a.engine.Active(); ok {
			held = it.Element
		}
	}
	for _, card := range a.container.Children() {
		if card == held {
			continue
		}
		a.paintCard(c, card, false)
	}
	if held != nil {
		a.paintCard(c, held, true)
	}
}

func (a *App) paintCard(c *widgets.Canvas, el *dom.Element, active bool) {
	r := el.Rect()
	w := widgets.Card{
		Title:  el.Attr("title"),
		Body:   el.Text,
		Width:  r.W,
		Height: r.H,
		Grip:   a.opts.Markers.Handle != "" && el.Query(a.opts.Markers.Handle) != nil,
		Active: active,
		Pinned: !el.HasAttr(a.opts.Markers.Item),
	}
	c.Paint(w.Render(), r.X, r.Y)
}

func (a *App) statusLine(width int) string {
	style := statusBarStyle
	if a.statusErr {
		style = statusErrStyle
	}
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(a.status)
}

func (a *App) footerLine(width int) string {
	hint := "drag a card to move it"
	if a.opts.Markers.Handle != "" {
		hint = "drag a card by its title row"
	}
	style := footerStyle
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(strings.TrimSpace(a.keys.footerText(hint)))
}
