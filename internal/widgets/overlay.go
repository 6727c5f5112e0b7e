package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Canvas is a fixed-size grid of styled lines that blocks are painted onto.
type Canvas struct {
	width  int
	height int
	lines  []string
}

// NewCanvas returns a blank width x height canvas.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{width: max(0, width), height: max(0, height)}
	c.lines = splitToLines("", c.height)
	for i := range c.lines {
		c.lines[i] = strings.Repeat(" ", c.width)
	}
	return c
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Paint draws block with its top-left corner at (x, y). Parts outside the
// canvas are clipped, including negative offsets.
func (c *Canvas) Paint(block string, x, y int) {
	if c.width == 0 || c.height == 0 {
		return
	}
	for i, line := range splitToLines(block, 0) {
		row := y + i
		if row < 0 || row >= c.height {
			continue
		}
		if x < 0 {
			line = dropColumns(line, -x)
			c.lines[row] = overlayLine(c.lines[row], line, 0, c.width)
			continue
		}
		c.lines[row] = overlayLine(c.lines[row], line, x, c.width)
	}
}

func (c *Canvas) String() string {
	return strings.Join(c.lines, "\n")
}

func overlayLine(target, line string, x, width int) string {
	if x >= width {
		return target
	}
	target = padRightANSI(target, width)
	left := ansi.Truncate(target, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	line = ansi.Truncate(line, width-x, "")
	pos := x + ansi.StringWidth(line)
	right := dropColumns(target, pos)
	if gap := width - pos - ansi.StringWidth(right); gap > 0 {
		right = strings.Repeat(" ", gap) + right
	}
	return left + line + right
}

func splitToLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	for height > 0 && len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func dropColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	truncated := ansi.Truncate(s, cols, "")
	return strings.TrimPrefix(s, truncated)
}

func padRightANSI(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
