package board

import (
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/jask/jaskboard/internal/dom"
)

// Warning is a lint finding on a board document.
type Warning struct {
	Element string
	Message string
}

func (w Warning) String() string {
	if w.Element == "" {
		return w.Message
	}
	return w.Element + ": " + w.Message
}

// typoDistance is the largest edit distance reported as a likely misspelling
// of a marker attribute.
const typoDistance = 2

// Lint looks for attribute names that are probably misspelt markers and for
// boards where nothing can be dragged. Discovery is by exact attribute name,
// so a typo silently removes a card from the engine.
func Lint(doc *dom.Document, m Markers) []Warning {
	if doc == nil || doc.Root == nil {
		return nil
	}
	markers := []string{m.Container, m.Item, m.Handle}
	var out []Warning
	items := 0
	doc.Root.Walk(func(e *dom.Element) bool {
		if e.HasAttr(m.Item) {
			items++
		}
		names := e.AttrNames()
		sort.Strings(names)
		for _, name := range names {
			if suspect, ok := nearMarker(name, markers); ok {
				out = append(out, Warning{
					Element: describe(e),
					Message: fmt.Sprintf("attribute %q looks like a misspelling of %q", name, suspect),
				})
			}
		}
		return true
	})
	if items == 0 {
		out = append(out, Warning{Message: fmt.Sprintf("no element carries [%s]; nothing can be dragged", m.Item)})
	}
	return out
}

func nearMarker(name string, markers []string) (string, bool) {
	for _, marker := range markers {
		if name == marker {
			return "", false
		}
	}
	for _, marker := range markers {
		if marker == "" {
			continue
		}
		d := levenshtein.ComputeDistance(name, marker)
		if d > 0 && d <= typoDistance {
			return marker, true
		}
	}
	return "", false
}

func describe(e *dom.Element) string {
	if e.ID != "" {
		return e.Tag + "#" + e.ID
	}
	if p := e.Parent(); p != nil && p.ID != "" {
		return p.Tag + "#" + p.ID + " > " + e.Tag
	}
	return e.Tag
}
