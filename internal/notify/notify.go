// Package notify provides receivers for the drag engine's layout-changed
// notifications.
package notify

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jask/jaskboard/internal/drag"
)

// LogSink writes each layout change as a structured log entry.
type LogSink struct {
	Log logrus.FieldLogger
}

func (s LogSink) LayoutChanged(c drag.LayoutChange) {
	if s.Log == nil {
		return
	}
	s.Log.WithFields(logrus.Fields{
		"notification": c.ID,
		"container":    c.Container,
		"item":         c.Item,
		"left":         c.Left,
		"top":          c.Top,
		"layout":       FormatLayout(c.Layout),
	}).Info("layout changed")
}

// Multi fans a notification out to every sink in order.
type Multi []drag.Sink

func (m Multi) LayoutChanged(c drag.LayoutChange) {
	for _, s := range m {
		if s != nil {
			s.LayoutChanged(c)
		}
	}
}

// Recorder keeps notifications until they are drained. It is not safe for
// concurrent use; the engine calls it from the input goroutine.
type Recorder struct {
	changes []drag.LayoutChange
}

func (r *Recorder) LayoutChanged(c drag.LayoutChange) {
	r.changes = append(r.changes, c)
}

// Drain returns the recorded notifications and forgets them.
func (r *Recorder) Drain() []drag.LayoutChange {
	out := r.changes
	r.changes = nil
	return out
}

func (r *Recorder) Len() int { return len(r.changes) }

// FormatLayout renders placements as "a@15,17 b@40,2".
func FormatLayout(layout []drag.Placement) string {
	parts := make([]string, 0, len(layout))
	for _, p := range layout {
		parts = append(parts, fmt.Sprintf("%s@%d,%d", p.ID, p.Left, p.Top))
	}
	return strings.Join(parts, " ")
}
