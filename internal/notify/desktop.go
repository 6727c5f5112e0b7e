package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/sirupsen/logrus"

	"github.com/jask/jaskboard/internal/drag"
)

// Desktop shows a desktop notification for each layout change. Delivery
// runs on its own goroutine so a slow notification daemon never stalls
// input handling.
type Desktop struct {
	Log logrus.FieldLogger
	// Send defaults to beeep.Notify.
	Send func(title, message, icon string) error
}

func (d Desktop) LayoutChanged(c drag.LayoutChange) {
	send := d.Send
	if send == nil {
		send = beeep.Notify
	}
	title := "jaskboard"
	message := fmt.Sprintf("%s moved to %d,%d", c.Item, c.Left, c.Top)
	go func() {
		if err := send(title, message, ""); err != nil && d.Log != nil {
			d.Log.WithError(err).Debug("desktop notification failed")
		}
	}()
}
