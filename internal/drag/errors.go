package drag

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingID marks an item element without an identifier.
	ErrMissingID = errors.New("draggable item has no id")
	// ErrDuplicateID marks an item whose identifier is already registered.
	ErrDuplicateID = errors.New("draggable item id is not unique")
	// ErrUsage marks a wiring bug in the adapter layer.
	ErrUsage = errors.New("drag engine misuse")
)

// ConfigurationError reports an item that cannot be registered. It is
// returned from New and aborts construction.
type ConfigurationError struct {
	Attr  string // item marker attribute
	Index int    // position of the offending element in document order
	ID    string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("configuration: [%s] element #%d: %v", e.Attr, e.Index, e.Err)
	}
	return fmt.Sprintf("configuration: [%s] element #%d %q: %v", e.Attr, e.Index, e.ID, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// UsageError reports an internal invariant broken by the caller, such as a
// begin-drag call for an element the engine never registered.
type UsageError struct {
	Op     string
	Reason string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrUsage, e.Op, e.Reason)
}

func (e *UsageError) Unwrap() error { return ErrUsage }
