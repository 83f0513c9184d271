package fm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned for malformed match requests, before any
	// platform service is consulted.
	ErrInvalidRequest = errors.New("invalid font request")

	// ErrNotRegistered is returned when unregistering a path that has no
	// outstanding registrations.
	ErrNotRegistered = errors.New("font is not registered")
)

// ResourceError reports that the platform refused to add or remove a font
// resource.
type ResourceError struct {
	Op   string // "register" or "unregister"
	Path string
}

func (e *ResourceError) Error() string {
	switch e.Op {
	case "unregister":
		return fmt.Sprintf("%s %s: no font resources were removed", e.Op, e.Path)
	}
	return fmt.Sprintf("%s %s: no font resources were added", e.Op, e.Path)
}

// ResolveError reports that the platform could not map a selected font to
// its backing file.
type ResolveError struct {
	Face string
	Err  error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolving font file for %q: %v", e.Face, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

func invalidRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
