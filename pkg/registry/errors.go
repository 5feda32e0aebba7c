package registry

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a required identifying parameter
// (interface name, or the whole lookup key set) is missing. It is always a
// hard failure; callers must not retry.
var ErrInvalidArgument = errors.New("invalid arguments")

// NotFoundError is returned when an explicit lookup over a non-empty
// definition set matches nothing. The message embeds the requested
// interface name so callers can log or surface it directly.
type NotFoundError struct {
	InterfaceName string
	ClassName     string
}

// Error implements error.
func (e *NotFoundError) Error() string {
	if e.ClassName != "" {
		return fmt.Sprintf("no definition found for interface %q with class %q", e.InterfaceName, e.ClassName)
	}
	return fmt.Sprintf("no definition found for interface %q", e.InterfaceName)
}

// IsNotFound reports whether err is a lookup miss.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
