package fivetran

import (
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ErrSuccess Err = iota
	ErrUnknownTool
	ErrBadParameter
	ErrUpstream
	ErrConfiguration
	ErrConflict
	ErrNotImplemented
	ErrInternalServerError
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Errors
type Err int

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e Err) Error() string {
	switch e {
	case ErrSuccess:
		return "success"
	case ErrUnknownTool:
		return "unknown tool"
	case ErrBadParameter:
		return "bad parameter"
	case ErrUpstream:
		return "upstream error"
	case ErrConfiguration:
		return "configuration error"
	case ErrConflict:
		return "conflict"
	case ErrNotImplemented:
		return "not implemented"
	case ErrInternalServerError:
		return "internal server error"
	}
	return fmt.Sprintf("error code %d", int(e))
}

func (e Err) With(args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprint(args...))
}

func (e Err) Withf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprintf(format, args...))
}
