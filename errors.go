package debounce

import "errors"

// ErrInvalidArgument is returned when a debouncer is constructed without a
// function to invoke.
var ErrInvalidArgument = errors.New("debounce: invalid argument")
