package tally

import "errors"

// ErrInvalidState indicates a persisted tally exists but cannot be decoded.
var ErrInvalidState = errors.New("tally: invalid state")
