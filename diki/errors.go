package diki

import "errors"

// ErrMissingExpectedField is returned when an attribute or child that the markup always
// carries is absent.
var ErrMissingExpectedField = errors.New("missing expected field")
