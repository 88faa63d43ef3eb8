package xrm

import "errors"

// ErrMalformedSpecifier is returned when the parser cannot derive an entry
// or query from the input: no components found, an illegal character in a
// component, a missing ':' separator, a wildcard on the name side of a
// query, or an entry ending in a binding with no following component.
var ErrMalformedSpecifier = errors.New("xrm: malformed specifier")

// ErrLengthMismatch is returned when a query's class component sequence is
// present but has a different length than its name component sequence.
var ErrLengthMismatch = errors.New("xrm: query name and class length mismatch")
