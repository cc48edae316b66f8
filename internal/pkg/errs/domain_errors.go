package errs

import cr "github.com/cockroachdb/errors"

// Sentinel errors shared by the domain, use case and handler layers.
// Match them with errs.Is: it sees both wrapped and Mark-ed errors.
var (
	// Non-positive booking duration or pool capacity.
	ErrInvalidArgument = cr.New("invalid argument")

	// Booking committed on a lot that is still busy. Indicates an ordering or
	// withdrawal bug, never a caller mistake.
	ErrInvalidState = cr.New("invalid state")

	// The caller's context ended while waiting to withdraw a lot.
	ErrCanceled = cr.New("allocation canceled")
)
