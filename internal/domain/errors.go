package domain

import "errors"

var (
	// ErrUnsupportedTenor is returned for a label outside the tenor catalog.
	ErrUnsupportedTenor = errors.New("unsupported tenor")
	// ErrNoSupportedTenors is returned when a supplied tenor list has no catalog tenors.
	ErrNoSupportedTenors = errors.New("no supported tenors found")
	// ErrNoOverlap is returned when no tenor has a usable value on both sides.
	ErrNoOverlap = errors.New("no overlapping tenors with values on both sides")
)
