package service

import "errors"

var (
	// ErrNotLoaded is returned when a reference list is read before a
	// successful load. Given correct flow ordering it indicates a bug.
	ErrNotLoaded = errors.New("reference data not loaded")

	// ErrIndexOutOfRange is returned for a selection index outside the
	// loaded list. Pagination bounds should make this unreachable.
	ErrIndexOutOfRange = errors.New("reference index out of range")

	// ErrEmptySession is returned when finalization is attempted with no
	// confirmed products. The menu flow prevents it; the finalizer still
	// guards so a zero-row file can never be produced.
	ErrEmptySession = errors.New("session has no products")
)
