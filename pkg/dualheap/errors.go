package dualheap

import "errors"

var (
	// ErrAlreadyInit is returned when Init or InitSecond is called for a
	// region that already has memory attached.
	ErrAlreadyInit = errors.New("dualheap: region already initialized")
)
