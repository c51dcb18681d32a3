package cubelayers

import "errors"

// Sentinel errors for the cubelayers package.
var (
	// Input errors
	ErrUnknownToken = errors.New("cubelayers: unknown move token")
	ErrUnknownLayer = errors.New("cubelayers: unknown layer")
	ErrInvalidSwap  = errors.New("cubelayers: swap not permitted")
	ErrNoResolver   = errors.New("cubelayers: no pointer resolver configured")

	// Operation errors
	ErrNoOp         = errors.New("cubelayers: nothing to do")
	ErrPrecondition = errors.New("cubelayers: precondition failed")
	ErrBusy         = errors.New("cubelayers: another operation is in progress")
)
