package service

import "errors"

// Engine error taxonomy. Both are fatal to the single call that raised them;
// nothing in the engine retries. Hosts branch on these with errors.Is.
var (
	// ErrInvalidInput covers non-positive prices, negative ATR, out-of-range
	// risk percentages and the like.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDegenerateStop means entry and stop-loss coincide, so no position
	// size can be derived. Distinct from ErrInvalidInput so hosts can still
	// surface the levels without sizing if they choose to.
	ErrDegenerateStop = errors.New("degenerate stop")
)
