package calculator

import "errors"

var (
	// ErrInvalidShape means the matrix has no companies or no timesteps
	ErrInvalidShape = errors.New("invalid return matrix shape")
	// ErrInvalidSkip means skipSteps is negative or would drop every timestep
	ErrInvalidSkip = errors.New("invalid skip steps")
	// ErrInvalidInvestment means dailyInvestment is negative or not finite
	ErrInvalidInvestment = errors.New("invalid daily investment")
	// ErrInvalidPick means a strategy's picks do not match the
	// timesteps or name a company outside the matrix
	ErrInvalidPick = errors.New("invalid strategy pick")
)
