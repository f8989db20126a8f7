package game

import "errors"

// Configuration errors. They are returned by constructors and are meant to
// stop the process at startup.
var (
	ErrEmptyPayTable      = errors.New("pay table is empty")
	ErrInvalidWeight      = errors.New("outcome weight must be > 0")
	ErrInvalidOutcome     = errors.New("outcome value must be >= 0")
	ErrEmptyBetLadder     = errors.New("bet ladder is empty")
	ErrInvalidBet         = errors.New("bet amounts must be positive and distinct")
	ErrBetIndexOutOfRange = errors.New("bet index out of range")
	ErrNilPresenter       = errors.New("presenter is required")
)
