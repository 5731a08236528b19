package correction

import "errors"

var (
	ErrKoreksiNotFound         = errors.New("correction request not found")
	ErrKoreksiAlreadyProcessed = errors.New("correction request already processed")
	ErrNoProposedTimes         = errors.New("at least one corrected time is required")
	ErrInvalidAction           = errors.New("action must be approve or reject")
)
