package shiftswap

import "errors"

var (
	ErrSwapNotFound         = errors.New("shift change request not found")
	ErrSwapAlreadyProcessed = errors.New("shift change request already processed")
	ErrDuplicatePending     = errors.New("a pending shift change already exists for this date")
	ErrInvalidStatus        = errors.New("status must be approved or rejected")
)
