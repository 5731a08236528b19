package leave

import "errors"

var (
	ErrCutiNotFound         = errors.New("leave request not found")
	ErrCutiAlreadyProcessed = errors.New("leave request already processed")
	ErrInvalidDateRange     = errors.New("end date must not precede start date")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrInvalidJenis         = errors.New("unknown leave type")
	ErrInvalidAction        = errors.New("action must be approve or reject")
)
