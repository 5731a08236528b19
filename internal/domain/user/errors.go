package user

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserInactive        = errors.New("user is not active")
	ErrUserEmailExists     = errors.New("email already registered")
	ErrNoDefaultShift      = errors.New("user has no default shift configured")
	ErrNoStorePlacement    = errors.New("user has no store placement")
	ErrNotSubordinate      = errors.New("user is not your subordinate")
	ErrApprovalNotAllowed  = errors.New("role cannot approve requests")
	ErrMasterDataForbidden = errors.New("role cannot manage master data")
)
