package attendance

import "errors"

var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")
	ErrMissingPhoto      = errors.New("attendance proof photo is required")
	ErrMissingLocation   = errors.New("GPS location is required")
	ErrNoOutletSelected  = errors.New("no outlet selected")
	ErrOutletRequired    = errors.New("outlet id is required for check-out")
	ErrOutOfRange        = errors.New("you are outside the outlet radius")
	ErrOutletMismatch    = errors.New("check-out outlet must match check-in outlet")
	ErrNoShiftResolvable = errors.New("no shift configured for today")
	ErrCheckInForbidden  = errors.New("cannot check in on behalf of another user")

	// General errors
	ErrAbsensiNotFound = errors.New("attendance record not found")
	ErrAbsensiLocked   = errors.New("attendance record is locked by leave sync")
)
