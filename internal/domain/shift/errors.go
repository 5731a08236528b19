package shift

import "errors"

var (
	ErrShiftNotFound   = errors.New("shift not found")
	ErrShiftNameExists = errors.New("shift name already exists")
	ErrShiftInUse      = errors.New("shift is referenced by schedules and cannot be deleted")
)
