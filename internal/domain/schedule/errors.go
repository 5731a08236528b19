package schedule

import "errors"

var (
	ErrJadwalNotFound    = errors.New("schedule entry not found")
	ErrNoShiftResolvable = errors.New("no shift resolvable for user and date")
)
