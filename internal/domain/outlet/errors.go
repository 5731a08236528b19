package outlet

import "errors"

var (
	ErrOutletNotFound = errors.New("outlet not found")
	ErrOutletInactive = errors.New("outlet is not active")
)
