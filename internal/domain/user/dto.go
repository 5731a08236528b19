package user

type UpdateUserRequest struct {
	ID              string
	Nama            *string
	Role            *Role
	AtasanID        *string
	ShiftDefaultID  *string
	PenempatanStore *string
	IsActive        *bool
	JatahCuti       *int
	SisaCuti        *int
}

type SubordinateResponse struct {
	ID              string  `json:"id"`
	Nama            string  `json:"nama"`
	Role            Role    `json:"role"`
	PenempatanStore *string `json:"penempatan_store,omitempty"`
}
