package response

import (
	"errors"
	"net/http"

	"github.com/absenin/absensi-backend-go/internal/domain/attendance"
	"github.com/absenin/absensi-backend-go/internal/domain/auth"
	"github.com/absenin/absensi-backend-go/internal/domain/correction"
	"github.com/absenin/absensi-backend-go/internal/domain/leave"
	"github.com/absenin/absensi-backend-go/internal/domain/outlet"
	"github.com/absenin/absensi-backend-go/internal/domain/schedule"
	"github.com/absenin/absensi-backend-go/internal/domain/shift"
	"github.com/absenin/absensi-backend-go/internal/domain/shiftswap"
	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/absenin/absensi-backend-go/internal/pkg/validator"
)

type errorMapping struct {
	sentinel   error
	statusCode int
	code       string
}

// errorMappings pins each domain sentinel to its HTTP status and
// machine-readable error code. Clients branch on the code, so it names the
// condition, not the status class.
var errorMappings = []errorMapping{
	// auth
	{auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
	{auth.ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED"},
	{auth.ErrTokenExpired, http.StatusUnauthorized, "UNAUTHORIZED"},
	{auth.ErrRefreshTokenRevoked, http.StatusUnauthorized, "UNAUTHORIZED"},
	{auth.ErrUserNotFound, http.StatusNotFound, "NOT_FOUND"},
	{auth.ErrUserInactive, http.StatusForbidden, "FORBIDDEN"},

	// users
	{user.ErrUserNotFound, http.StatusNotFound, "NOT_FOUND"},
	{user.ErrUserEmailExists, http.StatusConflict, "CONFLICT"},
	{user.ErrUserInactive, http.StatusForbidden, "FORBIDDEN"},
	{user.ErrNotSubordinate, http.StatusForbidden, "FORBIDDEN"},
	{user.ErrApprovalNotAllowed, http.StatusForbidden, "FORBIDDEN"},
	{user.ErrMasterDataForbidden, http.StatusForbidden, "FORBIDDEN"},
	{user.ErrNoStorePlacement, http.StatusBadRequest, "CONFIG_ERROR"},
	{user.ErrNoDefaultShift, http.StatusBadRequest, "CONFIG_ERROR"},

	// attendance
	{attendance.ErrAlreadyCheckedIn, http.StatusConflict, "ALREADY_CHECKED_IN"},
	{attendance.ErrAlreadyCheckedOut, http.StatusConflict, "ALREADY_CHECKED_OUT"},
	{attendance.ErrOutletMismatch, http.StatusConflict, "OUTLET_MISMATCH"},
	{attendance.ErrAbsensiLocked, http.StatusConflict, "CONFLICT"},
	{attendance.ErrMissingPhoto, http.StatusBadRequest, "VALIDATION_ERROR"},
	{attendance.ErrMissingLocation, http.StatusBadRequest, "LOCATION_ERROR"},
	{attendance.ErrNoOutletSelected, http.StatusBadRequest, "NO_OUTLET_SELECTED"},
	{attendance.ErrOutletRequired, http.StatusBadRequest, "OUTLET_REQUIRED"},
	{attendance.ErrNoShiftResolvable, http.StatusBadRequest, "CONFIG_ERROR"},
	{attendance.ErrOutOfRange, http.StatusForbidden, "OUT_OF_RANGE"},
	{attendance.ErrCheckInForbidden, http.StatusForbidden, "FORBIDDEN"},
	{attendance.ErrAbsensiNotFound, http.StatusNotFound, "NOT_FOUND"},

	// corrections
	{correction.ErrKoreksiNotFound, http.StatusNotFound, "NOT_FOUND"},
	{correction.ErrKoreksiAlreadyProcessed, http.StatusConflict, "CONFLICT"},
	{correction.ErrNoProposedTimes, http.StatusBadRequest, "VALIDATION_ERROR"},
	{correction.ErrInvalidAction, http.StatusBadRequest, "VALIDATION_ERROR"},

	// leave
	{leave.ErrCutiNotFound, http.StatusNotFound, "NOT_FOUND"},
	{leave.ErrCutiAlreadyProcessed, http.StatusConflict, "CONFLICT"},
	{leave.ErrInvalidDateRange, http.StatusBadRequest, "VALIDATION_ERROR"},
	{leave.ErrInvalidJenis, http.StatusBadRequest, "VALIDATION_ERROR"},
	{leave.ErrInvalidAction, http.StatusBadRequest, "VALIDATION_ERROR"},
	{leave.ErrInsufficientBalance, http.StatusBadRequest, "VALIDATION_ERROR"},

	// shift swaps
	{shiftswap.ErrSwapNotFound, http.StatusNotFound, "NOT_FOUND"},
	{shiftswap.ErrSwapAlreadyProcessed, http.StatusConflict, "CONFLICT"},
	{shiftswap.ErrDuplicatePending, http.StatusConflict, "DUPLICATE_REQUEST"},
	{shiftswap.ErrInvalidStatus, http.StatusBadRequest, "VALIDATION_ERROR"},

	// master data
	{outlet.ErrOutletNotFound, http.StatusNotFound, "NOT_FOUND"},
	{outlet.ErrOutletInactive, http.StatusBadRequest, "VALIDATION_ERROR"},
	{shift.ErrShiftNotFound, http.StatusNotFound, "NOT_FOUND"},
	{shift.ErrShiftNameExists, http.StatusConflict, "CONFLICT"},
	{shift.ErrShiftInUse, http.StatusConflict, "CONFLICT"},

	// schedule
	{schedule.ErrJadwalNotFound, http.StatusNotFound, "NOT_FOUND"},
	{schedule.ErrNoShiftResolvable, http.StatusBadRequest, "CONFIG_ERROR"},
}

// HandleError maps domain errors to HTTP responses. Handlers call this with
// whatever the service returned; anything unrecognized becomes a 500 without
// leaking the underlying message.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			Error(w, m.statusCode, m.code, err.Error())
			return
		}
	}

	InternalServerError(w, "An unexpected error occurred")
}
