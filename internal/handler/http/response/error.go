package response

import (
	"errors"
	"net/http"

	"github.com/hrsuite/payroll-backend-go/internal/domain/auth"
	"github.com/hrsuite/payroll-backend-go/internal/domain/payroll"
	"github.com/hrsuite/payroll-backend-go/internal/domain/user"
	"github.com/hrsuite/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")

	// Amount validation on edit commits
	case errors.Is(err, payroll.ErrNonNumeric):
		BadRequest(w, "Amount must be numeric", nil)
	case errors.Is(err, payroll.ErrNegativeAmount):
		BadRequest(w, "Amount must not be negative", nil)
	case errors.Is(err, payroll.ErrExceedsCeiling):
		BadRequest(w, "Amount exceeds the fetched default", nil)

	// Draft operation errors
	case errors.Is(err, payroll.ErrInvalidOperation):
		BadRequest(w, "Operation not valid for this item", nil)
	case errors.Is(err, payroll.ErrEditInProgress):
		Conflict(w, "An edit session is still open")
	case errors.Is(err, payroll.ErrRemarkRequired):
		BadRequest(w, "Remark is required when defaults were edited", nil)

	// Draft lifecycle errors
	case errors.Is(err, payroll.ErrDraftNotFound):
		NotFound(w, "No payroll draft loaded")
	case errors.Is(err, payroll.ErrDraftNotFetched):
		Conflict(w, "Payroll draft has no fetched data")
	case errors.Is(err, payroll.ErrDraftLocked):
		Conflict(w, "Draft is locked while submission is in flight")
	case errors.Is(err, payroll.ErrStaleFetch):
		Conflict(w, "Payroll data was superseded by a newer fetch")
	case errors.Is(err, payroll.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, payroll.ErrPayrollAlreadySubmitted):
		Conflict(w, "Payroll already submitted for this period")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
