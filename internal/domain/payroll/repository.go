package payroll

import "context"

// Repository defines the two external I/O operations the draft lifecycle
// depends on. All methods take companyID to prevent cross-company data
// access.
type Repository interface {
	// FetchPayrollData assembles the raw payroll payload for one
	// employee/period: base salary, component arrays, holiday rows,
	// attendance shifts and the week-off pay scalar.
	FetchPayrollData(ctx context.Context, companyID, employeeID string, period Period) (RawPayrollData, error)

	// SubmitPayroll persists a built payload atomically and returns the new
	// record id. A second submission for the same employee/period fails with
	// ErrPayrollAlreadySubmitted.
	SubmitPayroll(ctx context.Context, companyID string, payload SubmissionPayload) (string, error)
}
