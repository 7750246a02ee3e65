package payroll

import "errors"

var (
	// Commit validation failures. The edit session stays open and no state
	// is mutated when one of these is returned.
	ErrNonNumeric     = errors.New("amount is not a valid number")
	ErrNegativeAmount = errors.New("amount must be non-negative")
	ErrExceedsCeiling = errors.New("amount exceeds the fetched default")

	// ErrInvalidOperation is a caller error: editing a non-editable or
	// non-included item, or addressing an id that does not exist.
	ErrInvalidOperation = errors.New("operation not valid for this item")

	// Submission gate failures.
	ErrEditInProgress = errors.New("an edit session is still open")
	ErrRemarkRequired = errors.New("remark is required when defaults were edited")

	// Draft lifecycle failures.
	ErrDraftNotFound   = errors.New("no payroll draft loaded for this session")
	ErrDraftLocked     = errors.New("draft is locked while submission is in flight")
	ErrDraftNotFetched = errors.New("payroll draft has no fetched data")
	ErrStaleFetch      = errors.New("payroll data response no longer matches the current selection")

	// Repository failures.
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrPayrollAlreadySubmitted = errors.New("payroll already submitted for this period")
)
