package payroll

import (
	"github.com/shopspring/decimal"
)

// Period identifies one payroll month.
type Period struct {
	Month int
	Year  int
}

// DraftStatus enum
type DraftStatus string

const (
	DraftStatusEmpty      DraftStatus = "empty"
	DraftStatusFetched    DraftStatus = "fetched"
	DraftStatusSubmitting DraftStatus = "submitting"
	DraftStatusSubmitted  DraftStatus = "submitted"
	DraftStatusFailed     DraftStatus = "failed"
)

// LineItemKind enum
type LineItemKind string

const (
	KindAllowance LineItemKind = "allowance"
	KindDeduction LineItemKind = "deduction"
	KindLoan      LineItemKind = "loan"
	KindAdvance   LineItemKind = "advance"
)

// ParseLineItemKind maps a route/request value to a LineItemKind.
func ParseLineItemKind(s string) (LineItemKind, bool) {
	switch LineItemKind(s) {
	case KindAllowance, KindDeduction, KindLoan, KindAdvance:
		return LineItemKind(s), true
	}
	return "", false
}

// LineItem is one selectable pay component inside a ledger.
// DefaultAmount is the amount as fetched and never changes afterwards;
// CurrentAmount is what the operator may edit within the kind policy.
type LineItem struct {
	ID            string
	Label         string
	DefaultAmount decimal.Decimal
	CurrentAmount decimal.Decimal
	Included      bool
	Editable      bool
	IsEditing     bool

	// working holds the uncommitted candidate while IsEditing.
	working string
}

// HolidayDate is one calendar date under a holiday definition.
// An unpaid date carries a zero amount no matter what the operator does.
type HolidayDate struct {
	ID            string
	Date          string
	Paid          bool
	DefaultAmount decimal.Decimal
	CurrentAmount decimal.Decimal
	IsEditing     bool

	working string
}

// HolidayGroup bundles the dates of one holiday definition behind a single
// all-or-nothing inclusion toggle.
type HolidayGroup struct {
	ID       string
	Name     string
	Included bool
	Dates    []*HolidayDate
}

// AttendanceRecord is one pre-computed daily row. All salary figures arrive
// already calculated upstream; nothing here re-derives them.
type AttendanceRecord struct {
	Date           string
	StatusName     string
	ActualHours    decimal.Decimal
	OvertimeHours  decimal.Decimal
	HourlySalary   decimal.Decimal
	DailySalary    decimal.Decimal
	OvertimeSalary decimal.Decimal
}

// Shift groups the attendance rows of one work schedule.
type Shift struct {
	Name             string
	TotalWorkingDays int
	Records          []AttendanceRecord
}

// AttendanceSummary holds the attendance-derived pay aggregate.
type AttendanceSummary struct {
	Shifts             []Shift
	BaseSalary         decimal.Decimal
	TotalOvertimeHours decimal.Decimal
	OvertimePay        decimal.Decimal
	WeekoffPay         decimal.Decimal
	PaySalary          decimal.Decimal
}

// Totals is derived from the ledgers and the attendance aggregate. It is
// recomputed after every mutation and never stored authoritatively.
type Totals struct {
	PaySalary        decimal.Decimal
	TotalAllowances  decimal.Decimal
	TotalDeductions  decimal.Decimal
	TotalHolidayPay  decimal.Decimal
	TotalLoans       decimal.Decimal
	TotalAdvances    decimal.Decimal
	AutoFinalPayable decimal.Decimal
}

// FinalPayableMode enum
type FinalPayableMode string

const (
	ModeAuto           FinalPayableMode = "auto"
	ModeManualOverride FinalPayableMode = "manual_override"
)

// FinalPayable tracks the payable amount in either auto-derived or
// manually-fixed mode.
type FinalPayable struct {
	Value     decimal.Decimal
	Mode      FinalPayableMode
	IsEditing bool

	working string
}

// PayrollDraft is the in-memory computation state for one employee/period.
type PayrollDraft struct {
	EmployeeID string
	Period     Period
	Status     DraftStatus

	Attendance AttendanceSummary
	Allowances *LineItemLedger
	Deductions *LineItemLedger
	Loans      *LineItemLedger
	Advances   *LineItemLedger
	Holidays   *HolidayLedger

	Totals       Totals
	FinalPayable FinalPayable
	Remark       string
	HasAnyEdit   bool
}
