package payroll

import (
	"github.com/hrsuite/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== FETCH CONTRACT ==========

// RawPayrollData is the per-employee/per-period payload the draft is
// initialized from. Field names follow the upstream contract; missing numeric
// fields decode to zero.
type RawPayrollData struct {
	TotalSalary  decimal.Decimal     `json:"total_salary"`
	Allowances   []RawAllowance      `json:"employee_allowance_arr"`
	Deductions   []RawDeduction      `json:"employee_deduction_arr"`
	Holidays     []RawHolidayRow     `json:"holiday_list_arr"`
	Loans        []RawLoan           `json:"employee_loan_arr"`
	Advances     []RawAdvance        `json:"employee_advance_arr"`
	Attendance   []RawAttendanceSet  `json:"main_attendance_arr"`
	WeekOfSalary decimal.Decimal     `json:"week_of_salary"`
}

type RawAllowance struct {
	ID     string          `json:"id"`
	Name   string          `json:"allowance_name"`
	Amount decimal.Decimal `json:"allowance_amount"`
}

type RawDeduction struct {
	ID     string          `json:"id"`
	Name   string          `json:"deduction_name"`
	Amount decimal.Decimal `json:"deduction_amount"`
}

type RawHolidayRow struct {
	HolidayID     string          `json:"holiday_id"`
	HolidayName   string          `json:"holiday_name"`
	HolidayDateID string          `json:"holiday_date_id"`
	HolidayDate   string          `json:"holiday_date"`
	HolidayPaid   bool            `json:"holiday_paid"`
	HolidayAmount decimal.Decimal `json:"holiday_amount"`
}

type RawLoan struct {
	LoanItemsID       string          `json:"loan_items_id"`
	Name              string          `json:"loan_name"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
}

type RawAdvance struct {
	AdvanceID string          `json:"advance_id"`
	Name      string          `json:"advance_name"`
	Amount    decimal.Decimal `json:"advance_amount"`
}

type RawAttendanceSet struct {
	ShiftName        string             `json:"shift_name"`
	TotalWorkingDays int                `json:"total_working_days"`
	Attendance       []RawAttendanceRow `json:"attendance_arr"`
}

type RawAttendanceRow struct {
	Date           string          `json:"date"`
	StatusName     string          `json:"status_name"`
	ActualHours    decimal.Decimal `json:"actual_hours"`
	OvertimeHours  decimal.Decimal `json:"overtime_hours"`
	HourlySalary   decimal.Decimal `json:"hourly_salary"`
	DailySalary    decimal.Decimal `json:"daily_salary"`
	OvertimeSalary decimal.Decimal `json:"overtime_salary"`
}

// AllowanceItems converts the fetched allowance rows to ledger input.
func (r RawPayrollData) AllowanceItems() []RawLineItem {
	items := make([]RawLineItem, 0, len(r.Allowances))
	for _, a := range r.Allowances {
		items = append(items, RawLineItem{ID: a.ID, Label: a.Name, Amount: a.Amount})
	}
	return items
}

func (r RawPayrollData) DeductionItems() []RawLineItem {
	items := make([]RawLineItem, 0, len(r.Deductions))
	for _, d := range r.Deductions {
		items = append(items, RawLineItem{ID: d.ID, Label: d.Name, Amount: d.Amount})
	}
	return items
}

func (r RawPayrollData) LoanItems() []RawLineItem {
	items := make([]RawLineItem, 0, len(r.Loans))
	for _, l := range r.Loans {
		items = append(items, RawLineItem{ID: l.LoanItemsID, Label: l.Name, Amount: l.InstallmentAmount})
	}
	return items
}

func (r RawPayrollData) AdvanceItems() []RawLineItem {
	items := make([]RawLineItem, 0, len(r.Advances))
	for _, a := range r.Advances {
		items = append(items, RawLineItem{ID: a.AdvanceID, Label: a.Name, Amount: a.Amount})
	}
	return items
}

func (r RawPayrollData) HolidayDates() []RawHolidayDate {
	dates := make([]RawHolidayDate, 0, len(r.Holidays))
	for _, h := range r.Holidays {
		dates = append(dates, RawHolidayDate{
			HolidayID:   h.HolidayID,
			HolidayName: h.HolidayName,
			DateID:      h.HolidayDateID,
			Date:        h.HolidayDate,
			Paid:        h.HolidayPaid,
			Amount:      h.HolidayAmount,
		})
	}
	return dates
}

func (r RawPayrollData) Shifts() []Shift {
	shifts := make([]Shift, 0, len(r.Attendance))
	for _, set := range r.Attendance {
		records := make([]AttendanceRecord, 0, len(set.Attendance))
		for _, row := range set.Attendance {
			records = append(records, AttendanceRecord{
				Date:           row.Date,
				StatusName:     row.StatusName,
				ActualHours:    row.ActualHours,
				OvertimeHours:  row.OvertimeHours,
				HourlySalary:   row.HourlySalary,
				DailySalary:    row.DailySalary,
				OvertimeSalary: row.OvertimeSalary,
			})
		}
		shifts = append(shifts, Shift{
			Name:             set.ShiftName,
			TotalWorkingDays: set.TotalWorkingDays,
			Records:          records,
		})
	}
	return shifts
}

// ========== SUBMISSION CONTRACT ==========

// SubmissionPayload is the final, validated draft serialized for
// persistence. Only included items appear; amounts are the committed current
// values.
type SubmissionPayload struct {
	EmployeeID     string              `json:"employee_id"`
	PeriodMonth    int                 `json:"period_month"`
	PeriodYear     int                 `json:"period_year"`
	TotalSalary    decimal.Decimal     `json:"total_salary"`
	OvertimeSalary decimal.Decimal     `json:"overtime_salary"`
	WeekOfSalary   decimal.Decimal     `json:"week_of_salary"`
	PaySalary      decimal.Decimal     `json:"pay_salary"`
	TotalPaySalary decimal.Decimal     `json:"total_pay_salary"`
	Attendance     []RawAttendanceSet  `json:"main_attendance_arr"`
	Allowances     []SubmissionItem    `json:"employee_allowance_arr"`
	Deductions     []SubmissionItem    `json:"employee_deduction_arr"`
	Holidays       []SubmissionHoliday `json:"employee_holiday_arr"`
	Loans          []SubmissionItem    `json:"employee_loan_arr"`
	Advances       []SubmissionItem    `json:"employee_advance_arr"`
	RemarkForEdit  *string             `json:"remark_for_edit,omitempty"`
}

type SubmissionItem struct {
	ID     string          `json:"id"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type SubmissionHoliday struct {
	HolidayID     string          `json:"holiday_id"`
	HolidayDateID string          `json:"holiday_date_id"`
	HolidayDate   string          `json:"holiday_date"`
	Paid          bool            `json:"paid"`
	Amount        decimal.Decimal `json:"amount"`
}

// ========== REQUEST DTOs ==========

type FetchDraftRequest struct {
	EmployeeID  string `json:"employee_id"`
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`
}

func (r *FetchDraftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 2000 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be 2000 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WorkingAmountRequest struct {
	Amount string `json:"amount"`
}

type CommitFinalPayableRequest struct {
	Value string `json:"value"`
}

func (r *CommitFinalPayableRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Value) {
		errs = append(errs, validator.ValidationError{Field: "value", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetRemarkRequest struct {
	Remark string `json:"remark"`
}

// ========== DRAFT VIEW ==========

// DraftResponse is the full draft state returned after every operation so
// the caller can re-render without a second round trip.
type DraftResponse struct {
	EmployeeID   string                  `json:"employee_id"`
	PeriodMonth  int                     `json:"period_month"`
	PeriodYear   int                     `json:"period_year"`
	Status       string                  `json:"status"`
	Attendance   AttendanceView          `json:"attendance"`
	Allowances   []LineItemView          `json:"allowances"`
	Deductions   []LineItemView          `json:"deductions"`
	Loans        []LineItemView          `json:"loans"`
	Advances     []LineItemView          `json:"advances"`
	Holidays     []HolidayGroupView      `json:"holidays"`
	Totals       TotalsView              `json:"totals"`
	FinalPayable FinalPayableView        `json:"final_payable"`
	Remark       string                  `json:"remark"`
	HasAnyEdit   bool                    `json:"has_any_edit"`
}

type AttendanceView struct {
	BaseSalary         decimal.Decimal    `json:"base_salary"`
	TotalOvertimeHours decimal.Decimal    `json:"total_overtime_hours"`
	OvertimePay        decimal.Decimal    `json:"overtime_pay"`
	WeekoffPay         decimal.Decimal    `json:"weekoff_pay"`
	PaySalary          decimal.Decimal    `json:"pay_salary"`
	Shifts             []RawAttendanceSet `json:"shifts"`
}

type LineItemView struct {
	ID            string          `json:"id"`
	Label         string          `json:"label"`
	DefaultAmount decimal.Decimal `json:"default_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Included      bool            `json:"included"`
	Editable      bool            `json:"editable"`
	IsEditing     bool            `json:"is_editing"`
}

type HolidayGroupView struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Included bool              `json:"included"`
	Dates    []HolidayDateView `json:"dates"`
}

type HolidayDateView struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	Paid          bool            `json:"paid"`
	DefaultAmount decimal.Decimal `json:"default_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	IsEditing     bool            `json:"is_editing"`
}

type TotalsView struct {
	PaySalary        decimal.Decimal `json:"pay_salary"`
	TotalAllowances  decimal.Decimal `json:"total_allowances"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	TotalHolidayPay  decimal.Decimal `json:"total_holiday_pay"`
	TotalLoans       decimal.Decimal `json:"total_loans"`
	TotalAdvances    decimal.Decimal `json:"total_advances"`
	AutoFinalPayable decimal.Decimal `json:"auto_final_payable"`
}

type FinalPayableView struct {
	Value     decimal.Decimal `json:"value"`
	Mode      string          `json:"mode"`
	IsEditing bool            `json:"is_editing"`
}

type SubmitResponse struct {
	RecordID string `json:"record_id"`
}
