package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/hrsuite/payroll-backend-go/internal/domain/payroll"
	"github.com/hrsuite/payroll-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepository{db: db}
}

// ========== FETCH ==========

// FetchPayrollData assembles the raw draft payload for one employee/period.
// Reads run on the pool; there is no cross-query consistency requirement
// because the operator reviews the result before anything is written.
func (r *payrollRepository) FetchPayrollData(ctx context.Context, companyID, employeeID string, period payroll.Period) (payroll.RawPayrollData, error) {
	q := GetQuerier(ctx, r.db)

	var data payroll.RawPayrollData
	err := q.QueryRow(ctx, `
		SELECT base_salary, week_off_salary
		FROM employees
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`, employeeID, companyID).Scan(&data.TotalSalary, &data.WeekOfSalary)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.RawPayrollData{}, payroll.ErrEmployeeNotFound
		}
		return payroll.RawPayrollData{}, fmt.Errorf("failed to get employee salary: %w", err)
	}

	if data.Allowances, err = r.fetchAllowances(ctx, q, employeeID); err != nil {
		return payroll.RawPayrollData{}, err
	}
	if data.Deductions, err = r.fetchDeductions(ctx, q, employeeID); err != nil {
		return payroll.RawPayrollData{}, err
	}
	if data.Loans, err = r.fetchLoans(ctx, q, employeeID, period); err != nil {
		return payroll.RawPayrollData{}, err
	}
	if data.Advances, err = r.fetchAdvances(ctx, q, employeeID, period); err != nil {
		return payroll.RawPayrollData{}, err
	}
	if data.Holidays, err = r.fetchHolidays(ctx, q, companyID, period); err != nil {
		return payroll.RawPayrollData{}, err
	}
	if data.Attendance, err = r.fetchAttendance(ctx, q, employeeID, period); err != nil {
		return payroll.RawPayrollData{}, err
	}

	return data, nil
}

func (r *payrollRepository) fetchAllowances(ctx context.Context, q database.Querier, employeeID string) ([]payroll.RawAllowance, error) {
	rows, err := q.Query(ctx, `
		SELECT id, name, amount
		FROM employee_allowances
		WHERE employee_id = $1 AND is_active = true
		ORDER BY created_at
	`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee allowances: %w", err)
	}
	defer rows.Close()

	var result []payroll.RawAllowance
	for rows.Next() {
		var a payroll.RawAllowance
		if err := rows.Scan(&a.ID, &a.Name, &a.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan allowance row: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (r *payrollRepository) fetchDeductions(ctx context.Context, q database.Querier, employeeID string) ([]payroll.RawDeduction, error) {
	rows, err := q.Query(ctx, `
		SELECT id, name, amount
		FROM employee_deductions
		WHERE employee_id = $1 AND is_active = true
		ORDER BY created_at
	`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee deductions: %w", err)
	}
	defer rows.Close()

	var result []payroll.RawDeduction
	for rows.Next() {
		var d payroll.RawDeduction
		if err := rows.Scan(&d.ID, &d.Name, &d.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan deduction row: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func (r *payrollRepository) fetchLoans(ctx context.Context, q database.Querier, employeeID string, period payroll.Period) ([]payroll.RawLoan, error) {
	rows, err := q.Query(ctx, `
		SELECT li.id, el.name, li.installment_amount
		FROM loan_installments li
		JOIN employee_loans el ON el.id = li.loan_id
		WHERE el.employee_id = $1 AND li.period_month = $2 AND li.period_year = $3
		ORDER BY li.created_at
	`, employeeID, period.Month, period.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to get loan installments: %w", err)
	}
	defer rows.Close()

	var result []payroll.RawLoan
	for rows.Next() {
		var l payroll.RawLoan
		if err := rows.Scan(&l.LoanItemsID, &l.Name, &l.InstallmentAmount); err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func (r *payrollRepository) fetchAdvances(ctx context.Context, q database.Querier, employeeID string, period payroll.Period) ([]payroll.RawAdvance, error) {
	rows, err := q.Query(ctx, `
		SELECT id, name, amount
		FROM employee_advances
		WHERE employee_id = $1 AND period_month = $2 AND period_year = $3
		ORDER BY created_at
	`, employeeID, period.Month, period.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to get salary advances: %w", err)
	}
	defer rows.Close()

	var result []payroll.RawAdvance
	for rows.Next() {
		var a payroll.RawAdvance
		if err := rows.Scan(&a.AdvanceID, &a.Name, &a.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan advance row: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (r *payrollRepository) fetchHolidays(ctx context.Context, q database.Querier, companyID string, period payroll.Period) ([]payroll.RawHolidayRow, error) {
	rows, err := q.Query(ctx, `
		SELECT h.id, h.name, hd.id, to_char(hd.holiday_date, 'YYYY-MM-DD'), hd.paid, hd.amount
		FROM holidays h
		JOIN holiday_dates hd ON hd.holiday_id = h.id
		WHERE h.company_id = $1
		  AND hd.holiday_date >= make_date($2, $3, 1)
		  AND hd.holiday_date < make_date($2, $3, 1) + interval '1 month'
		ORDER BY hd.holiday_date
	`, companyID, period.Year, period.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to get holidays: %w", err)
	}
	defer rows.Close()

	var result []payroll.RawHolidayRow
	for rows.Next() {
		var h payroll.RawHolidayRow
		if err := rows.Scan(&h.HolidayID, &h.HolidayName, &h.HolidayDateID, &h.HolidayDate, &h.HolidayPaid, &h.HolidayAmount); err != nil {
			return nil, fmt.Errorf("failed to scan holiday row: %w", err)
		}
		result = append(result, h)
	}
	return result, rows.Err()
}

// fetchAttendance reads the pre-computed daily rows and groups them by shift
// in first-seen order. The per-day salary figures were written by the
// attendance pipeline; this never recalculates them.
func (r *payrollRepository) fetchAttendance(ctx context.Context, q database.Querier, employeeID string, period payroll.Period) ([]payroll.RawAttendanceSet, error) {
	rows, err := q.Query(ctx, `
		SELECT shift_name, total_working_days, to_char(attendance_date, 'YYYY-MM-DD'), status_name,
		       COALESCE(actual_hours, 0), COALESCE(overtime_hours, 0),
		       COALESCE(hourly_salary, 0), COALESCE(daily_salary, 0), COALESCE(overtime_salary, 0)
		FROM attendance_days
		WHERE employee_id = $1
		  AND attendance_date >= make_date($2, $3, 1)
		  AND attendance_date < make_date($2, $3, 1) + interval '1 month'
		ORDER BY shift_name, attendance_date
	`, employeeID, period.Year, period.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance days: %w", err)
	}
	defer rows.Close()

	var sets []payroll.RawAttendanceSet
	index := make(map[string]int)
	for rows.Next() {
		var (
			shiftName        string
			totalWorkingDays int
			row              payroll.RawAttendanceRow
		)
		if err := rows.Scan(&shiftName, &totalWorkingDays, &row.Date, &row.StatusName,
			&row.ActualHours, &row.OvertimeHours,
			&row.HourlySalary, &row.DailySalary, &row.OvertimeSalary); err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		i, ok := index[shiftName]
		if !ok {
			sets = append(sets, payroll.RawAttendanceSet{
				ShiftName:        shiftName,
				TotalWorkingDays: totalWorkingDays,
			})
			i = len(sets) - 1
			index[shiftName] = i
		}
		sets[i].Attendance = append(sets[i].Attendance, row)
	}
	return sets, rows.Err()
}

// ========== SUBMIT ==========

// SubmitPayroll persists the built payload in one transaction: the record
// row plus component, holiday and attendance detail rows. Everything commits
// or nothing does.
func (r *payrollRepository) SubmitPayroll(ctx context.Context, companyID string, payload payroll.SubmissionPayload) (string, error) {
	var recordID string

	err := WithTransaction(ctx, r.db, func(txCtx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(txCtx, `
			INSERT INTO payroll_records (
				company_id, employee_id, period_month, period_year,
				total_salary, overtime_salary, week_of_salary, pay_salary,
				total_pay_salary, remark_for_edit
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`,
			companyID, payload.EmployeeID, payload.PeriodMonth, payload.PeriodYear,
			payload.TotalSalary, payload.OvertimeSalary, payload.WeekOfSalary, payload.PaySalary,
			payload.TotalPaySalary, payload.RemarkForEdit,
		).Scan(&recordID)
		if err != nil {
			if strings.Contains(err.Error(), "uk_payroll_record_period") {
				return payroll.ErrPayrollAlreadySubmitted
			}
			return fmt.Errorf("failed to insert payroll record: %w", err)
		}

		if err := insertComponents(txCtx, tx, recordID, "allowance", payload.Allowances); err != nil {
			return err
		}
		if err := insertComponents(txCtx, tx, recordID, "deduction", payload.Deductions); err != nil {
			return err
		}
		if err := insertComponents(txCtx, tx, recordID, "loan", payload.Loans); err != nil {
			return err
		}
		if err := insertComponents(txCtx, tx, recordID, "advance", payload.Advances); err != nil {
			return err
		}

		for _, h := range payload.Holidays {
			_, err := tx.Exec(txCtx, `
				INSERT INTO payroll_record_holidays (record_id, holiday_id, holiday_date_id, holiday_date, paid, amount)
				VALUES ($1, $2, $3, $4::date, $5, $6)
			`, recordID, h.HolidayID, h.HolidayDateID, h.HolidayDate, h.Paid, h.Amount)
			if err != nil {
				return fmt.Errorf("failed to insert payroll holiday row: %w", err)
			}
		}

		for _, set := range payload.Attendance {
			for _, row := range set.Attendance {
				_, err := tx.Exec(txCtx, `
					INSERT INTO payroll_record_attendance (
						record_id, shift_name, total_working_days, attendance_date, status_name,
						actual_hours, overtime_hours, hourly_salary, daily_salary, overtime_salary
					) VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10)
				`, recordID, set.ShiftName, set.TotalWorkingDays, row.Date, row.StatusName,
					row.ActualHours, row.OvertimeHours, row.HourlySalary, row.DailySalary, row.OvertimeSalary)
				if err != nil {
					return fmt.Errorf("failed to insert payroll attendance row: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return recordID, nil
}

func insertComponents(ctx context.Context, tx pgx.Tx, recordID, kind string, items []payroll.SubmissionItem) error {
	for _, item := range items {
		_, err := tx.Exec(ctx, `
			INSERT INTO payroll_record_components (record_id, kind, component_id, label, amount)
			VALUES ($1, $2, $3, $4, $5)
		`, recordID, kind, item.ID, item.Label, item.Amount)
		if err != nil {
			return fmt.Errorf("failed to insert payroll %s row: %w", kind, err)
		}
	}
	return nil
}
