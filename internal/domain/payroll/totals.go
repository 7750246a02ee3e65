package payroll

// CalculateTotals derives the aggregate sums from the ledgers and the
// attendance aggregate. Only included items contribute; for holidays, only
// paid dates inside included groups.
func CalculateTotals(d *PayrollDraft) Totals {
	t := Totals{
		PaySalary:       d.Attendance.PaySalary,
		TotalAllowances: d.Allowances.Total(),
		TotalDeductions: d.Deductions.Total(),
		TotalHolidayPay: d.Holidays.Total(),
		TotalLoans:      d.Loans.Total(),
		TotalAdvances:   d.Advances.Total(),
	}
	t.AutoFinalPayable = t.PaySalary.
		Add(t.TotalAllowances).
		Sub(t.TotalDeductions).
		Add(t.TotalHolidayPay).
		Sub(t.TotalLoans).
		Sub(t.TotalAdvances)
	return t
}
