package payroll

import (
	"github.com/shopspring/decimal"
)

// AggregateAttendance reduces the fetched shifts into the attendance pay
// aggregate. Every salary figure is pre-computed upstream; this only sums
// overtime across shifts and derives the pay salary from the given scalars.
func AggregateAttendance(baseSalary, weekoffPay decimal.Decimal, shifts []Shift) AttendanceSummary {
	overtimeHours := decimal.Zero
	overtimePay := decimal.Zero
	for _, shift := range shifts {
		for _, rec := range shift.Records {
			overtimeHours = overtimeHours.Add(rec.OvertimeHours)
			overtimePay = overtimePay.Add(rec.OvertimeSalary)
		}
	}
	return AttendanceSummary{
		Shifts:             shifts,
		BaseSalary:         baseSalary,
		TotalOvertimeHours: overtimeHours,
		OvertimePay:        overtimePay,
		WeekoffPay:         weekoffPay,
		PaySalary:          baseSalary.Add(overtimePay).Add(weekoffPay),
	}
}
