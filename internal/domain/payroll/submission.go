package payroll

// BuildSubmission serializes the draft into the persistence contract. It is
// pure: repeated calls without an intervening mutation yield structurally
// identical payloads. Only included items are emitted; Loan items carry their
// fixed installment, holiday dates their possibly clamped amounts. The remark
// ships only when the draft deviates from its fetched defaults.
func BuildSubmission(d *PayrollDraft) SubmissionPayload {
	payload := SubmissionPayload{
		EmployeeID:     d.EmployeeID,
		PeriodMonth:    d.Period.Month,
		PeriodYear:     d.Period.Year,
		TotalSalary:    d.Attendance.BaseSalary,
		OvertimeSalary: d.Attendance.OvertimePay,
		WeekOfSalary:   d.Attendance.WeekoffPay,
		PaySalary:      d.Attendance.PaySalary,
		TotalPaySalary: d.FinalPayable.Value,
		Attendance:     attendanceSets(d.Attendance.Shifts),
		Allowances:     includedItems(d.Allowances),
		Deductions:     includedItems(d.Deductions),
		Holidays:       includedHolidays(d.Holidays),
		Loans:          includedItems(d.Loans),
		Advances:       includedItems(d.Advances),
	}
	if IsDirty(d) {
		remark := d.Remark
		payload.RemarkForEdit = &remark
	}
	return payload
}

func includedItems(l *LineItemLedger) []SubmissionItem {
	items := make([]SubmissionItem, 0, len(l.Items))
	for _, item := range l.Items {
		if !item.Included {
			continue
		}
		items = append(items, SubmissionItem{
			ID:     item.ID,
			Label:  item.Label,
			Amount: item.CurrentAmount,
		})
	}
	return items
}

// includedHolidays emits one record per date of every included group,
// carrying the paid flag so downstream reporting can tell paid and unpaid
// dates apart.
func includedHolidays(l *HolidayLedger) []SubmissionHoliday {
	var records []SubmissionHoliday
	for _, group := range l.Groups {
		if !group.Included {
			continue
		}
		for _, date := range group.Dates {
			records = append(records, SubmissionHoliday{
				HolidayID:     group.ID,
				HolidayDateID: date.ID,
				HolidayDate:   date.Date,
				Paid:          date.Paid,
				Amount:        date.CurrentAmount,
			})
		}
	}
	if records == nil {
		records = []SubmissionHoliday{}
	}
	return records
}

func attendanceSets(shifts []Shift) []RawAttendanceSet {
	sets := make([]RawAttendanceSet, 0, len(shifts))
	for _, shift := range shifts {
		rows := make([]RawAttendanceRow, 0, len(shift.Records))
		for _, rec := range shift.Records {
			rows = append(rows, RawAttendanceRow{
				Date:           rec.Date,
				StatusName:     rec.StatusName,
				ActualHours:    rec.ActualHours,
				OvertimeHours:  rec.OvertimeHours,
				HourlySalary:   rec.HourlySalary,
				DailySalary:    rec.DailySalary,
				OvertimeSalary: rec.OvertimeSalary,
			})
		}
		sets = append(sets, RawAttendanceSet{
			ShiftName:        shift.Name,
			TotalWorkingDays: shift.TotalWorkingDays,
			Attendance:       rows,
		})
	}
	return sets
}
