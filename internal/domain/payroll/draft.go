package payroll

// NewDraft creates an empty draft for one employee/period. It carries no data
// until InitializeFromRaw runs with a fetched payload.
func NewDraft(employeeID string, period Period) *PayrollDraft {
	return &PayrollDraft{
		EmployeeID: employeeID,
		Period:     period,
		Status:     DraftStatusEmpty,
	}
}

// InitializeFromRaw resets the draft to the fetched defaults: every item
// included at its fetched amount, auto mode, blank remark, nothing dirty.
func (d *PayrollDraft) InitializeFromRaw(raw RawPayrollData) {
	d.Attendance = AggregateAttendance(raw.TotalSalary, raw.WeekOfSalary, raw.Shifts())
	d.Allowances = NewLineItemLedger(KindAllowance, raw.AllowanceItems())
	d.Deductions = NewLineItemLedger(KindDeduction, raw.DeductionItems())
	d.Loans = NewLineItemLedger(KindLoan, raw.LoanItems())
	d.Advances = NewLineItemLedger(KindAdvance, raw.AdvanceItems())
	d.Holidays = NewHolidayLedger(raw.HolidayDates())
	d.FinalPayable = FinalPayable{Mode: ModeAuto}
	d.Remark = ""
	d.Status = DraftStatusFetched
	d.afterMutation()
}

func (d *PayrollDraft) ledgers() []*LineItemLedger {
	return []*LineItemLedger{d.Allowances, d.Deductions, d.Loans, d.Advances}
}

// Ledger returns the ledger holding items of the given kind.
func (d *PayrollDraft) Ledger(kind LineItemKind) *LineItemLedger {
	switch kind {
	case KindAllowance:
		return d.Allowances
	case KindDeduction:
		return d.Deductions
	case KindLoan:
		return d.Loans
	case KindAdvance:
		return d.Advances
	}
	return nil
}

// afterMutation restores the stable-point invariants: totals re-derived,
// the payable re-reconciled, dirtiness re-evaluated. Every mutation path
// funnels through here.
func (d *PayrollDraft) afterMutation() {
	d.Totals = CalculateTotals(d)
	d.FinalPayable.RecomputeIfAuto(d.Totals)
	d.HasAnyEdit = IsDirty(d)
}

// guard rejects mutations on a draft that has no data or is mid-submission.
func (d *PayrollDraft) guard() error {
	switch d.Status {
	case DraftStatusSubmitting:
		return ErrDraftLocked
	case DraftStatusEmpty, DraftStatusSubmitted:
		return ErrDraftNotFetched
	}
	return nil
}

// mutate runs op under the lifecycle guard and restores invariants after it.
// A failed op (open edit session kept, nothing committed) still re-runs
// afterMutation, which is a no-op on unchanged state.
func (d *PayrollDraft) mutate(op func() error) error {
	if err := d.guard(); err != nil {
		return err
	}
	err := op()
	d.afterMutation()
	return err
}

// ===== Line item operations =====

func (d *PayrollDraft) ToggleLineItem(kind LineItemKind, id string) error {
	return d.mutate(func() error { return d.Ledger(kind).ToggleInclusion(id) })
}

func (d *PayrollDraft) BeginLineItemEdit(kind LineItemKind, id string) error {
	return d.mutate(func() error { return d.Ledger(kind).BeginEdit(id) })
}

func (d *PayrollDraft) UpdateLineItemWorking(kind LineItemKind, id, value string) error {
	return d.mutate(func() error { return d.Ledger(kind).UpdateWorkingAmount(id, value) })
}

func (d *PayrollDraft) CommitLineItemEdit(kind LineItemKind, id string) error {
	return d.mutate(func() error { return d.Ledger(kind).CommitEdit(id) })
}

func (d *PayrollDraft) CancelLineItemEdit(kind LineItemKind, id string) error {
	return d.mutate(func() error { return d.Ledger(kind).CancelEdit(id) })
}

// ===== Holiday operations =====

func (d *PayrollDraft) ToggleHolidayGroup(id string) error {
	return d.mutate(func() error { return d.Holidays.ToggleGroup(id) })
}

func (d *PayrollDraft) BeginHolidayDateEdit(id string) error {
	return d.mutate(func() error { return d.Holidays.BeginEditDate(id) })
}

func (d *PayrollDraft) UpdateHolidayDateWorking(id, value string) error {
	return d.mutate(func() error { return d.Holidays.UpdateWorkingAmount(id, value) })
}

func (d *PayrollDraft) CommitHolidayDateEdit(id string) error {
	return d.mutate(func() error { return d.Holidays.CommitEditDate(id) })
}

func (d *PayrollDraft) CancelHolidayDateEdit(id string) error {
	return d.mutate(func() error { return d.Holidays.CancelEditDate(id) })
}

// ===== Final payable operations =====

func (d *PayrollDraft) BeginFinalPayableEdit() error {
	return d.mutate(func() error {
		d.FinalPayable.BeginManualEdit()
		return nil
	})
}

func (d *PayrollDraft) CommitFinalPayable(candidate string) error {
	return d.mutate(func() error { return d.FinalPayable.CommitManualEdit(candidate) })
}

func (d *PayrollDraft) CancelFinalPayableEdit() error {
	return d.mutate(func() error {
		d.FinalPayable.CancelManualEdit()
		return nil
	})
}

func (d *PayrollDraft) ResetFinalPayableToAuto() error {
	return d.mutate(func() error {
		d.FinalPayable.ResetToAuto(d.Totals)
		return nil
	})
}

// ===== Remark =====

// SetRemark records the audit remark. It does not affect totals or
// dirtiness, but is still rejected while the draft is locked.
func (d *PayrollDraft) SetRemark(remark string) error {
	if err := d.guard(); err != nil {
		return err
	}
	d.Remark = remark
	return nil
}
