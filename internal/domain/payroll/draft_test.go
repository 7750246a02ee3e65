package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioRaw mirrors a small but complete fetch payload: base 20000,
// overtime 500 from one attendance row, week-off 1000, one allowance of 2000
// and one deduction of 300.
func scenarioRaw() RawPayrollData {
	return RawPayrollData{
		TotalSalary:  dec("20000"),
		WeekOfSalary: dec("1000"),
		Allowances: []RawAllowance{
			{ID: "a1", Name: "Transport", Amount: dec("2000")},
		},
		Deductions: []RawDeduction{
			{ID: "d1", Name: "Late penalty", Amount: dec("300")},
		},
		Attendance: []RawAttendanceSet{
			{
				ShiftName:        "Morning",
				TotalWorkingDays: 26,
				Attendance: []RawAttendanceRow{
					{Date: "2026-03-02", StatusName: "present", ActualHours: dec("8"), DailySalary: dec("769")},
					{Date: "2026-03-03", StatusName: "present", ActualHours: dec("10"), OvertimeHours: dec("2"), DailySalary: dec("769"), OvertimeSalary: dec("500")},
				},
			},
		},
	}
}

func fetchedDraft(t *testing.T, raw RawPayrollData) *PayrollDraft {
	t.Helper()
	d := NewDraft("emp-1", Period{Month: 3, Year: 2026})
	require.Equal(t, DraftStatusEmpty, d.Status)
	d.InitializeFromRaw(raw)
	require.Equal(t, DraftStatusFetched, d.Status)
	return d
}

func TestDraft_InitializeDerivesScenarioTotals(t *testing.T) {
	d := fetchedDraft(t, scenarioRaw())

	assert.True(t, d.Attendance.PaySalary.Equal(dec("21500")), "20000 + 500 + 1000")
	assert.True(t, d.Attendance.TotalOvertimeHours.Equal(dec("2")))
	assert.True(t, d.Totals.AutoFinalPayable.Equal(dec("23200")), "21500 + 2000 - 300")
	assert.True(t, d.FinalPayable.Value.Equal(dec("23200")))
	assert.Equal(t, ModeAuto, d.FinalPayable.Mode)
	assert.False(t, d.HasAnyEdit)
	assert.Empty(t, d.Remark)
}

func TestDraft_AutoFinalPayableEquation(t *testing.T) {
	raw := scenarioRaw()
	raw.Loans = []RawLoan{{LoanItemsID: "l1", Name: "Housing", InstallmentAmount: dec("1200")}}
	raw.Advances = []RawAdvance{{AdvanceID: "adv1", Name: "Advance", Amount: dec("400")}}
	raw.Holidays = []RawHolidayRow{
		{HolidayID: "h1", HolidayName: "Eid", HolidayDateID: "hd1", HolidayDate: "2026-03-20", HolidayPaid: true, HolidayAmount: dec("800")},
	}
	d := fetchedDraft(t, raw)

	want := d.Totals.PaySalary.
		Add(d.Totals.TotalAllowances).
		Sub(d.Totals.TotalDeductions).
		Add(d.Totals.TotalHolidayPay).
		Sub(d.Totals.TotalLoans).
		Sub(d.Totals.TotalAdvances)
	assert.True(t, d.Totals.AutoFinalPayable.Equal(want))
	assert.True(t, d.Totals.AutoFinalPayable.Equal(dec("22400")), "23200 + 800 - 1200 - 400")
}

func TestDraft_ToggleRecomputesPayable(t *testing.T) {
	d := fetchedDraft(t, scenarioRaw())

	require.NoError(t, d.ToggleLineItem(KindDeduction, "d1"))

	assert.True(t, d.FinalPayable.Value.Equal(dec("23500")))
	assert.True(t, d.HasAnyEdit)
}

func TestDraft_ManualOverrideAndReset(t *testing.T) {
	d := fetchedDraft(t, scenarioRaw())
	require.NoError(t, d.ToggleLineItem(KindDeduction, "d1"))

	require.NoError(t, d.BeginFinalPayableEdit())
	require.NoError(t, d.CommitFinalPayable("25000"))

	assert.True(t, d.FinalPayable.Value.Equal(dec("25000")))
	assert.Equal(t, ModeManualOverride, d.FinalPayable.Mode)
	assert.True(t, d.HasAnyEdit)

	// A further mutation must not disturb a manual override.
	require.NoError(t, d.ToggleLineItem(KindAllowance, "a1"))
	assert.True(t, d.FinalPayable.Value.Equal(dec("25000")))
	require.NoError(t, d.ToggleLineItem(KindAllowance, "a1"))

	require.NoError(t, d.ResetFinalPayableToAuto())
	assert.True(t, d.FinalPayable.Value.Equal(dec("23500")))
	assert.Equal(t, ModeAuto, d.FinalPayable.Mode)
}

func TestDraft_ManualEditSuppressesRecompute(t *testing.T) {
	d := fetchedDraft(t, scenarioRaw())

	require.NoError(t, d.BeginFinalPayableEdit())
	require.NoError(t, d.ToggleLineItem(KindDeduction, "d1"))

	// Value frozen while the manual session is open.
	assert.True(t, d.FinalPayable.Value.Equal(dec("23200")))

	require.NoError(t, d.CancelFinalPayableEdit())
	require.NoError(t, d.ToggleLineItem(KindAllowance, "a1"))
	require.NoError(t, d.ToggleLineItem(KindAllowance, "a1"))
	assert.True(t, d.FinalPayable.Value.Equal(dec("23500")))
}

func TestDraft_ManualCommitValidation(t *testing.T) {
	d := fetchedDraft(t, scenarioRaw())

	require.NoError(t, d.BeginFinalPayableEdit())
	assert.ErrorIs(t, d.CommitFinalPayable("not-a-number"), ErrNonNumeric)
	assert.ErrorIs(t, d.CommitFinalPayable("-1"), ErrNegativeAmount)

	// Session stays open, nothing committed.
	assert.True(t, d.FinalPayable.IsEditing)
	assert.Equal(t, ModeAuto, d.FinalPayable.Mode)
	assert.True(t, d.FinalPayable.Value.Equal(dec("23200")))
}

func TestDraft_DirtinessRoundTrip(t *testing.T) {
	d := fetchedDraft(t, scenarioRaw())
	assert.False(t, IsDirty(d))

	require.NoError(t, d.BeginLineItemEdit(KindAllowance, "a1"))
	require.NoError(t, d.UpdateLineItemWorking(KindAllowance, "a1", "2500"))
	require.NoError(t, d.CommitLineItemEdit(KindAllowance, "a1"))
	assert.True(t, IsDirty(d))

	// Restoring the exact fetched amount clears dirtiness again.
	require.NoError(t, d.BeginLineItemEdit(KindAllowance, "a1"))
	require.NoError(t, d.UpdateLineItemWorking(KindAllowance, "a1", "2000"))
	require.NoError(t, d.CommitLineItemEdit(KindAllowance, "a1"))
	assert.False(t, IsDirty(d))
	assert.False(t, d.HasAnyEdit)
}

func TestDraft_CanSubmitGates(t *testing.T) {
	d := fetchedDraft(t, scenarioRaw())
	assert.NoError(t, CanSubmit(d))

	require.NoError(t, d.BeginLineItemEdit(KindAllowance, "a1"))
	assert.ErrorIs(t, CanSubmit(d), ErrEditInProgress)
	require.NoError(t, d.CancelLineItemEdit(KindAllowance, "a1"))

	require.NoError(t, d.ToggleLineItem(KindDeduction, "d1"))
	assert.ErrorIs(t, CanSubmit(d), ErrRemarkRequired)

	require.NoError(t, d.SetRemark("   "))
	assert.ErrorIs(t, CanSubmit(d), ErrRemarkRequired)

	require.NoError(t, d.SetRemark("deduction waived this month"))
	assert.NoError(t, CanSubmit(d))
}

func TestDraft_LoanScenario(t *testing.T) {
	raw := scenarioRaw()
	raw.Loans = []RawLoan{{LoanItemsID: "l1", Name: "Housing", InstallmentAmount: dec("1200")}}
	d := fetchedDraft(t, raw)

	assert.ErrorIs(t, d.BeginLineItemEdit(KindLoan, "l1"), ErrInvalidOperation)

	before := d.Totals.AutoFinalPayable
	require.NoError(t, d.ToggleLineItem(KindLoan, "l1"))
	assert.True(t, d.Totals.AutoFinalPayable.Sub(before).Equal(dec("1200")))
}

func TestDraft_LockedWhileSubmitting(t *testing.T) {
	d := fetchedDraft(t, scenarioRaw())
	d.Status = DraftStatusSubmitting

	assert.ErrorIs(t, d.ToggleLineItem(KindAllowance, "a1"), ErrDraftLocked)
	assert.ErrorIs(t, d.BeginLineItemEdit(KindAllowance, "a1"), ErrDraftLocked)
	assert.ErrorIs(t, d.ToggleHolidayGroup("h1"), ErrDraftLocked)
	assert.ErrorIs(t, d.BeginFinalPayableEdit(), ErrDraftLocked)
	assert.ErrorIs(t, d.SetRemark("x"), ErrDraftLocked)
}

func TestDraft_MutationsRejectedBeforeFetch(t *testing.T) {
	d := NewDraft("emp-1", Period{Month: 3, Year: 2026})

	assert.ErrorIs(t, d.ToggleLineItem(KindAllowance, "a1"), ErrDraftNotFetched)
	assert.ErrorIs(t, d.SetRemark("x"), ErrDraftNotFetched)
}

func TestDraft_FailedDraftAllowsFurtherEdits(t *testing.T) {
	d := fetchedDraft(t, scenarioRaw())
	require.NoError(t, d.SetRemark("kept across failure"))
	d.Status = DraftStatusFailed

	require.NoError(t, d.ToggleLineItem(KindDeduction, "d1"))
	assert.Equal(t, "kept across failure", d.Remark)
}

func TestAggregateAttendance_MissingFieldsDefaultToZero(t *testing.T) {
	summary := AggregateAttendance(dec("10000"), dec("0"), []Shift{
		{Name: "Night", TotalWorkingDays: 20, Records: []AttendanceRecord{
			{Date: "2026-03-02", StatusName: "present"},
		}},
	})

	assert.True(t, summary.OvertimePay.IsZero())
	assert.True(t, summary.TotalOvertimeHours.IsZero())
	assert.True(t, summary.PaySalary.Equal(dec("10000")))
}

func TestAggregateAttendance_SumsAcrossShifts(t *testing.T) {
	summary := AggregateAttendance(dec("10000"), dec("500"), []Shift{
		{Name: "Morning", Records: []AttendanceRecord{
			{OvertimeHours: dec("1"), OvertimeSalary: dec("100")},
		}},
		{Name: "Evening", Records: []AttendanceRecord{
			{OvertimeHours: dec("2.5"), OvertimeSalary: dec("250")},
		}},
	})

	assert.True(t, summary.TotalOvertimeHours.Equal(dec("3.5")))
	assert.True(t, summary.OvertimePay.Equal(dec("350")))
	assert.True(t, summary.PaySalary.Equal(dec("10850")))
}
