package payroll

import "strings"

// IsDirty reports whether the draft deviates from its fetched defaults: a
// manual final-payable override, or any line item or holiday changed from the
// state it was initialized with.
func IsDirty(d *PayrollDraft) bool {
	if d.FinalPayable.Mode == ModeManualOverride {
		return true
	}
	for _, ledger := range d.ledgers() {
		if ledger.DeviatesFromDefaults() {
			return true
		}
	}
	return d.Holidays.DeviatesFromDefaults()
}

// AnyEditInProgress reports whether any edit session is open anywhere in the
// draft.
func AnyEditInProgress(d *PayrollDraft) bool {
	for _, ledger := range d.ledgers() {
		if ledger.EditInProgress() {
			return true
		}
	}
	return d.Holidays.EditInProgress() || d.FinalPayable.IsEditing
}

// CanSubmit gates submission: nothing may be mid-edit, and a dirty draft
// needs a non-blank audit remark.
func CanSubmit(d *PayrollDraft) error {
	if AnyEditInProgress(d) {
		return ErrEditInProgress
	}
	if IsDirty(d) && strings.TrimSpace(d.Remark) == "" {
		return ErrRemarkRequired
	}
	return nil
}
