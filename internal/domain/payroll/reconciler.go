package payroll

// RecomputeIfAuto re-derives the payable value from the current totals. It is
// the invariant-maintenance hook the draft runs after every mutation, so in
// auto mode the value can never drift from AutoFinalPayable at a stable
// point. A manual override or an open edit session suppresses it.
func (f *FinalPayable) RecomputeIfAuto(t Totals) {
	if f.Mode == ModeAuto && !f.IsEditing {
		f.Value = t.AutoFinalPayable
	}
}

// BeginManualEdit opens a manual edit session, holding off auto recomputes
// until the session closes.
func (f *FinalPayable) BeginManualEdit() {
	f.working = f.Value.String()
	f.IsEditing = true
}

// CommitManualEdit validates the candidate and, on success, fixes the payable
// at that value in manual-override mode. On failure the session stays open
// and the committed value is unchanged.
func (f *FinalPayable) CommitManualEdit(candidate string) error {
	value, err := parseAmount(candidate)
	if err != nil {
		return err
	}
	f.Mode = ModeManualOverride
	f.Value = value
	f.IsEditing = false
	f.working = ""
	return nil
}

// CancelManualEdit closes the session; the value stays at the last committed
// amount.
func (f *FinalPayable) CancelManualEdit() {
	f.IsEditing = false
	f.working = ""
}

// ResetToAuto drops a manual override and immediately re-derives the value
// from the given totals.
func (f *FinalPayable) ResetToAuto(t Totals) {
	f.Mode = ModeAuto
	f.IsEditing = false
	f.working = ""
	f.RecomputeIfAuto(t)
}
