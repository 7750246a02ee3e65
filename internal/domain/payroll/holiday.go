package payroll

import (
	"github.com/shopspring/decimal"
)

// HolidayLedger groups holiday dates under their holiday definition.
// Inclusion toggles at the group level only; the financial gate is the
// per-date paid flag, which no edit can bypass.
type HolidayLedger struct {
	Groups []*HolidayGroup
}

// RawHolidayDate is one fetched holiday row before grouping.
type RawHolidayDate struct {
	HolidayID   string
	HolidayName string
	DateID      string
	Date        string
	Paid        bool
	Amount      decimal.Decimal
}

// NewHolidayLedger groups fetched rows by holiday id, preserving first-seen
// order. A group defaults to included only when at least one of its dates is
// paid; that default is cosmetic, since unpaid dates never contribute anyway.
func NewHolidayLedger(raw []RawHolidayDate) *HolidayLedger {
	ledger := &HolidayLedger{}
	byID := make(map[string]*HolidayGroup)
	for _, r := range raw {
		group, ok := byID[r.HolidayID]
		if !ok {
			group = &HolidayGroup{ID: r.HolidayID, Name: r.HolidayName}
			byID[r.HolidayID] = group
			ledger.Groups = append(ledger.Groups, group)
		}
		current := r.Amount
		if !r.Paid {
			current = decimal.Zero
		}
		group.Dates = append(group.Dates, &HolidayDate{
			ID:            r.DateID,
			Date:          r.Date,
			Paid:          r.Paid,
			DefaultAmount: r.Amount,
			CurrentAmount: current,
		})
		if r.Paid {
			group.Included = true
		}
	}
	return ledger
}

func (l *HolidayLedger) findGroup(id string) (*HolidayGroup, error) {
	for _, group := range l.Groups {
		if group.ID == id {
			return group, nil
		}
	}
	return nil, ErrInvalidOperation
}

func (l *HolidayLedger) findDate(id string) (*HolidayDate, error) {
	for _, group := range l.Groups {
		for _, date := range group.Dates {
			if date.ID == id {
				return date, nil
			}
		}
	}
	return nil, ErrInvalidOperation
}

// ToggleGroup flips inclusion for every date of the holiday at once.
func (l *HolidayLedger) ToggleGroup(id string) error {
	group, err := l.findGroup(id)
	if err != nil {
		return err
	}
	group.Included = !group.Included
	return nil
}

// BeginEditDate opens an edit session on one holiday date. The date's group
// must be included.
func (l *HolidayLedger) BeginEditDate(id string) error {
	for _, group := range l.Groups {
		for _, date := range group.Dates {
			if date.ID != id {
				continue
			}
			if !group.Included {
				return ErrInvalidOperation
			}
			date.working = date.CurrentAmount.String()
			date.IsEditing = true
			return nil
		}
	}
	return ErrInvalidOperation
}

// UpdateWorkingAmount stores a candidate for an open date edit session.
func (l *HolidayLedger) UpdateWorkingAmount(id string, value string) error {
	date, err := l.findDate(id)
	if err != nil {
		return err
	}
	if !date.IsEditing {
		return ErrInvalidOperation
	}
	date.working = value
	return nil
}

// CommitEditDate validates and commits the candidate. Committing on an unpaid
// date clamps the amount to zero regardless of the candidate value.
func (l *HolidayLedger) CommitEditDate(id string) error {
	date, err := l.findDate(id)
	if err != nil {
		return err
	}
	if !date.IsEditing {
		return ErrInvalidOperation
	}
	amount, err := parseAmount(date.working)
	if err != nil {
		return err
	}
	if !date.Paid {
		amount = decimal.Zero
	}
	date.CurrentAmount = amount
	date.IsEditing = false
	date.working = ""
	return nil
}

// CancelEditDate discards the candidate and closes the session.
func (l *HolidayLedger) CancelEditDate(id string) error {
	date, err := l.findDate(id)
	if err != nil {
		return err
	}
	date.IsEditing = false
	date.working = ""
	return nil
}

// Total sums paid dates belonging to included groups.
func (l *HolidayLedger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, group := range l.Groups {
		if !group.Included {
			continue
		}
		for _, date := range group.Dates {
			if date.Paid {
				total = total.Add(date.CurrentAmount)
			}
		}
	}
	return total
}

// EditInProgress reports whether any date has an open edit session.
func (l *HolidayLedger) EditInProgress() bool {
	for _, group := range l.Groups {
		for _, date := range group.Dates {
			if date.IsEditing {
				return true
			}
		}
	}
	return false
}

// DeviatesFromDefaults reports whether any group inclusion or date amount
// differs from its fetched state.
func (l *HolidayLedger) DeviatesFromDefaults() bool {
	for _, group := range l.Groups {
		if group.Included != l.defaultIncluded(group) {
			return true
		}
		for _, date := range group.Dates {
			if !date.CurrentAmount.Equal(l.defaultAmountFor(date)) {
				return true
			}
		}
	}
	return false
}

func (l *HolidayLedger) defaultIncluded(group *HolidayGroup) bool {
	for _, date := range group.Dates {
		if date.Paid {
			return true
		}
	}
	return false
}

func (l *HolidayLedger) defaultAmountFor(date *HolidayDate) decimal.Decimal {
	if !date.Paid {
		return decimal.Zero
	}
	return date.DefaultAmount
}
