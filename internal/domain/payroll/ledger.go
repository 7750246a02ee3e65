package payroll

import (
	"github.com/shopspring/decimal"
)

// kindPolicy captures what a ledger kind allows its items to do. The four
// component collections share one engine; only the policy differs.
type kindPolicy struct {
	editable bool
	// ceilingAtDefault bounds commits at the fetched default amount.
	ceilingAtDefault bool
}

var kindPolicies = map[LineItemKind]kindPolicy{
	KindAllowance: {editable: true},
	KindDeduction: {editable: true},
	KindLoan:      {}, // installments are fixed, only inclusion can change
	KindAdvance:   {editable: true, ceilingAtDefault: true},
}

// LineItemLedger is the inclusion + bounded-edit state machine for one
// homogeneous collection of pay components.
type LineItemLedger struct {
	Kind  LineItemKind
	Items []*LineItem

	policy kindPolicy
}

// RawLineItem is one fetched component row before ledger initialization.
type RawLineItem struct {
	ID     string
	Label  string
	Amount decimal.Decimal
}

// NewLineItemLedger initializes a ledger from fetched rows. Every item starts
// included with its current amount at the fetched default.
func NewLineItemLedger(kind LineItemKind, raw []RawLineItem) *LineItemLedger {
	policy := kindPolicies[kind]
	items := make([]*LineItem, 0, len(raw))
	for _, r := range raw {
		items = append(items, &LineItem{
			ID:            r.ID,
			Label:         r.Label,
			DefaultAmount: r.Amount,
			CurrentAmount: r.Amount,
			Included:      true,
			Editable:      policy.editable,
		})
	}
	return &LineItemLedger{Kind: kind, Items: items, policy: policy}
}

func (l *LineItemLedger) find(id string) (*LineItem, error) {
	for _, item := range l.Items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, ErrInvalidOperation
}

// ToggleInclusion flips whether the item contributes to the total.
func (l *LineItemLedger) ToggleInclusion(id string) error {
	item, err := l.find(id)
	if err != nil {
		return err
	}
	item.Included = !item.Included
	return nil
}

// BeginEdit opens an edit session seeded with the current amount.
func (l *LineItemLedger) BeginEdit(id string) error {
	item, err := l.find(id)
	if err != nil {
		return err
	}
	if !item.Editable || !item.Included {
		return ErrInvalidOperation
	}
	item.working = item.CurrentAmount.String()
	item.IsEditing = true
	return nil
}

// UpdateWorkingAmount stores a candidate without committing it.
func (l *LineItemLedger) UpdateWorkingAmount(id string, value string) error {
	item, err := l.find(id)
	if err != nil {
		return err
	}
	if !item.IsEditing {
		return ErrInvalidOperation
	}
	item.working = value
	return nil
}

// CommitEdit validates the candidate and, on success, makes it the current
// amount and closes the session. On failure the session stays open and the
// item is left untouched.
func (l *LineItemLedger) CommitEdit(id string) error {
	item, err := l.find(id)
	if err != nil {
		return err
	}
	if !item.IsEditing {
		return ErrInvalidOperation
	}
	amount, err := parseAmount(item.working)
	if err != nil {
		return err
	}
	if l.policy.ceilingAtDefault && amount.GreaterThan(item.DefaultAmount) {
		return ErrExceedsCeiling
	}
	item.CurrentAmount = amount
	item.IsEditing = false
	item.working = ""
	return nil
}

// CancelEdit discards the candidate and closes the session.
func (l *LineItemLedger) CancelEdit(id string) error {
	item, err := l.find(id)
	if err != nil {
		return err
	}
	item.IsEditing = false
	item.working = ""
	return nil
}

// Total sums the current amounts of included items.
func (l *LineItemLedger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range l.Items {
		if item.Included {
			total = total.Add(item.CurrentAmount)
		}
	}
	return total
}

// EditInProgress reports whether any item has an open edit session.
func (l *LineItemLedger) EditInProgress() bool {
	for _, item := range l.Items {
		if item.IsEditing {
			return true
		}
	}
	return false
}

// DeviatesFromDefaults reports whether any item was excluded or had its
// amount changed relative to the fetched state.
func (l *LineItemLedger) DeviatesFromDefaults() bool {
	for _, item := range l.Items {
		if !item.Included || !item.CurrentAmount.Equal(item.DefaultAmount) {
			return true
		}
	}
	return false
}

// parseAmount validates an operator-entered candidate. Amounts cross the API
// as strings so a malformed value is a recoverable commit failure, not a
// transport error.
func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrNonNumeric
	}
	if amount.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return amount, nil
}
