package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func allowanceLedger(amounts ...string) *LineItemLedger {
	raw := make([]RawLineItem, 0, len(amounts))
	for i, a := range amounts {
		raw = append(raw, RawLineItem{ID: itemID(i), Label: "Allowance", Amount: dec(a)})
	}
	return NewLineItemLedger(KindAllowance, raw)
}

func itemID(i int) string {
	return string(rune('a' + i))
}

func TestLineItemLedger_Initialize(t *testing.T) {
	ledger := NewLineItemLedger(KindAllowance, []RawLineItem{
		{ID: "a1", Label: "Transport", Amount: dec("2000")},
		{ID: "a2", Label: "Meal", Amount: dec("750.50")},
	})

	require.Len(t, ledger.Items, 2)
	for _, item := range ledger.Items {
		assert.True(t, item.Included)
		assert.True(t, item.Editable)
		assert.False(t, item.IsEditing)
		assert.True(t, item.CurrentAmount.Equal(item.DefaultAmount))
	}
	assert.True(t, ledger.Total().Equal(dec("2750.50")))
	assert.False(t, ledger.DeviatesFromDefaults())
}

func TestLineItemLedger_LoanItemsAreNotEditable(t *testing.T) {
	ledger := NewLineItemLedger(KindLoan, []RawLineItem{
		{ID: "l1", Label: "Housing loan", Amount: dec("1200")},
	})

	assert.False(t, ledger.Items[0].Editable)
	assert.ErrorIs(t, ledger.BeginEdit("l1"), ErrInvalidOperation)

	// Inclusion still toggles and moves the total.
	require.NoError(t, ledger.ToggleInclusion("l1"))
	assert.True(t, ledger.Total().IsZero())
	require.NoError(t, ledger.ToggleInclusion("l1"))
	assert.True(t, ledger.Total().Equal(dec("1200")))
}

func TestLineItemLedger_ToggleInclusion(t *testing.T) {
	ledger := allowanceLedger("100", "200")

	require.NoError(t, ledger.ToggleInclusion("a"))
	assert.False(t, ledger.Items[0].Included)
	assert.True(t, ledger.Total().Equal(dec("200")))
	assert.True(t, ledger.DeviatesFromDefaults())

	require.NoError(t, ledger.ToggleInclusion("a"))
	assert.True(t, ledger.Total().Equal(dec("300")))
	assert.False(t, ledger.DeviatesFromDefaults())
}

func TestLineItemLedger_BeginEditRequiresInclusion(t *testing.T) {
	ledger := allowanceLedger("100")

	require.NoError(t, ledger.ToggleInclusion("a"))
	assert.ErrorIs(t, ledger.BeginEdit("a"), ErrInvalidOperation)
}

func TestLineItemLedger_UnknownID(t *testing.T) {
	ledger := allowanceLedger("100")

	assert.ErrorIs(t, ledger.ToggleInclusion("nope"), ErrInvalidOperation)
	assert.ErrorIs(t, ledger.BeginEdit("nope"), ErrInvalidOperation)
	assert.ErrorIs(t, ledger.CommitEdit("nope"), ErrInvalidOperation)
	assert.ErrorIs(t, ledger.CancelEdit("nope"), ErrInvalidOperation)
}

func TestLineItemLedger_CommitValidation(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		wantErr   error
	}{
		{"non numeric", "12x", ErrNonNumeric},
		{"empty", "", ErrNonNumeric},
		{"negative", "-5", ErrNegativeAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := allowanceLedger("100")
			require.NoError(t, ledger.BeginEdit("a"))
			require.NoError(t, ledger.UpdateWorkingAmount("a", tt.candidate))

			err := ledger.CommitEdit("a")

			assert.ErrorIs(t, err, tt.wantErr)
			// Session stays open, committed amount untouched.
			assert.True(t, ledger.Items[0].IsEditing)
			assert.True(t, ledger.Items[0].CurrentAmount.Equal(dec("100")))
		})
	}
}

func TestLineItemLedger_CommitSuccess(t *testing.T) {
	ledger := allowanceLedger("100")

	require.NoError(t, ledger.BeginEdit("a"))
	require.NoError(t, ledger.UpdateWorkingAmount("a", "150.25"))
	require.NoError(t, ledger.CommitEdit("a"))

	assert.False(t, ledger.Items[0].IsEditing)
	assert.True(t, ledger.Items[0].CurrentAmount.Equal(dec("150.25")))
	assert.True(t, ledger.Items[0].DefaultAmount.Equal(dec("100")))
	assert.True(t, ledger.DeviatesFromDefaults())
}

func TestLineItemLedger_AdvanceCeiling(t *testing.T) {
	ledger := NewLineItemLedger(KindAdvance, []RawLineItem{
		{ID: "adv1", Label: "Salary advance", Amount: dec("5000")},
	})

	require.NoError(t, ledger.BeginEdit("adv1"))
	require.NoError(t, ledger.UpdateWorkingAmount("adv1", "6000"))
	assert.ErrorIs(t, ledger.CommitEdit("adv1"), ErrExceedsCeiling)
	assert.True(t, ledger.Items[0].CurrentAmount.Equal(dec("5000")))
	assert.True(t, ledger.Items[0].IsEditing)

	require.NoError(t, ledger.UpdateWorkingAmount("adv1", "3000"))
	require.NoError(t, ledger.CommitEdit("adv1"))
	assert.True(t, ledger.Total().Equal(dec("3000")))
}

func TestLineItemLedger_AllowanceHasNoCeiling(t *testing.T) {
	ledger := allowanceLedger("100")

	require.NoError(t, ledger.BeginEdit("a"))
	require.NoError(t, ledger.UpdateWorkingAmount("a", "99999"))
	require.NoError(t, ledger.CommitEdit("a"))

	assert.True(t, ledger.Items[0].CurrentAmount.Equal(dec("99999")))
}

func TestLineItemLedger_CancelDiscardsCandidate(t *testing.T) {
	ledger := allowanceLedger("100")

	require.NoError(t, ledger.BeginEdit("a"))
	require.NoError(t, ledger.UpdateWorkingAmount("a", "500"))
	require.NoError(t, ledger.CancelEdit("a"))

	assert.False(t, ledger.Items[0].IsEditing)
	assert.True(t, ledger.Items[0].CurrentAmount.Equal(dec("100")))
}

func TestLineItemLedger_SimultaneousEditSessions(t *testing.T) {
	ledger := allowanceLedger("100", "200")

	require.NoError(t, ledger.BeginEdit("a"))
	require.NoError(t, ledger.BeginEdit("b"))
	assert.True(t, ledger.EditInProgress())

	require.NoError(t, ledger.UpdateWorkingAmount("a", "111"))
	require.NoError(t, ledger.UpdateWorkingAmount("b", "222"))
	require.NoError(t, ledger.CommitEdit("a"))
	require.NoError(t, ledger.CommitEdit("b"))

	assert.False(t, ledger.EditInProgress())
	assert.True(t, ledger.Total().Equal(dec("333")))
}

func TestLineItemLedger_UpdateWorkingRequiresOpenSession(t *testing.T) {
	ledger := allowanceLedger("100")

	assert.ErrorIs(t, ledger.UpdateWorkingAmount("a", "1"), ErrInvalidOperation)
	assert.ErrorIs(t, ledger.CommitEdit("a"), ErrInvalidOperation)
}
