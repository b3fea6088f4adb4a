package session

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finapp/internal/core"
)

func TestInitIsIdempotent(t *testing.T) {
	s := NewState()
	s.Init()

	assert.Equal(t, 1, s.Len(core.Income))
	assert.Equal(t, 1, s.Len(core.Expense))
	assert.Equal(t, core.DefaultCurrency, s.Currency())
}

func TestInitKeepsExistingRows(t *testing.T) {
	s := NewState()
	require.NoError(t, s.AppendBlank(core.Income))
	s.Init()

	assert.Equal(t, 2, s.Len(core.Income))
	assert.Equal(t, 1, s.Len(core.Expense))
}

func TestAppendBlankAndReset(t *testing.T) {
	s := NewState()
	for i := 0; i < 3; i++ {
		require.NoError(t, s.AppendBlank(core.Expense))
	}
	assert.Equal(t, 4, s.Len(core.Expense))
	assert.Equal(t, core.EntryRecord{}, s.Entries(core.Expense)[3])

	s.ResetAll()
	assert.Equal(t, 1, s.Len(core.Income))
	assert.Equal(t, 1, s.Len(core.Expense))
	assert.Equal(t, core.EntryRecord{}, s.Entries(core.Expense)[0])
}

func TestZeroStateIsUsable(t *testing.T) {
	var s State

	require.NoError(t, s.AppendBlank(core.Income))
	assert.Equal(t, 1, s.Len(core.Income))
	assert.Equal(t, 0, s.Len(core.Expense))

	var r State
	r.ResetAll()
	assert.Equal(t, 1, r.Len(core.Income))
	assert.Equal(t, 1, r.Len(core.Expense))
}

func TestAppendBlankUnknownKind(t *testing.T) {
	s := NewState()
	assert.ErrorIs(t, s.AppendBlank(core.Kind("savings")), core.ErrUnknownKind)
}

func TestUpdateTouchesOnlyOneRow(t *testing.T) {
	s := NewState()
	require.NoError(t, s.AppendBlank(core.Income))

	rec := core.EntryRecord{Category: "Salary", Description: "ACME", Amount: decimal.NewFromInt(5000)}
	require.NoError(t, s.Update(core.Income, 1, rec))

	rows := s.Entries(core.Income)
	assert.Equal(t, core.EntryRecord{}, rows[0])
	assert.Equal(t, rec, rows[1])
	assert.Equal(t, core.EntryRecord{}, s.Entries(core.Expense)[0])
}

func TestUpdateRejects(t *testing.T) {
	s := NewState()

	err := s.Update(core.Expense, 1, core.EntryRecord{})
	assert.ErrorIs(t, err, core.ErrIndexOutOfRange)

	err = s.Update(core.Expense, -1, core.EntryRecord{})
	assert.ErrorIs(t, err, core.ErrIndexOutOfRange)

	err = s.Update(core.Expense, 0, core.EntryRecord{Amount: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, core.ErrNegativeAmount)
}

func TestEntriesReturnsCopy(t *testing.T) {
	s := NewState()
	rows := s.Entries(core.Income)
	rows[0].Description = "changed"

	assert.Empty(t, s.Entries(core.Income)[0].Description)
}

func TestSetCurrency(t *testing.T) {
	s := NewState()
	assert.True(t, s.SetCurrency("EUR"))
	assert.False(t, s.SetCurrency("XYZ"))
	assert.Equal(t, "EUR", s.Currency())
}

func TestRequestText(t *testing.T) {
	s := NewState()
	s.SetCurrency("EUR")
	require.NoError(t, s.AppendBlank(core.Expense))
	require.NoError(t, s.Update(core.Income, 0, core.EntryRecord{Category: "Salary", Description: "Job", Amount: decimal.NewFromInt(4000)}))
	require.NoError(t, s.Update(core.Expense, 1, core.EntryRecord{Category: "Housing", Description: "Rent", Amount: decimal.NewFromInt(1200)}))

	assert.Equal(t, "Income: Job 4000 EUR (Salary)\nExpense: Rent 1200 EUR (Housing)", s.RequestText())

	s.ResetAll()
	assert.Equal(t, "", s.RequestText())
}

func TestConcurrentAppend(t *testing.T) {
	s := NewState()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.AppendBlank(core.Income)
		}()
	}
	wg.Wait()
	assert.Equal(t, 51, s.Len(core.Income))
}
