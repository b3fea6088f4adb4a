package core

import "github.com/shopspring/decimal"

// Transaction is one row extracted by the backend from an uploaded statement.
type Transaction struct {
	Date        string          `json:"date,omitempty"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category,omitempty"`
}

// Statement is the upload-statement response body.
type Statement struct {
	Currency     string        `json:"currency"`
	Transactions []Transaction `json:"transactions"`
}

// StatementTotals is a compact summary of a parsed statement.
type StatementTotals struct {
	Currency string
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Net is income minus expenses.
func (t StatementTotals) Net() decimal.Decimal {
	return t.Income.Sub(t.Expenses)
}

// Totals sums transaction amounts by type. Rows that are neither income nor
// expense are ignored.
func (s Statement) Totals() StatementTotals {
	totals := StatementTotals{Currency: s.Currency, Income: decimal.Zero, Expenses: decimal.Zero}
	for _, tx := range s.Transactions {
		switch tx.Type {
		case string(Income):
			totals.Income = totals.Income.Add(tx.Amount)
		case string(Expense):
			totals.Expenses = totals.Expenses.Add(tx.Amount)
		}
	}
	return totals
}
