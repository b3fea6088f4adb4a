package http

import (
	"context"
	"net/http"

	"finapp/internal/api"
)

const (
	msgExpensesInvalid = "Expenses JSON is invalid."

	// DefaultExpensesJSON prefills the expenses textarea.
	DefaultExpensesJSON = `[{"description":"Rent","amount":1200},{"description":"Groceries","amount":350}]`
)

type budgetView struct {
	Income   string
	Expenses string
}

// handleBudgetAnalyze sends monthly income and an expenses array for analysis.
// Invalid expenses JSON is reported but still submitted, as an empty array.
func (s *Server) handleBudgetAnalyze(w http.ResponseWriter, r *http.Request) {
	if b := ParseFormOrFail(r); b != nil {
		b.Write(w)
		return
	}
	view := &resultView{}

	income := ParseIncome(r.PostForm.Get("income"))
	expenses, err := ParseJSONArray(r.PostForm.Get("expenses"))
	if err != nil {
		view.add(LevelError, msgExpensesInvalid)
		expenses = []any{}
	}

	req := api.AnalyzeRequest{Income: income, Expenses: expenses}
	resp, err := s.call(r.Context(), "budget", api.PathAnalyze, func(ctx context.Context) (*api.Response, error) {
		return s.backend.Analyze(ctx, req)
	})
	applyResponse(view, resp, err, msgAnalysisFailed)
	s.renderResult(w, r, view)
}
