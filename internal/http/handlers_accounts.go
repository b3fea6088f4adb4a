package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"finapp/internal/api"
	"finapp/internal/core"
	applog "finapp/internal/log"
	"finapp/internal/session"
)

const (
	msgSelectStatement = "Please select a PDF statement."
	msgStatementFailed = "Failed to parse statement."
	msgNeedAmount      = "Please add at least one income or expense with an amount."
	msgAnalysisFailed  = "Analysis failed."
	msgRowsSkipped     = "Some rows could not be read and were skipped."
	msgEntriesCleared  = "Entries cleared."
)

type accountsView struct {
	Entries entriesView
}

type totalsView struct {
	Income   string
	Expenses string
	Net      string
	Bars     []barView
}

type barView struct {
	Label   string
	Class   string
	Percent int
}

func newTotalsView(t core.StatementTotals) *totalsView {
	return &totalsView{
		Income:   core.FormatTotal(t.Income, t.Currency),
		Expenses: core.FormatTotal(t.Expenses, t.Currency),
		Net:      core.FormatTotal(t.Net(), t.Currency),
		Bars: []barView{
			{Label: "Income", Class: "income", Percent: barPercent(t.Income, t.Income, t.Expenses)},
			{Label: "Expenses", Class: "expense", Percent: barPercent(t.Expenses, t.Income, t.Expenses)},
		},
	}
}

// barPercent scales v against the larger of a and b (at least 1).
func barPercent(v, a, b decimal.Decimal) int {
	top := decimal.Max(a, b, decimal.NewFromInt(1))
	if v.IsNegative() {
		return 0
	}
	return int(v.Mul(decimal.NewFromInt(100)).Div(top).Round(0).IntPart())
}

// handleStatementUpload forwards a PDF statement and summarizes the result.
func (s *Server) handleStatementUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	view := &resultView{}

	data, filename, err := readStatement(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			view.add(LevelError, "Statement is too large.")
		} else {
			view.add(LevelWarning, msgSelectStatement)
		}
		s.recordInvalid(r.Context(), "accounts", api.PathUploadStatement)
		s.renderResult(w, r, view)
		return
	}

	resp, err := s.call(r.Context(), "accounts", api.PathUploadStatement, func(ctx context.Context) (*api.Response, error) {
		return s.backend.UploadStatement(ctx, filename, data)
	})
	if !applyResponse(view, resp, err, msgStatementFailed) {
		s.renderResult(w, r, view)
		return
	}

	var stmt core.Statement
	if err := resp.JSON(&stmt); err != nil {
		s.logger.WarnContext(r.Context(), "Statement response is not a statement",
			applog.FieldOperation, applog.OpParse, applog.FieldError, err)
		view.JSON = ""
		view.add(LevelError, msgStatementFailed)
		s.renderResult(w, r, view)
		return
	}
	view.Totals = newTotalsView(stmt.Totals())
	s.renderResult(w, r, view)
}

func readStatement(r *http.Request) ([]byte, string, error) {
	file, hdr, err := r.FormFile(api.StatementField)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", http.ErrMissingFile
	}
	return data, sanitizeFilename(hdr.Filename), nil
}

// Entry actions posted to /entries/{action}.
const (
	ActionAddIncome  = "add-income"
	ActionAddExpense = "add-expense"
	ActionReset      = "reset"
	ActionAnalyze    = "analyze"
)

type entriesView struct {
	Currency   string
	Currencies []string
	Income     []rowView
	Expense    []rowView
}

type rowView struct {
	Kind        core.Kind
	Index       int
	Category    string
	Description string
	Amount      string
	Open        bool
}

func (r rowView) Field(name string) string {
	return entryField(r.Kind, name, r.Index)
}

func newEntriesView(st *session.State) entriesView {
	return entriesView{
		Currency:   st.Currency(),
		Currencies: core.Currencies,
		Income:     rows(core.Income, st.Entries(core.Income)),
		Expense:    rows(core.Expense, st.Entries(core.Expense)),
	}
}

func rows(kind core.Kind, list core.EntryList) []rowView {
	out := make([]rowView, len(list))
	for i, e := range list {
		amount := ""
		if !e.Amount.IsZero() {
			amount = core.FormatAmount(e.Amount)
		}
		category := e.Category
		if category == "" {
			category = kind.Categories()[0]
		}
		out[i] = rowView{
			Kind:        kind,
			Index:       i,
			Category:    category,
			Description: e.Description,
			Amount:      amount,
			Open:        i == 0,
		}
	}
	return out
}

// handleEntries applies the posted rows to the session, then performs the action.
func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	switch action {
	case ActionAddIncome, ActionAddExpense, ActionReset, ActionAnalyze:
	default:
		NotFoundError("Unknown action.").Write(w)
		return
	}

	if b := ParseFormOrFail(r); b != nil {
		b.Write(w)
		return
	}

	st := s.sessions.Load(w, r)
	skipped := bindEntries(st, r.PostForm)
	if skipped > 0 {
		s.logger.DebugContext(r.Context(), "Ignored invalid entry rows", applog.FieldEntryCount, skipped)
	}

	resp := NewHTMXResponse()
	switch action {
	case ActionAddIncome:
		appendRow(st, core.Income)
	case ActionAddExpense:
		appendRow(st, core.Expense)
	case ActionReset:
		st.ResetAll()
		resp.TriggerNotification(NotificationInfo, msgEntriesCleared, notificationMs)
	case ActionAnalyze:
		s.analyzeEntries(w, r, st, skipped)
		return
	}

	s.renderWith(w, r, resp.TriggerEntriesChanged(st.Len(core.Income), st.Len(core.Expense)),
		"entries", newEntriesView(st))
}

func appendRow(st *session.State, kind core.Kind) {
	if st.Len(kind) < MaxEntryRows {
		_ = st.AppendBlank(kind)
	}
}

func (s *Server) analyzeEntries(w http.ResponseWriter, r *http.Request, st *session.State, skipped int) {
	view := &resultView{}
	if skipped > 0 {
		view.add(LevelWarning, msgRowsSkipped)
	}

	text := st.RequestText()
	if err := core.ValidateRequestText(text); err != nil {
		view.add(LevelWarning, msgNeedAmount)
		s.recordInvalid(r.Context(), "accounts", api.PathAnalyzeFreeform)
		s.renderResult(w, r, view)
		return
	}

	resp, err := s.call(r.Context(), "accounts", api.PathAnalyzeFreeform, func(ctx context.Context) (*api.Response, error) {
		return s.backend.AnalyzeFreeform(ctx, text)
	})
	applyResponse(view, resp, err, msgAnalysisFailed)
	s.renderResult(w, r, view)
}
