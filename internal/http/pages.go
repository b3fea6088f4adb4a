package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	applog "finapp/internal/log"
)

// Page is one sidebar entry.
type Page struct {
	Slug     string
	Title    string
	Template string
}

const comingSoonTemplate = "coming_soon"

// Pages lists the sidebar in display order. Pages without their own template
// render the coming-soon placeholder.
var Pages = []Page{
	{Slug: "dashboard", Title: "Dashboard", Template: "dashboard"},
	{Slug: "accounts", Title: "Accounts", Template: "accounts"},
	{Slug: "transactions", Title: "Transactions"},
	{Slug: "cash-flow", Title: "Cash Flow"},
	{Slug: "reports", Title: "Reports"},
	{Slug: "budget", Title: "Budget", Template: "budget"},
	{Slug: "recurring", Title: "Recurring"},
	{Slug: "goals", Title: "Goals"},
	{Slug: "investments", Title: "Investments"},
	{Slug: "advice", Title: "Advice", Template: "advice"},
	{Slug: "knowledge-base", Title: "Knowledge Base", Template: "knowledge_base"},
}

// DefaultPage is shown at "/".
const DefaultPage = "dashboard"

// LookupPage resolves a slug. Unknown slugs resolve to a coming-soon page so
// that every sidebar name has somewhere to land.
func LookupPage(slug string) (Page, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, p := range Pages {
		if p.Slug == slug {
			if p.Template == "" {
				p.Template = comingSoonTemplate
			}
			return p, true
		}
	}
	return Page{Slug: slug, Title: "FinApp", Template: comingSoonTemplate}, false
}

type pageView struct {
	Page    Page
	Pages   []Page
	APIBase string
	Data    any
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/pages/"+DefaultPage, http.StatusSeeOther)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, known := LookupPage(chi.URLParam(r, "page"))
	if !known {
		s.logger.DebugContext(r.Context(), "Unknown page requested", applog.FieldPage, page.Slug)
	}

	view := pageView{
		Page:    page,
		Pages:   Pages,
		APIBase: s.backend.BaseURL(),
		Data:    s.pageData(w, r, page),
	}

	name := "layout"
	if isHTMX(r) {
		name = "main"
	}
	s.render(w, r, name, view)
}

// pageData builds the initial form state of a page.
func (s *Server) pageData(w http.ResponseWriter, r *http.Request, page Page) any {
	switch page.Template {
	case "accounts":
		st := s.sessions.Load(w, r)
		return accountsView{Entries: newEntriesView(st)}
	case "budget":
		return budgetView{Income: "0", Expenses: DefaultExpensesJSON}
	case "advice":
		return adviceView{Income: "0", Expenses: DefaultExpensesJSON, Goals: DefaultGoalsJSON}
	case "knowledge_base":
		return kbView{Query: DefaultKBQuery, TopK: DefaultTopK, Advanced: true}
	default:
		return nil
	}
}
