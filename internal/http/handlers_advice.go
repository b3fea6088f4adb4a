package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"finapp/internal/api"
	"finapp/internal/core"
)

const (
	msgJSONInvalid   = "JSON input is invalid."
	msgAdvisorFailed = "Advisor failed."
	msgGoalName      = "Please enter a goal name."
	msgGoalValues    = "Target and timeline must be non-negative numbers."

	// DefaultGoalsJSON prefills the goals textarea.
	DefaultGoalsJSON = `[{"goal":"Car","target":12000,"timelineMonths":18}]`
)

type adviceView struct {
	Income   string
	Expenses string
	Goals    string
}

type goalsFieldView struct {
	Goals   string
	Message *message
}

// handleAdviceInsights asks the advisor for insights. Invalid JSON in either
// textarea empties both collections; the request is still sent.
func (s *Server) handleAdviceInsights(w http.ResponseWriter, r *http.Request) {
	if b := ParseFormOrFail(r); b != nil {
		b.Write(w)
		return
	}
	view := &resultView{}

	income := ParseIncome(r.PostForm.Get("income"))
	expenses, errExp := ParseJSONArray(r.PostForm.Get("expenses"))
	goals, errGoals := ParseJSONArray(r.PostForm.Get("goals"))
	if errExp != nil || errGoals != nil {
		view.add(LevelError, msgJSONInvalid)
		expenses, goals = []any{}, []any{}
	}

	req := api.AdviseRequest{Income: income, Expenses: expenses, Goals: goals}
	resp, err := s.call(r.Context(), "advice", api.PathAdvise, func(ctx context.Context) (*api.Response, error) {
		return s.backend.Advise(ctx, req)
	})
	applyResponse(view, resp, err, msgAdvisorFailed)
	s.renderResult(w, r, view)
}

// handleAddGoal appends a goal from the builder inputs to the goals JSON and
// re-renders the goals field.
func (s *Server) handleAddGoal(w http.ResponseWriter, r *http.Request) {
	if b := ParseFormOrFail(r); b != nil {
		b.Write(w)
		return
	}
	current := r.PostForm.Get("goals")
	view := goalsFieldView{Goals: current}

	goal, err := ParseGoal(r.PostForm.Get("goal_name"), r.PostForm.Get("goal_target"), r.PostForm.Get("goal_timeline"))
	if err != nil {
		text := msgGoalValues
		if errors.Is(err, core.ErrEmptyGoalName) {
			text = msgGoalName
		}
		view.Message = &message{Level: LevelWarning, Text: text}
		s.render(w, r, "goals_field", view)
		return
	}

	goals, err := ParseJSONArray(current)
	if err != nil {
		// the builder starts over rather than appending to unparseable text
		goals = []any{}
		view.Message = &message{Level: LevelWarning, Text: "Existing goals JSON was invalid and has been replaced."}
	}
	goals = append(goals, goal)

	b, err := json.Marshal(goals)
	if err != nil {
		InternalServerError("Could not encode goals.").Write(w)
		return
	}
	view.Goals = string(b)
	name := strings.TrimSpace(goal.Goal)
	s.renderWith(w, r, NewHTMXResponse().
		TriggerGoalAdded(name).
		TriggerNotification(NotificationSuccess, "Goal added: "+name, notificationMs),
		"goals_field", view)
}
