// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating form input:
// entry rows, JSON textareas, numeric fields and toggles.

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"finapp/internal/core"
)

var ErrNotArray = errors.New("JSON value is not an array")

// entryField names a row input: "income_amount_2".
func entryField(kind core.Kind, name string, index int) string {
	return string(kind) + "_" + name + "_" + strconv.Itoa(index)
}

// MaxEntryRows caps the rows one kind can hold in a session.
const MaxEntryRows = 100

// bindEntries copies posted row values into the session state. Lists are first
// grown to the highest posted row index, so a session recreated after expiry
// still receives every row the browser sent. A row is bound when any of its
// inputs was posted. It returns the number of rows it could not apply.
func bindEntries(st entryUpdater, form url.Values) int {
	if c := strings.TrimSpace(form.Get("currency")); c != "" {
		st.SetCurrency(c)
	}

	failed := 0
	for _, kind := range []core.Kind{core.Income, core.Expense} {
		top, dropped := highestPostedRow(form, kind)
		failed += dropped
		for st.Len(kind) <= top {
			if err := st.AppendBlank(kind); err != nil {
				break
			}
		}
		for i := 0; i < st.Len(kind); i++ {
			rec, posted := parseEntryRow(form, kind, i)
			if !posted {
				continue
			}
			if err := st.Update(kind, i, rec); err != nil {
				failed++
			}
		}
	}
	return failed
}

type entryUpdater interface {
	Len(kind core.Kind) int
	AppendBlank(kind core.Kind) error
	Update(kind core.Kind, index int, rec core.EntryRecord) error
	SetCurrency(code string) bool
}

var rowInputs = []string{"category", "desc", "amount"}

// highestPostedRow returns the largest row index below MaxEntryRows posted for
// kind, or -1, and the number of posted rows at or above the cap.
func highestPostedRow(form url.Values, kind core.Kind) (top, dropped int) {
	top = -1
	over := map[int]bool{}
	for key := range form {
		rest, ok := strings.CutPrefix(key, string(kind)+"_")
		if !ok {
			continue
		}
		sep := strings.LastIndexByte(rest, '_')
		if sep < 0 || !slices.Contains(rowInputs, rest[:sep]) {
			continue
		}
		i, err := strconv.Atoi(rest[sep+1:])
		switch {
		case err != nil || i < 0:
		case i >= MaxEntryRows:
			over[i] = true
		default:
			top = max(top, i)
		}
	}
	return top, len(over)
}

// parseEntryRow reads one row. Unknown categories fall back to the first of
// the kind; blank, invalid or negative amounts become zero.
func parseEntryRow(form url.Values, kind core.Kind, i int) (core.EntryRecord, bool) {
	catKey := entryField(kind, "category", i)
	descKey := entryField(kind, "desc", i)
	amtKey := entryField(kind, "amount", i)

	_, hasCat := form[catKey]
	_, hasDesc := form[descKey]
	_, hasAmt := form[amtKey]
	if !hasCat && !hasDesc && !hasAmt {
		return core.EntryRecord{}, false
	}

	return core.EntryRecord{
		Category:    validCategory(kind, form.Get(catKey)),
		Description: sanitizeInput(form.Get(descKey)),
		Amount:      core.ParseFormAmount(form.Get(amtKey)),
	}, true
}

func validCategory(kind core.Kind, c string) string {
	c = strings.TrimSpace(c)
	cats := kind.Categories()
	for _, known := range cats {
		if c == known {
			return c
		}
	}
	return cats[0]
}

// ParseJSONArray decodes a textarea holding a JSON array. Blank input is an
// empty array.
func ParseJSONArray(raw string) ([]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []any{}, nil
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, ErrNotArray
	}
	return arr, nil
}

// ParseIncome reads a non-negative monthly income. Anything else is zero.
func ParseIncome(raw string) float64 {
	d, err := core.ParseAmount(raw)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

// ParseTopK clamps the result count to MinTopK..MaxTopK, defaulting to DefaultTopK.
func ParseTopK(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return DefaultTopK
	}
	if n < MinTopK {
		return MinTopK
	}
	if n > MaxTopK {
		return MaxTopK
	}
	return n
}

// ParseToggle reads a checkbox paired with a hidden "off" input. With no
// values at all the default applies.
func ParseToggle(values []string, def bool) bool {
	if len(values) == 0 {
		return def
	}
	for _, v := range values {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "on", "true", "1":
			return true
		}
	}
	return false
}

// ParseGoal builds a goal from the builder inputs. Blank numbers are zero.
func ParseGoal(name, target, timeline string) (core.Goal, error) {
	g := core.Goal{Goal: sanitizeInput(name)}

	if t := strings.TrimSpace(target); t != "" {
		v, err := strconv.ParseFloat(strings.ReplaceAll(t, ",", "."), 64)
		if err != nil {
			return core.Goal{}, core.ErrInvalidGoalValue
		}
		g.Target = v
	}
	if m := strings.TrimSpace(timeline); m != "" {
		v, err := strconv.Atoi(m)
		if err != nil {
			return core.Goal{}, core.ErrInvalidGoalValue
		}
		g.TimelineMonths = v
	}

	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	return g, nil
}

// ParseFormOrFail parses the request form and returns an error response on failure.
// Returns nil on success.
func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Invalid request format.")
	}
	return nil
}
