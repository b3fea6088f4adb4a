package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

type (
	// Kind selects one of the two entry lists.
	Kind string

	// EntryRecord is one income or expense row as edited in the form.
	EntryRecord struct {
		Category    string
		Description string
		Amount      decimal.Decimal
	}

	// EntryList is the ordered row set for one kind.
	EntryList []EntryRecord

	// Goal is a savings target sent to the advisor endpoint.
	Goal struct {
		Goal           string  `json:"goal"`
		Target         float64 `json:"target"`
		TimelineMonths int     `json:"timelineMonths"`
	}
)

var (
	ErrUnknownKind      = errors.New("unknown entry kind")
	ErrIndexOutOfRange  = errors.New("entry index out of range")
	ErrNegativeAmount   = errors.New("amount must not be negative")
	ErrEmptyRequest     = errors.New("no entry with a positive amount")
	ErrEmptyGoalName    = errors.New("empty goal name")
	ErrInvalidGoalValue = errors.New("goal target and timeline must not be negative")
)

// ParseKind maps a form/path value to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	default:
		return "", ErrUnknownKind
	}
}

// Label is the prefix used when serializing a row of this kind.
func (k Kind) Label() string {
	switch k {
	case Income:
		return "Income"
	case Expense:
		return "Expense"
	default:
		return string(k)
	}
}

// Categories returns the fixed category set for the kind.
func (k Kind) Categories() []string {
	if k == Income {
		return IncomeCategories
	}
	return ExpenseCategories
}

func (e EntryRecord) Validate() error {
	if e.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// HasAmount reports whether the row contributes to an analysis request.
func (e EntryRecord) HasAmount() bool {
	return e.Amount.IsPositive()
}

// Clone returns a copy that does not share backing storage with l.
func (l EntryList) Clone() EntryList {
	out := make(EntryList, len(l))
	copy(out, l)
	return out
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Goal) == "" {
		return ErrEmptyGoalName
	}
	if g.Target < 0 || g.TimelineMonths < 0 {
		return ErrInvalidGoalValue
	}
	return nil
}
