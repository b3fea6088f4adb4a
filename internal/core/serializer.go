package core

import (
	"strings"
)

// BuildLine formats one row as "{description} {amount} {currency} ({category})".
func BuildLine(e EntryRecord, currency string) string {
	return strings.TrimSpace(e.Description) + " " +
		FormatAmount(e.Amount) + " " +
		currency +
		" (" + strings.TrimSpace(e.Category) + ")"
}

// BuildRequestText joins every positive-amount row into the free-form text sent
// for analysis. Income lines come first, then expense lines, each in list order.
func BuildRequestText(income, expense EntryList, currency string) string {
	lines := make([]string, 0, len(income)+len(expense))
	lines = appendLines(lines, Income, income, currency)
	lines = appendLines(lines, Expense, expense, currency)
	return strings.Join(lines, "\n")
}

func appendLines(lines []string, kind Kind, list EntryList, currency string) []string {
	for _, e := range list {
		if !e.HasAmount() {
			continue
		}
		lines = append(lines, kind.Label()+": "+BuildLine(e, currency))
	}
	return lines
}

// ValidateRequestText rejects text that would submit nothing.
func ValidateRequestText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyRequest
	}
	return nil
}
