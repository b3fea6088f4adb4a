package core

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func rec(desc string, amount string, cat string) EntryRecord {
	return EntryRecord{Description: desc, Amount: decimal.RequireFromString(amount), Category: cat}
}

func TestBuildLine(t *testing.T) {
	got := BuildLine(rec("Rent", "1200", "Housing"), "EUR")
	if got != "Rent 1200 EUR (Housing)" {
		t.Fatalf("BuildLine = %q", got)
	}

	got = BuildLine(EntryRecord{Description: "  Salary ", Category: " Other Income  "}, "CHF")
	if got != "Salary 0 CHF (Other Income)" {
		t.Fatalf("BuildLine with zero amount = %q", got)
	}

	got = BuildLine(rec("Coffee", "3.50", "Food"), "USD")
	if got != "Coffee 3.5 USD (Food)" {
		t.Fatalf("BuildLine with fraction = %q", got)
	}
}

func TestBuildRequestTextFiltersAndOrders(t *testing.T) {
	income := EntryList{
		rec("Salary", "5000", "Salary / Wages"),
		rec("Nothing", "0", "Other Income"),
		rec("Side gig", "300", "Business / Freelance Income"),
	}
	expense := EntryList{
		rec("", "0", "Food - Groceries"),
		rec("Rent", "1200", "Housing - Rent / Mortgage"),
		rec("Phone", "40", "Utilities - Mobile Phone"),
	}

	got := BuildRequestText(income, expense, "CHF")
	want := strings.Join([]string{
		"Income: Salary 5000 CHF (Salary / Wages)",
		"Income: Side gig 300 CHF (Business / Freelance Income)",
		"Expense: Rent 1200 CHF (Housing - Rent / Mortgage)",
		"Expense: Phone 40 CHF (Utilities - Mobile Phone)",
	}, "\n")
	if got != want {
		t.Fatalf("BuildRequestText =\n%s\nwant\n%s", got, want)
	}
}

func TestBuildRequestTextAllZeroIsEmpty(t *testing.T) {
	got := BuildRequestText(EntryList{{}}, EntryList{{}}, "EUR")
	if got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
	if err := ValidateRequestText(got); err != ErrEmptyRequest {
		t.Fatalf("expected ErrEmptyRequest, got %v", err)
	}
	if err := ValidateRequestText("   \n "); err != ErrEmptyRequest {
		t.Fatalf("expected ErrEmptyRequest for whitespace, got %v", err)
	}
}

func TestBuildRequestTextOnlyExpenses(t *testing.T) {
	got := BuildRequestText(nil, EntryList{rec("Gym", "60", "Health - Fitness / Gym")}, "GBP")
	if got != "Expense: Gym 60 GBP (Health - Fitness / Gym)" {
		t.Fatalf("unexpected text %q", got)
	}
}
