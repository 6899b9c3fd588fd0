package google

import "testing"

func TestYearPrefixedName(t *testing.T) {
	tests := []struct {
		base string
		year int
		want string
	}{
		{"Expenses", 2026, "2026 Expenses"},
		{" Timesheets ", 2026, "2026 Timesheets"},
		{"2025 Expenses", 2026, "2025 Expenses"},
		{"", 2026, ""},
		{"12345", 2026, "2026 12345"},
	}
	for _, tt := range tests {
		if got := yearPrefixedName(tt.base, tt.year); got != tt.want {
			t.Fatalf("yearPrefixedName(%q, %d) = %q, want %q", tt.base, tt.year, got, tt.want)
		}
	}
}

func TestSheetFor(t *testing.T) {
	c := &Client{expensesSheet: "2026 Expenses", timesheetsSheet: "2026 Timesheets"}

	sheet, err := c.sheetFor("expense")
	if err != nil || sheet != "2026 Expenses" {
		t.Fatalf("sheetFor(expense) = %q, %v", sheet, err)
	}
	sheet, err = c.sheetFor("timesheet")
	if err != nil || sheet != "2026 Timesheets" {
		t.Fatalf("sheetFor(timesheet) = %q, %v", sheet, err)
	}
	if _, err := c.sheetFor("debt"); err == nil {
		t.Fatal("sheetFor(debt) should fail")
	}
}
