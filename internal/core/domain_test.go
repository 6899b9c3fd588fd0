package core

import (
	"errors"
	"testing"
	"time"
)

func TestEnumValidation(t *testing.T) {
	if _, err := ParseExpenseCategory("grocery"); err != nil {
		t.Fatalf("grocery should parse: %v", err)
	}
	if _, err := ParseExpenseCategory("Grocery"); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("case-sensitive parse: got %v, want ErrInvalidCategory", err)
	}
	if _, err := ParsePaymentMethod("snacks"); !errors.Is(err, ErrInvalidPaymentMethod) {
		t.Fatalf("unknown method: got %v, want ErrInvalidPaymentMethod", err)
	}
	if _, err := ParseAccountType("both"); err != nil {
		t.Fatalf("both should parse: %v", err)
	}
	if _, err := ParseDebtType("mortgage"); err != nil {
		t.Fatalf("mortgage should parse: %v", err)
	}
	if _, err := ParseDebtType(""); !errors.Is(err, ErrInvalidDebtType) {
		t.Fatalf("empty debt type: got %v, want ErrInvalidDebtType", err)
	}
}

func TestMonthRange(t *testing.T) {
	r := MonthRange(2024, 2)
	if r.From != NewDate(2024, 2, 1) {
		t.Fatalf("From = %s, want 2024-02-01", r.From.ISO())
	}
	if r.To != NewDate(2024, 2, 29) {
		t.Fatalf("To = %s, want 2024-02-29 (leap year)", r.To.ISO())
	}
	if !r.Contains(NewDate(2024, 2, 1)) || !r.Contains(NewDate(2024, 2, 29)) {
		t.Fatalf("range bounds should be inclusive")
	}
	if r.Contains(NewDate(2024, 3, 1)) {
		t.Fatalf("range should exclude the next month")
	}
}

func TestDateRangeZeroValue(t *testing.T) {
	var r DateRange
	if !r.IsZero() {
		t.Fatalf("zero range should report IsZero")
	}
	if !r.Contains(NewDate(1990, 1, 1)) || !r.Contains(NewDate(2099, 12, 31)) {
		t.Fatalf("zero range should contain every date")
	}

	open := DateRange{From: NewDate(2024, 5, 1)}
	if open.Contains(NewDate(2024, 4, 30)) {
		t.Fatalf("open-ended range should still enforce its From bound")
	}
	if !open.Contains(NewDate(2030, 1, 1)) {
		t.Fatalf("open-ended range should be unbounded above")
	}
}

func TestWorkEntryValidate(t *testing.T) {
	valid := WorkEntry{
		JobName:     "Tutoring",
		HoursWorked: Hours{Tenths: 40},
		HourlyRate:  Money{Cents: 1500},
		WorkDate:    NewDate(2024, 5, 1),
		TimeFrom:    "22:00",
		TimeTo:      "02:00",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid entry: unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*WorkEntry)
		wantErr error
	}{
		{name: "empty job name", mutate: func(e *WorkEntry) { e.JobName = " " }, wantErr: ErrEmptyName},
		{name: "zero work date", mutate: func(e *WorkEntry) { e.WorkDate = Date{} }, wantErr: ErrInvalidDate},
		{name: "negative hours", mutate: func(e *WorkEntry) { e.HoursWorked = Hours{Tenths: -1} }, wantErr: ErrNegativeHours},
		{name: "negative rate", mutate: func(e *WorkEntry) { e.HourlyRate = Money{Cents: -100} }, wantErr: ErrInvalidAmount},
		{name: "hours disagree with clock", mutate: func(e *WorkEntry) { e.HoursWorked = Hours{Tenths: 50} }, wantErr: ErrClockHoursMismatch},
		{name: "bad clock time", mutate: func(e *WorkEntry) { e.TimeFrom = "25:00" }, wantErr: ErrInvalidClockTime},
		{name: "paid without date", mutate: func(e *WorkEntry) { e.Paid = true }, wantErr: ErrPaidDateMismatch},
		{name: "date without paid", mutate: func(e *WorkEntry) { e.PaidDate = NewDate(2024, 5, 2) }, wantErr: ErrPaidDateMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			if err := e.Validate(); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWorkEntryValidateClockOptional(t *testing.T) {
	e := WorkEntry{
		JobName:     "Gardening",
		HoursWorked: Hours{Tenths: 35},
		HourlyRate:  Money{Cents: 1200},
		WorkDate:    NewDate(2024, 5, 4),
	}
	if err := e.Validate(); err != nil {
		t.Fatalf("entry without clock times should validate: %v", err)
	}
	e.TimeFrom = "09:00"
	if err := e.Validate(); err != nil {
		t.Fatalf("one clock time alone is not checked: %v", err)
	}
}

func TestExpenseValidate(t *testing.T) {
	valid := Expense{
		Name:       "weekly shop",
		Category:   CategoryGrocery,
		Amount:     Money{Cents: 5000},
		OccurredAt: time.Date(2024, 5, 3, 18, 30, 0, 0, time.UTC),
		Method:     MethodDebit,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid expense: unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Expense)
		wantErr error
	}{
		{name: "empty name", mutate: func(e *Expense) { e.Name = "" }, wantErr: ErrEmptyName},
		{name: "bad category", mutate: func(e *Expense) { e.Category = "snacks" }, wantErr: ErrInvalidCategory},
		{name: "zero amount", mutate: func(e *Expense) { e.Amount = Money{} }, wantErr: ErrInvalidAmount},
		{name: "negative amount", mutate: func(e *Expense) { e.Amount = Money{Cents: -100} }, wantErr: ErrInvalidAmount},
		{name: "zero timestamp", mutate: func(e *Expense) { e.OccurredAt = time.Time{} }, wantErr: ErrInvalidDate},
		{name: "bad method", mutate: func(e *Expense) { e.Method = "gold" }, wantErr: ErrInvalidPaymentMethod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			if err := e.Validate(); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBankAccountValidate(t *testing.T) {
	a := BankAccount{Name: "main", Type: AccountChecking, Balance: Money{Cents: -5000}}
	if err := a.Validate(); err != nil {
		t.Fatalf("overdrawn account should validate: %v", err)
	}
	a.Type = "offshore"
	if err := a.Validate(); !errors.Is(err, ErrInvalidAccountType) {
		t.Fatalf("got %v, want ErrInvalidAccountType", err)
	}
}

func TestDebtValidate(t *testing.T) {
	d := Debt{Name: "car loan", Type: DebtPersonalLoan, Amount: Money{Cents: 0}}
	if err := d.Validate(); err != nil {
		t.Fatalf("zero debt should validate: %v", err)
	}
	d.Amount = Money{Cents: -1}
	if err := d.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("got %v, want ErrInvalidAmount", err)
	}
}

func TestDateHelpers(t *testing.T) {
	d := NewDate(2024, 5, 6)
	if d.Weekday() != "Monday" {
		t.Fatalf("Weekday() = %q, want Monday", d.Weekday())
	}
	if d.ISO() != "2024-05-06" {
		t.Fatalf("ISO() = %q, want 2024-05-06", d.ISO())
	}
	parsed, err := ParseDate("2024-05-06")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if parsed != d {
		t.Fatalf("ParseDate round trip mismatch: %v != %v", parsed, d)
	}
	if _, err := ParseDate("06/05/2024"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("bad format: got %v, want ErrInvalidDate", err)
	}

	ts := time.Date(2024, 5, 6, 23, 59, 59, 0, time.UTC)
	if DateOf(ts) != d {
		t.Fatalf("DateOf should drop the time component")
	}
}
