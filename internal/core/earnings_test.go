package core

import "testing"

func TestEntryEarnings(t *testing.T) {
	tests := []struct {
		name  string
		hours int64 // tenths
		rate  int64 // cents
		want  int64 // cents
	}{
		{name: "whole hours", hours: 80, rate: 1500, want: 12000},
		{name: "half hour", hours: 85, rate: 2000, want: 17000},
		{name: "rounds half up", hours: 1, rate: 1525, want: 153},
		{name: "zero hours", hours: 0, rate: 1500, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := WorkEntry{HoursWorked: Hours{Tenths: tt.hours}, HourlyRate: Money{Cents: tt.rate}}
			if got := e.Earnings(); got.Cents != tt.want {
				t.Fatalf("Earnings() = %d cents, want %d", got.Cents, tt.want)
			}
		})
	}
}

func TestAggregateEarnings(t *testing.T) {
	entries := []WorkEntry{
		{
			JobName:     "Tutoring",
			HoursWorked: Hours{Tenths: 50},
			HourlyRate:  Money{Cents: 1500},
			WorkDate:    NewDate(2024, 5, 1),
			Paid:        false,
		},
		{
			JobName:     "Barista",
			HoursWorked: Hours{Tenths: 30},
			HourlyRate:  Money{Cents: 2000},
			WorkDate:    NewDate(2024, 5, 2),
			Paid:        true,
			PaidDate:    NewDate(2024, 5, 3),
		},
	}

	sum := AggregateEarnings(entries, MonthRange(2024, 5))

	if sum.TotalHours.Tenths != 80 {
		t.Fatalf("TotalHours = %s, want 8.0", sum.TotalHours)
	}
	if sum.TotalEarnings.Cents != 13500 {
		t.Fatalf("TotalEarnings = %d cents, want 13500", sum.TotalEarnings.Cents)
	}
	if sum.PaidHours.Tenths != 30 || sum.PaidEarnings.Cents != 6000 {
		t.Fatalf("paid = %s hours / %d cents, want 3.0 / 6000", sum.PaidHours, sum.PaidEarnings.Cents)
	}
	if sum.UnpaidHours.Tenths != 50 || sum.UnpaidEarnings.Cents != 7500 {
		t.Fatalf("unpaid = %s hours / %d cents, want 5.0 / 7500", sum.UnpaidHours, sum.UnpaidEarnings.Cents)
	}
}

func TestAggregateEarningsEmpty(t *testing.T) {
	sum := AggregateEarnings(nil, DateRange{})
	if sum != (EarningsSummary{}) {
		t.Fatalf("empty input: got %+v, want zero summary", sum)
	}
}

func TestAggregateEarningsWindow(t *testing.T) {
	entries := []WorkEntry{
		{HoursWorked: Hours{Tenths: 40}, HourlyRate: Money{Cents: 1000}, WorkDate: NewDate(2024, 4, 30)},
		{HoursWorked: Hours{Tenths: 40}, HourlyRate: Money{Cents: 1000}, WorkDate: NewDate(2024, 5, 1)},
		{HoursWorked: Hours{Tenths: 40}, HourlyRate: Money{Cents: 1000}, WorkDate: NewDate(2024, 5, 31)},
		{HoursWorked: Hours{Tenths: 40}, HourlyRate: Money{Cents: 1000}, WorkDate: NewDate(2024, 6, 1)},
	}
	sum := AggregateEarnings(entries, MonthRange(2024, 5))
	if sum.TotalHours.Tenths != 80 {
		t.Fatalf("month boundaries: TotalHours = %s, want 8.0", sum.TotalHours)
	}

	all := AggregateEarnings(entries, DateRange{})
	if all.TotalHours.Tenths != 160 {
		t.Fatalf("zero window: TotalHours = %s, want 16.0", all.TotalHours)
	}
}

func TestAggregateEarningsPartition(t *testing.T) {
	entries := []WorkEntry{
		{HoursWorked: Hours{Tenths: 13}, HourlyRate: Money{Cents: 1733}, Paid: true, WorkDate: NewDate(2024, 5, 1), PaidDate: NewDate(2024, 5, 2)},
		{HoursWorked: Hours{Tenths: 27}, HourlyRate: Money{Cents: 999}, WorkDate: NewDate(2024, 5, 2)},
		{HoursWorked: Hours{Tenths: 101}, HourlyRate: Money{Cents: 2150}, WorkDate: NewDate(2024, 5, 3)},
	}
	sum := AggregateEarnings(entries, DateRange{})
	if got := sum.PaidHours.Add(sum.UnpaidHours); got != sum.TotalHours {
		t.Fatalf("hours partition: paid+unpaid = %s, total = %s", got, sum.TotalHours)
	}
	if got := sum.PaidEarnings.Add(sum.UnpaidEarnings); got != sum.TotalEarnings {
		t.Fatalf("earnings partition: paid+unpaid = %d, total = %d", got.Cents, sum.TotalEarnings.Cents)
	}
}
