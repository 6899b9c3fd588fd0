package core

import (
	"errors"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{input: "12.34", want: 1234},
		{input: "12,34", want: 1234},
		{input: "12.345", want: 1235},
		{input: "12.344", want: 1234},
		{input: "12", want: 1200},
		{input: "12.5", want: 1250},
		{input: ".50", want: 50},
		{input: " 7.00 ", want: 700},
		{input: "1234567.89", want: 123456789},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDecimalToCents(tt.input)
			if err != nil {
				t.Fatalf("ParseDecimalToCents(%q): unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("ParseDecimalToCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDecimalToCentsInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "12.34.56", "-5.00", "+5.00", "0", "0.00", "12.3a"} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseDecimalToCents(input); !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("ParseDecimalToCents(%q): got %v, want ErrInvalidAmount", input, err)
			}
		})
	}
}

func TestParseBalanceToCents(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{input: "100.00", want: 10000},
		{input: "-25.50", want: -2550},
		{input: "0", want: 0},
		{input: "0.00", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBalanceToCents(tt.input)
			if err != nil {
				t.Fatalf("ParseBalanceToCents(%q): unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("ParseBalanceToCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseHoursToTenths(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{input: "8", want: 80},
		{input: "8.5", want: 85},
		{input: "8,5", want: 85},
		{input: "8.55", want: 86},
		{input: "8.54", want: 85},
		{input: "0", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHoursToTenths(tt.input)
			if err != nil {
				t.Fatalf("ParseHoursToTenths(%q): unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("ParseHoursToTenths(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}

	for _, input := range []string{"", "-1", "+2", "abc", "1.2.3"} {
		if _, err := ParseHoursToTenths(input); !errors.Is(err, ErrNegativeHours) {
			t.Fatalf("ParseHoursToTenths(%q): got %v, want ErrNegativeHours", input, err)
		}
	}
}

func TestHoursString(t *testing.T) {
	tests := []struct {
		tenths int64
		want   string
	}{
		{tenths: 85, want: "8.5"},
		{tenths: 80, want: "8.0"},
		{tenths: 0, want: "0.0"},
		{tenths: 5, want: "0.5"},
		{tenths: 120, want: "12.0"},
	}
	for _, tt := range tests {
		if got := (Hours{Tenths: tt.tenths}).String(); got != tt.want {
			t.Fatalf("Hours{%d}.String() = %q, want %q", tt.tenths, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		symbol string
		cents  int64
		want   string
	}{
		{name: "simple", symbol: "$", cents: 1234, want: "$12.34"},
		{name: "thousands", symbol: "$", cents: 123456789, want: "$1,234,567.89"},
		{name: "negative", symbol: "$", cents: -50, want: "-$0.50"},
		{name: "zero", symbol: "€", cents: 0, want: "€0.00"},
		{name: "exact thousand", symbol: "£", cents: 100000, want: "£1,000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAmount(tt.symbol, Money{Cents: tt.cents}); got != tt.want {
				t.Fatalf("FormatAmount(%q, %d) = %q, want %q", tt.symbol, tt.cents, got, tt.want)
			}
		})
	}
}
