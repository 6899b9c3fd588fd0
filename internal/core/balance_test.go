package core

import "testing"

func TestNetWorth(t *testing.T) {
	accounts := []BankAccount{
		{Name: "checking", Type: AccountChecking, Balance: Money{Cents: 150000}},
		{Name: "savings", Type: AccountSavings, Balance: Money{Cents: 500000}},
		{Name: "overdrawn", Type: AccountChecking, Balance: Money{Cents: -2500}},
	}
	cash := &CashAccount{Balance: Money{Cents: 4000}}

	if got := NetWorth(accounts, cash); got.Cents != 651500 {
		t.Fatalf("NetWorth = %d cents, want 651500", got.Cents)
	}
	if got := NetWorth(accounts, nil); got.Cents != 647500 {
		t.Fatalf("NetWorth without cash = %d cents, want 647500", got.Cents)
	}
	if got := NetWorth(nil, nil); got.Cents != 0 {
		t.Fatalf("NetWorth of nothing = %d cents, want 0", got.Cents)
	}
}

func TestNetSavings(t *testing.T) {
	if got := NetSavings(Money{Cents: 13500}, Money{Cents: 10000}); got.Cents != 3500 {
		t.Fatalf("NetSavings = %d, want 3500", got.Cents)
	}
	if got := NetSavings(Money{Cents: 5000}, Money{Cents: 8000}); got.Cents != -3000 {
		t.Fatalf("NetSavings = %d, want -3000", got.Cents)
	}
}

func TestSavingsRate(t *testing.T) {
	tests := []struct {
		name     string
		net      int64
		earnings int64
		want     int
	}{
		{name: "typical month", net: 3500, earnings: 13500, want: 26},
		{name: "rounds half up", net: 2500, earnings: 10000, want: 25},
		{name: "saved everything", net: 10000, earnings: 10000, want: 100},
		{name: "overspent", net: -3000, earnings: 10000, want: -30},
		{name: "zero earnings", net: -5000, earnings: 0, want: 0},
		{name: "negative earnings", net: 1000, earnings: -100, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SavingsRate(Money{Cents: tt.net}, Money{Cents: tt.earnings})
			if got != tt.want {
				t.Fatalf("SavingsRate(%d, %d) = %d, want %d", tt.net, tt.earnings, got, tt.want)
			}
		})
	}
}
