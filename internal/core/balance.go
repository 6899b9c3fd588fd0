package core

import "math"

// NetWorth sums all bank balances plus the cash balance. A missing cash
// account counts as zero.
func NetWorth(accounts []BankAccount, cash *CashAccount) Money {
	var total Money
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	if cash != nil {
		total = total.Add(cash.Balance)
	}
	return total
}

// NetSavings nets earnings against expenses over the same window; the result
// may be negative.
func NetSavings(earnings, expenses Money) Money {
	return earnings.Sub(expenses)
}

// SavingsRate expresses net savings as a whole percentage of earnings,
// rounded half-up. A zero or negative earnings figure yields a rate of 0
// rather than a division error.
func SavingsRate(netSavings, earnings Money) int {
	if earnings.Cents <= 0 {
		return 0
	}
	return int(math.Floor(float64(netSavings.Cents)/float64(earnings.Cents)*100 + 0.5))
}
