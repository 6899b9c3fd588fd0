package core

// EarningsSummary is the aggregate over a set of work entries: totals plus
// the paid/unpaid partition. Partition sums always add up to the totals
// because every entry lands in exactly one partition.
type EarningsSummary struct {
	TotalHours     Hours `json:"total_hours"`
	TotalEarnings  Money `json:"total_earnings"`
	PaidHours      Hours `json:"paid_hours"`
	PaidEarnings   Money `json:"paid_earnings"`
	UnpaidHours    Hours `json:"unpaid_hours"`
	UnpaidEarnings Money `json:"unpaid_earnings"`
}

// Earnings prices a single entry: hours worked times this entry's own rate,
// rounded half-up to cents. Entries are priced independently because rates
// differ per entry.
func (e WorkEntry) Earnings() Money {
	return Money{Cents: (e.HoursWorked.Tenths*e.HourlyRate.Cents + 5) / 10}
}

// AggregateEarnings computes the earnings summary over entries whose work
// date falls inside window (the zero window keeps everything). It holds no
// state: callers re-run it over the refreshed collection after any mutation.
// An empty input yields the zero summary.
func AggregateEarnings(entries []WorkEntry, window DateRange) EarningsSummary {
	var sum EarningsSummary
	for _, e := range entries {
		if !window.Contains(e.WorkDate) {
			continue
		}
		earned := e.Earnings()
		sum.TotalHours = sum.TotalHours.Add(e.HoursWorked)
		sum.TotalEarnings = sum.TotalEarnings.Add(earned)
		if e.Paid {
			sum.PaidHours = sum.PaidHours.Add(e.HoursWorked)
			sum.PaidEarnings = sum.PaidEarnings.Add(earned)
		} else {
			sum.UnpaidHours = sum.UnpaidHours.Add(e.HoursWorked)
			sum.UnpaidEarnings = sum.UnpaidEarnings.Add(earned)
		}
	}
	return sum
}
