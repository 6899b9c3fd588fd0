package services

import (
	"context"

	"fintrack/internal/core"
)

// Dashboard is the one-screen overview: balances plus the selected month's
// earnings and spending.
type Dashboard struct {
	NetWorth    core.Money           `json:"net_worth"`
	TotalDebt   core.Money           `json:"total_debt"`
	Earnings    core.EarningsSummary `json:"earnings"`
	Spending    core.Money           `json:"spending"`
	NetSavings  core.Money           `json:"net_savings"`
	SavingsRate int                  `json:"savings_rate"`
	RecentDays  []core.DayGroup      `json:"recent_days"`
}

// MonthlyStats is the detailed per-month breakdown.
type MonthlyStats struct {
	Year        int                   `json:"year"`
	Month       int                   `json:"month"`
	Earnings    core.EarningsSummary  `json:"earnings"`
	Categories  []core.CategoryAmount `json:"categories"`
	Spending    core.Money            `json:"spending"`
	NetSavings  core.Money            `json:"net_savings"`
	SavingsRate int                   `json:"savings_rate"`
}

// StatsService re-runs the aggregators over freshly fetched rows on every
// call; nothing here is incremental or stateful.
type StatsService struct {
	timesheets *TimesheetService
	expenses   *ExpenseService
	accounts   *AccountService
}

func NewStatsService(timesheets *TimesheetService, expenses *ExpenseService, accounts *AccountService) *StatsService {
	return &StatsService{
		timesheets: timesheets,
		expenses:   expenses,
		accounts:   accounts,
	}
}

func (s *StatsService) Dashboard(ctx context.Context, userID string, year, month int) (Dashboard, error) {
	window := core.MonthRange(year, month)

	accounts, err := s.accounts.ListBankAccounts(ctx, userID)
	if err != nil {
		return Dashboard{}, err
	}
	cash, err := s.accounts.GetCash(ctx, userID)
	if err != nil {
		return Dashboard{}, err
	}
	totalDebt, err := s.accounts.TotalDebt(ctx, userID)
	if err != nil {
		return Dashboard{}, err
	}
	entries, err := s.timesheets.List(ctx, userID, window)
	if err != nil {
		return Dashboard{}, err
	}
	expenses, err := s.expenses.List(ctx, userID, window)
	if err != nil {
		return Dashboard{}, err
	}

	earnings := core.AggregateEarnings(entries, window)
	_, spending := core.CategoryTotals(expenses, window)
	net := core.NetSavings(earnings.TotalEarnings, spending)

	return Dashboard{
		NetWorth:    core.NetWorth(accounts, &cash),
		TotalDebt:   totalDebt,
		Earnings:    earnings,
		Spending:    spending,
		NetSavings:  net,
		SavingsRate: core.SavingsRate(net, earnings.TotalEarnings),
		RecentDays:  core.GroupByDay(expenses),
	}, nil
}

func (s *StatsService) Monthly(ctx context.Context, userID string, year, month int) (MonthlyStats, error) {
	window := core.MonthRange(year, month)

	entries, err := s.timesheets.List(ctx, userID, window)
	if err != nil {
		return MonthlyStats{}, err
	}
	expenses, err := s.expenses.List(ctx, userID, window)
	if err != nil {
		return MonthlyStats{}, err
	}

	earnings := core.AggregateEarnings(entries, window)
	categories, spending := core.SortedCategoryTotals(expenses, window)
	net := core.NetSavings(earnings.TotalEarnings, spending)

	return MonthlyStats{
		Year:        year,
		Month:       month,
		Earnings:    earnings,
		Categories:  categories,
		Spending:    spending,
		NetSavings:  net,
		SavingsRate: core.SavingsRate(net, earnings.TotalEarnings),
	}, nil
}
