package services

import (
	"context"
	"errors"

	"fintrack/internal/core"
	"fintrack/internal/gateway"
)

// AccountService covers balances, debts, and the profile: the slow-moving
// records that frame the monthly numbers.
type AccountService struct {
	accounts gateway.AccountStore
	debts    gateway.DebtStore
	profiles gateway.ProfileStore
}

func NewAccountService(accounts gateway.AccountStore, debts gateway.DebtStore, profiles gateway.ProfileStore) *AccountService {
	return &AccountService{
		accounts: accounts,
		debts:    debts,
		profiles: profiles,
	}
}

func (s *AccountService) CreateBankAccount(ctx context.Context, userID string, a core.BankAccount) (core.BankAccount, error) {
	if err := a.Validate(); err != nil {
		return core.BankAccount{}, err
	}
	return s.accounts.CreateBankAccount(ctx, userID, a)
}

func (s *AccountService) ListBankAccounts(ctx context.Context, userID string) ([]core.BankAccount, error) {
	return s.accounts.ListBankAccounts(ctx, userID)
}

func (s *AccountService) UpdateBankAccount(ctx context.Context, userID string, a core.BankAccount) (core.BankAccount, error) {
	if err := a.Validate(); err != nil {
		return core.BankAccount{}, err
	}
	if err := s.accounts.UpdateBankAccount(ctx, userID, a); err != nil {
		return core.BankAccount{}, err
	}
	return a, nil
}

func (s *AccountService) DeleteBankAccount(ctx context.Context, userID, id string) error {
	return s.accounts.DeleteBankAccount(ctx, userID, id)
}

// GetCash returns the cash balance, treating a never-set balance as zero.
func (s *AccountService) GetCash(ctx context.Context, userID string) (core.CashAccount, error) {
	c, err := s.accounts.GetCashAccount(ctx, userID)
	if errors.Is(err, gateway.ErrNotFound) {
		return core.CashAccount{}, nil
	}
	return c, err
}

func (s *AccountService) SetCash(ctx context.Context, userID string, balance core.Money) error {
	return s.accounts.SetCashBalance(ctx, userID, balance)
}

func (s *AccountService) CreateDebt(ctx context.Context, userID string, d core.Debt) (core.Debt, error) {
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}
	return s.debts.CreateDebt(ctx, userID, d)
}

func (s *AccountService) ListDebts(ctx context.Context, userID string) ([]core.Debt, error) {
	return s.debts.ListDebts(ctx, userID)
}

func (s *AccountService) UpdateDebt(ctx context.Context, userID string, d core.Debt) (core.Debt, error) {
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}
	if err := s.debts.UpdateDebt(ctx, userID, d); err != nil {
		return core.Debt{}, err
	}
	return d, nil
}

func (s *AccountService) DeleteDebt(ctx context.Context, userID, id string) error {
	return s.debts.DeleteDebt(ctx, userID, id)
}

// AdjustDebt applies a signed payment or charge to a debt. The balance never
// drops below zero: overpaying closes the debt at exactly zero.
func (s *AccountService) AdjustDebt(ctx context.Context, userID, id string, delta core.Money) (core.Debt, error) {
	d, err := s.debts.GetDebt(ctx, userID, id)
	if err != nil {
		return core.Debt{}, err
	}

	d.Amount = d.Amount.Add(delta)
	if d.Amount.Cents < 0 {
		d.Amount = core.Money{}
	}

	if err := s.debts.UpdateDebt(ctx, userID, d); err != nil {
		return core.Debt{}, err
	}
	return d, nil
}

// TotalDebt sums the user's open debts.
func (s *AccountService) TotalDebt(ctx context.Context, userID string) (core.Money, error) {
	debts, err := s.debts.ListDebts(ctx, userID)
	if err != nil {
		return core.Money{}, err
	}
	var total core.Money
	for _, d := range debts {
		total = total.Add(d.Amount)
	}
	return total, nil
}

func (s *AccountService) GetProfile(ctx context.Context, userID string) (core.Profile, error) {
	p, err := s.profiles.GetProfile(ctx, userID)
	if errors.Is(err, gateway.ErrNotFound) {
		return core.Profile{CurrencySymbol: "$", Theme: "light"}, nil
	}
	return p, err
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID string, p core.Profile) error {
	if p.CurrencySymbol == "" {
		p.CurrencySymbol = "$"
	}
	if p.Theme == "" {
		p.Theme = "light"
	}
	return s.profiles.UpdateProfile(ctx, userID, p)
}
