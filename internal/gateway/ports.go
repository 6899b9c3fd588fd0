package gateway

import (
	"context"
	"errors"
	"time"

	"fintrack/internal/core"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrUserExists     = errors.New("user already exists")
	ErrSessionExpired = errors.New("session expired")
)

// User is an account holder. PasswordHash is a bcrypt digest, never the
// plaintext.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Session is one issued bearer token.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// PendingRow identifies a row whose external mirror write is still owed.
type PendingRow struct {
	Entity  string
	ID      string
	UserID  string
	Version int64
}

// Ports for outbound persistence adapters. Every data operation is scoped to
// a single user's rows; a store must never return or touch another user's
// data for a given userID.
type (
	UserStore interface {
		CreateUser(ctx context.Context, username, passwordHash string) (User, error)
		GetUserByName(ctx context.Context, username string) (User, error)
	}

	SessionStore interface {
		CreateSession(ctx context.Context, s Session) error
		GetSession(ctx context.Context, token string) (Session, error)
		DeleteSession(ctx context.Context, token string) error
		DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
	}

	TimesheetStore interface {
		CreateWorkEntry(ctx context.Context, userID string, e core.WorkEntry) (core.WorkEntry, error)
		GetWorkEntry(ctx context.Context, userID, id string) (core.WorkEntry, error)
		// ListWorkEntries returns the user's entries inside window, most
		// recent work date first. The zero window returns everything.
		ListWorkEntries(ctx context.Context, userID string, window core.DateRange) ([]core.WorkEntry, error)
		UpdateWorkEntry(ctx context.Context, userID string, e core.WorkEntry) error
		DeleteWorkEntry(ctx context.Context, userID, id string) error
		// SetPaidBatch flips the paid flag on every listed entry in one
		// transaction; either all rows change or none do. PaidDate applies
		// when paid is true and is cleared otherwise.
		SetPaidBatch(ctx context.Context, userID string, ids []string, paid bool, paidDate core.Date) error
	}

	ExpenseStore interface {
		CreateExpense(ctx context.Context, userID string, e core.Expense) (core.Expense, error)
		GetExpense(ctx context.Context, userID, id string) (core.Expense, error)
		// ListExpenses returns the user's expenses inside window, most recent
		// timestamp first.
		ListExpenses(ctx context.Context, userID string, window core.DateRange) ([]core.Expense, error)
		UpdateExpense(ctx context.Context, userID string, e core.Expense) error
		DeleteExpense(ctx context.Context, userID, id string) error
	}

	AccountStore interface {
		CreateBankAccount(ctx context.Context, userID string, a core.BankAccount) (core.BankAccount, error)
		ListBankAccounts(ctx context.Context, userID string) ([]core.BankAccount, error)
		UpdateBankAccount(ctx context.Context, userID string, a core.BankAccount) error
		DeleteBankAccount(ctx context.Context, userID, id string) error
		// GetCashAccount returns the user's cash singleton, or ErrNotFound
		// when none has been set yet.
		GetCashAccount(ctx context.Context, userID string) (core.CashAccount, error)
		SetCashBalance(ctx context.Context, userID string, balance core.Money) error
	}

	DebtStore interface {
		CreateDebt(ctx context.Context, userID string, d core.Debt) (core.Debt, error)
		GetDebt(ctx context.Context, userID, id string) (core.Debt, error)
		ListDebts(ctx context.Context, userID string) ([]core.Debt, error)
		UpdateDebt(ctx context.Context, userID string, d core.Debt) error
		DeleteDebt(ctx context.Context, userID, id string) error
	}

	ProfileStore interface {
		GetProfile(ctx context.Context, userID string) (core.Profile, error)
		UpdateProfile(ctx context.Context, userID string, p core.Profile) error
	}

	// SyncStore tracks which rows still owe a write to the external mirror.
	SyncStore interface {
		ListPendingSync(ctx context.Context, limit int) ([]PendingRow, error)
		MarkSynced(ctx context.Context, entity, id string) error
		MarkSyncError(ctx context.Context, entity, id string) error
	}
)

// Store is the full persistence surface a backend must provide.
type Store interface {
	UserStore
	SessionStore
	TimesheetStore
	ExpenseStore
	AccountStore
	DebtStore
	ProfileStore
	SyncStore
}
