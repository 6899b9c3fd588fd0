// Package memory holds an in-memory gateway.Store used for local runs and
// tests. Data lives for the lifetime of the process only.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/gateway"
)

type userData struct {
	entries  map[string]core.WorkEntry
	expenses map[string]core.Expense
	accounts map[string]core.BankAccount
	cash     *core.CashAccount
	debts    map[string]core.Debt
	profile  core.Profile
}

type Store struct {
	mu       sync.Mutex
	users    map[string]gateway.User // keyed by username
	sessions map[string]gateway.Session
	data     map[string]*userData // keyed by user ID
	pending  map[[2]string]gateway.PendingRow
}

var _ gateway.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:    make(map[string]gateway.User),
		sessions: make(map[string]gateway.Session),
		data:     make(map[string]*userData),
		pending:  make(map[[2]string]gateway.PendingRow),
	}
}

func (s *Store) forUser(userID string) *userData {
	d, ok := s.data[userID]
	if !ok {
		d = &userData{
			entries:  make(map[string]core.WorkEntry),
			expenses: make(map[string]core.Expense),
			accounts: make(map[string]core.BankAccount),
			debts:    make(map[string]core.Debt),
			profile:  core.Profile{CurrencySymbol: "$", Theme: "light"},
		}
		s.data[userID] = d
	}
	return d
}

func (s *Store) markPending(entity, id, userID string) {
	key := [2]string{entity, id}
	p := s.pending[key]
	s.pending[key] = gateway.PendingRow{Entity: entity, ID: id, UserID: userID, Version: p.Version + 1}
}

// --- users and sessions ---

func (s *Store) CreateUser(_ context.Context, username, passwordHash string) (gateway.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; ok {
		return gateway.User{}, gateway.ErrUserExists
	}
	u := gateway.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[username] = u
	d := s.forUser(u.ID)
	d.profile.Name = username
	d.cash = &core.CashAccount{}
	return u, nil
}

func (s *Store) GetUserByName(_ context.Context, username string) (gateway.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return gateway.User{}, gateway.ErrNotFound
	}
	return u, nil
}

func (s *Store) CreateSession(_ context.Context, sess gateway.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = sess
	return nil
}

func (s *Store) GetSession(_ context.Context, token string) (gateway.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return gateway.Session{}, gateway.ErrNotFound
	}
	return sess, nil
}

func (s *Store) DeleteSession(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *Store) DeleteExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for token, sess := range s.sessions {
		if sess.ExpiresAt.Before(now) {
			delete(s.sessions, token)
			n++
		}
	}
	return n, nil
}

// --- timesheets ---

func (s *Store) CreateWorkEntry(_ context.Context, userID string, e core.WorkEntry) (core.WorkEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	s.forUser(userID).entries[e.ID] = e
	s.markPending("timesheet", e.ID, userID)
	return e, nil
}

func (s *Store) GetWorkEntry(_ context.Context, userID, id string) (core.WorkEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.forUser(userID).entries[id]
	if !ok {
		return core.WorkEntry{}, gateway.ErrNotFound
	}
	return e, nil
}

func (s *Store) ListWorkEntries(_ context.Context, userID string, window core.DateRange) ([]core.WorkEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.WorkEntry
	for _, e := range s.forUser(userID).entries {
		if window.Contains(e.WorkDate) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WorkDate.After(out[j].WorkDate.Time)
	})
	return out, nil
}

func (s *Store) UpdateWorkEntry(_ context.Context, userID string, e core.WorkEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.forUser(userID)
	if _, ok := d.entries[e.ID]; !ok {
		return gateway.ErrNotFound
	}
	d.entries[e.ID] = e
	s.markPending("timesheet", e.ID, userID)
	return nil
}

func (s *Store) DeleteWorkEntry(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.forUser(userID)
	if _, ok := d.entries[id]; !ok {
		return gateway.ErrNotFound
	}
	delete(d.entries, id)
	delete(s.pending, [2]string{"timesheet", id})
	return nil
}

func (s *Store) SetPaidBatch(_ context.Context, userID string, ids []string, paid bool, paidDate core.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.forUser(userID)
	// Check every id before touching anything so the batch stays atomic.
	for _, id := range ids {
		if _, ok := d.entries[id]; !ok {
			return gateway.ErrNotFound
		}
	}
	for _, id := range ids {
		e := d.entries[id]
		e.Paid = paid
		if paid {
			e.PaidDate = paidDate
		} else {
			e.PaidDate = core.Date{}
		}
		d.entries[id] = e
		s.markPending("timesheet", id, userID)
	}
	return nil
}

// --- expenses ---

func (s *Store) CreateExpense(_ context.Context, userID string, e core.Expense) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	s.forUser(userID).expenses[e.ID] = e
	s.markPending("expense", e.ID, userID)
	return e, nil
}

func (s *Store) GetExpense(_ context.Context, userID, id string) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.forUser(userID).expenses[id]
	if !ok {
		return core.Expense{}, gateway.ErrNotFound
	}
	return e, nil
}

func (s *Store) ListExpenses(_ context.Context, userID string, window core.DateRange) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Expense
	for _, e := range s.forUser(userID).expenses {
		if window.Contains(core.DateOf(e.OccurredAt)) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})
	return out, nil
}

func (s *Store) UpdateExpense(_ context.Context, userID string, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.forUser(userID)
	if _, ok := d.expenses[e.ID]; !ok {
		return gateway.ErrNotFound
	}
	d.expenses[e.ID] = e
	s.markPending("expense", e.ID, userID)
	return nil
}

func (s *Store) DeleteExpense(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.forUser(userID)
	if _, ok := d.expenses[id]; !ok {
		return gateway.ErrNotFound
	}
	delete(d.expenses, id)
	delete(s.pending, [2]string{"expense", id})
	return nil
}

// --- accounts ---

func (s *Store) CreateBankAccount(_ context.Context, userID string, a core.BankAccount) (core.BankAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.forUser(userID).accounts[a.ID] = a
	return a, nil
}

func (s *Store) ListBankAccounts(_ context.Context, userID string) ([]core.BankAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.forUser(userID)
	out := make([]core.BankAccount, 0, len(d.accounts))
	for _, a := range d.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpdateBankAccount(_ context.Context, userID string, a core.BankAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.forUser(userID)
	if _, ok := d.accounts[a.ID]; !ok {
		return gateway.ErrNotFound
	}
	d.accounts[a.ID] = a
	return nil
}

func (s *Store) DeleteBankAccount(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.forUser(userID)
	if _, ok := d.accounts[id]; !ok {
		return gateway.ErrNotFound
	}
	delete(d.accounts, id)
	return nil
}

func (s *Store) GetCashAccount(_ context.Context, userID string) (core.CashAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.forUser(userID)
	if d.cash == nil {
		return core.CashAccount{}, gateway.ErrNotFound
	}
	return *d.cash, nil
}

func (s *Store) SetCashBalance(_ context.Context, userID string, balance core.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forUser(userID).cash = &core.CashAccount{Balance: balance}
	return nil
}

// --- debts ---

func (s *Store) CreateDebt(_ context.Context, userID string, d core.Debt) (core.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	s.forUser(userID).debts[d.ID] = d
	return d, nil
}

func (s *Store) GetDebt(_ context.Context, userID, id string) (core.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.forUser(userID).debts[id]
	if !ok {
		return core.Debt{}, gateway.ErrNotFound
	}
	return d, nil
}

func (s *Store) ListDebts(_ context.Context, userID string) ([]core.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ud := s.forUser(userID)
	out := make([]core.Debt, 0, len(ud.debts))
	for _, d := range ud.debts {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpdateDebt(_ context.Context, userID string, d core.Debt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ud := s.forUser(userID)
	if _, ok := ud.debts[d.ID]; !ok {
		return gateway.ErrNotFound
	}
	ud.debts[d.ID] = d
	return nil
}

func (s *Store) DeleteDebt(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ud := s.forUser(userID)
	if _, ok := ud.debts[id]; !ok {
		return gateway.ErrNotFound
	}
	delete(ud.debts, id)
	return nil
}

// --- profile ---

func (s *Store) GetProfile(_ context.Context, userID string) (core.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.forUser(userID).profile, nil
}

func (s *Store) UpdateProfile(_ context.Context, userID string, p core.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forUser(userID).profile = p
	return nil
}

// --- mirror sync bookkeeping ---

func (s *Store) ListPendingSync(_ context.Context, limit int) ([]gateway.PendingRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]gateway.PendingRow, 0, len(s.pending))
	for _, p := range s.pending {
		if len(out) == limit {
			break
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) MarkSynced(_ context.Context, entity, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, [2]string{entity, id})
	return nil
}

func (s *Store) MarkSyncError(_ context.Context, entity, id string) error {
	// Kept pending so the next catch-up pass retries it.
	return nil
}
