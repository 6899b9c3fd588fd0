package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/gateway"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements gateway.Store on a single SQLite database.
// Timestamps are stored as RFC 3339 text and calendar dates as yyyy-mm-dd
// text so date comparisons work as plain string comparisons in SQL.
type SQLiteRepository struct {
	db *sql.DB
}

var _ gateway.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dbPath != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// --- users and sessions ---

func (r *SQLiteRepository) CreateUser(ctx context.Context, username, passwordHash string) (gateway.User, error) {
	u := gateway.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash, u.CreatedAt.Format(time.RFC3339))
	if err != nil {
		if isUniqueViolation(err) {
			return gateway.User{}, gateway.ErrUserExists
		}
		return gateway.User{}, fmt.Errorf("create user: %w", err)
	}

	// A fresh user starts with default profile and cash rows so reads never
	// have to special-case their absence.
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, display_name) VALUES (?, ?)`, u.ID, username); err != nil {
		return gateway.User{}, fmt.Errorf("create profile: %w", err)
	}
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO cash_accounts (user_id, balance_cents) VALUES (?, 0)`, u.ID); err != nil {
		return gateway.User{}, fmt.Errorf("create cash account: %w", err)
	}

	slog.InfoContext(ctx, "User created", "user_id", u.ID, "username", username)
	return u, nil
}

func (r *SQLiteRepository) GetUserByName(ctx context.Context, username string) (gateway.User, error) {
	var u gateway.User
	var created string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`,
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return gateway.User{}, gateway.ErrNotFound
	}
	if err != nil {
		return gateway.User{}, fmt.Errorf("get user: %w", err)
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return u, nil
}

func (r *SQLiteRepository) CreateSession(ctx context.Context, s gateway.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)`,
		s.Token, s.UserID, s.ExpiresAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetSession(ctx context.Context, token string) (gateway.Session, error) {
	var s gateway.Session
	var expires string
	err := r.db.QueryRowContext(ctx,
		`SELECT token, user_id, expires_at FROM sessions WHERE token = ?`,
		token).Scan(&s.Token, &s.UserID, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return gateway.Session{}, gateway.ErrNotFound
	}
	if err != nil {
		return gateway.Session{}, fmt.Errorf("get session: %w", err)
	}
	s.ExpiresAt, err = time.Parse(time.RFC3339, expires)
	if err != nil {
		return gateway.Session{}, fmt.Errorf("parse session expiry: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) DeleteSession(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, now.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// --- timesheets ---

func (r *SQLiteRepository) CreateWorkEntry(ctx context.Context, userID string, e core.WorkEntry) (core.WorkEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO timesheets
		   (id, user_id, job_name, hours_tenths, rate_cents, work_date, day_of_week,
		    time_from, time_to, is_paid, paid_date, sync_status, version)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'pending', 1)`,
		e.ID, userID, e.JobName, e.HoursWorked.Tenths, e.HourlyRate.Cents,
		e.WorkDate.ISO(), e.DayOfWeek(), e.TimeFrom, e.TimeTo,
		boolToInt(e.Paid), dateToCol(e.PaidDate))
	if err != nil {
		return core.WorkEntry{}, fmt.Errorf("create work entry: %w", err)
	}

	slog.InfoContext(ctx, "Work entry saved",
		"id", e.ID,
		"job", e.JobName,
		"hours_tenths", e.HoursWorked.Tenths,
		"work_date", e.WorkDate.ISO())
	return e, nil
}

func (r *SQLiteRepository) GetWorkEntry(ctx context.Context, userID, id string) (core.WorkEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, job_name, hours_tenths, rate_cents, work_date, time_from, time_to, is_paid, paid_date
		   FROM timesheets WHERE user_id = ? AND id = ?`, userID, id)
	e, err := scanWorkEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.WorkEntry{}, gateway.ErrNotFound
	}
	if err != nil {
		return core.WorkEntry{}, fmt.Errorf("get work entry: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) ListWorkEntries(ctx context.Context, userID string, window core.DateRange) ([]core.WorkEntry, error) {
	q := `SELECT id, job_name, hours_tenths, rate_cents, work_date, time_from, time_to, is_paid, paid_date
	        FROM timesheets WHERE user_id = ?`
	args := []any{userID}
	if !window.From.IsZero() {
		q += ` AND work_date >= ?`
		args = append(args, window.From.ISO())
	}
	if !window.To.IsZero() {
		q += ` AND work_date <= ?`
		args = append(args, window.To.ISO())
	}
	q += ` ORDER BY work_date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list work entries: %w", err)
	}
	defer rows.Close()

	var out []core.WorkEntry
	for rows.Next() {
		e, err := scanWorkEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan work entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateWorkEntry(ctx context.Context, userID string, e core.WorkEntry) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE timesheets
		    SET job_name = ?, hours_tenths = ?, rate_cents = ?, work_date = ?, day_of_week = ?,
		        time_from = ?, time_to = ?, is_paid = ?, paid_date = ?,
		        sync_status = 'pending', version = version + 1
		  WHERE user_id = ? AND id = ?`,
		e.JobName, e.HoursWorked.Tenths, e.HourlyRate.Cents, e.WorkDate.ISO(), e.DayOfWeek(),
		e.TimeFrom, e.TimeTo, boolToInt(e.Paid), dateToCol(e.PaidDate),
		userID, e.ID)
	if err != nil {
		return fmt.Errorf("update work entry: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteWorkEntry(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM timesheets WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete work entry: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) SetPaidBatch(ctx context.Context, userID string, ids []string, paid bool, paidDate core.Date) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin paid batch: %w", err)
	}
	defer tx.Rollback()

	col := ""
	if paid {
		col = dateToCol(paidDate)
	}
	for _, id := range ids {
		res, err := tx.ExecContext(ctx,
			`UPDATE timesheets
			    SET is_paid = ?, paid_date = ?, sync_status = 'pending', version = version + 1
			  WHERE user_id = ? AND id = ?`,
			boolToInt(paid), col, userID, id)
		if err != nil {
			return fmt.Errorf("set paid %s: %w", id, err)
		}
		if err := requireRow(res); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit paid batch: %w", err)
	}

	slog.InfoContext(ctx, "Paid flag updated", "count", len(ids), "paid", paid)
	return nil
}

// --- expenses ---

func (r *SQLiteRepository) CreateExpense(ctx context.Context, userID string, e core.Expense) (core.Expense, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses
		   (id, user_id, expense_name, category, amount_cents, occurred_at, payment_method, notes, sync_status, version)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 'pending', 1)`,
		e.ID, userID, e.Name, string(e.Category), e.Amount.Cents,
		e.OccurredAt.UTC().Format(time.RFC3339), string(e.Method), e.Notes)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", e.ID,
		"name", e.Name,
		"amount_cents", e.Amount.Cents,
		"category", e.Category)
	return e, nil
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, userID, id string) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, expense_name, category, amount_cents, occurred_at, payment_method, notes
		   FROM expenses WHERE user_id = ? AND id = ?`, userID, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, gateway.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context, userID string, window core.DateRange) ([]core.Expense, error) {
	// occurred_at is RFC 3339 text, so its first ten characters are the
	// calendar date and compare correctly against yyyy-mm-dd bounds.
	q := `SELECT id, expense_name, category, amount_cents, occurred_at, payment_method, notes
	        FROM expenses WHERE user_id = ?`
	args := []any{userID}
	if !window.From.IsZero() {
		q += ` AND substr(occurred_at, 1, 10) >= ?`
		args = append(args, window.From.ISO())
	}
	if !window.To.IsZero() {
		q += ` AND substr(occurred_at, 1, 10) <= ?`
		args = append(args, window.To.ISO())
	}
	q += ` ORDER BY occurred_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateExpense(ctx context.Context, userID string, e core.Expense) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses
		    SET expense_name = ?, category = ?, amount_cents = ?, occurred_at = ?,
		        payment_method = ?, notes = ?, sync_status = 'pending', version = version + 1
		  WHERE user_id = ? AND id = ?`,
		e.Name, string(e.Category), e.Amount.Cents, e.OccurredAt.UTC().Format(time.RFC3339),
		string(e.Method), e.Notes, userID, e.ID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return requireRow(res)
}

// --- accounts ---

func (r *SQLiteRepository) CreateBankAccount(ctx context.Context, userID string, a core.BankAccount) (core.BankAccount, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bank_accounts (id, user_id, account_name, account_type, balance_cents)
		 VALUES (?, ?, ?, ?, ?)`,
		a.ID, userID, a.Name, string(a.Type), a.Balance.Cents)
	if err != nil {
		return core.BankAccount{}, fmt.Errorf("create bank account: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepository) ListBankAccounts(ctx context.Context, userID string) ([]core.BankAccount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, account_name, account_type, balance_cents
		   FROM bank_accounts WHERE user_id = ? ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	defer rows.Close()

	var out []core.BankAccount
	for rows.Next() {
		var a core.BankAccount
		var typ string
		if err := rows.Scan(&a.ID, &a.Name, &typ, &a.Balance.Cents); err != nil {
			return nil, fmt.Errorf("scan bank account: %w", err)
		}
		a.Type = core.AccountType(typ)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateBankAccount(ctx context.Context, userID string, a core.BankAccount) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bank_accounts SET account_name = ?, account_type = ?, balance_cents = ?
		  WHERE user_id = ? AND id = ?`,
		a.Name, string(a.Type), a.Balance.Cents, userID, a.ID)
	if err != nil {
		return fmt.Errorf("update bank account: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteBankAccount(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM bank_accounts WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete bank account: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) GetCashAccount(ctx context.Context, userID string) (core.CashAccount, error) {
	var c core.CashAccount
	err := r.db.QueryRowContext(ctx,
		`SELECT balance_cents FROM cash_accounts WHERE user_id = ?`, userID).Scan(&c.Balance.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.CashAccount{}, gateway.ErrNotFound
	}
	if err != nil {
		return core.CashAccount{}, fmt.Errorf("get cash account: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) SetCashBalance(ctx context.Context, userID string, balance core.Money) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cash_accounts (user_id, balance_cents) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET balance_cents = excluded.balance_cents`,
		userID, balance.Cents)
	if err != nil {
		return fmt.Errorf("set cash balance: %w", err)
	}
	return nil
}

// --- debts ---

func (r *SQLiteRepository) CreateDebt(ctx context.Context, userID string, d core.Debt) (core.Debt, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO debts (id, user_id, debt_name, debt_type, amount_cents)
		 VALUES (?, ?, ?, ?, ?)`,
		d.ID, userID, d.Name, string(d.Type), d.Amount.Cents)
	if err != nil {
		return core.Debt{}, fmt.Errorf("create debt: %w", err)
	}
	return d, nil
}

func (r *SQLiteRepository) GetDebt(ctx context.Context, userID, id string) (core.Debt, error) {
	var d core.Debt
	var typ string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, debt_name, debt_type, amount_cents FROM debts WHERE user_id = ? AND id = ?`,
		userID, id).Scan(&d.ID, &d.Name, &typ, &d.Amount.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Debt{}, gateway.ErrNotFound
	}
	if err != nil {
		return core.Debt{}, fmt.Errorf("get debt: %w", err)
	}
	d.Type = core.DebtType(typ)
	return d, nil
}

func (r *SQLiteRepository) ListDebts(ctx context.Context, userID string) ([]core.Debt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, debt_name, debt_type, amount_cents FROM debts WHERE user_id = ? ORDER BY created_at`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()

	var out []core.Debt
	for rows.Next() {
		var d core.Debt
		var typ string
		if err := rows.Scan(&d.ID, &d.Name, &typ, &d.Amount.Cents); err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		d.Type = core.DebtType(typ)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateDebt(ctx context.Context, userID string, d core.Debt) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE debts SET debt_name = ?, debt_type = ?, amount_cents = ?
		  WHERE user_id = ? AND id = ?`,
		d.Name, string(d.Type), d.Amount.Cents, userID, d.ID)
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteDebt(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM debts WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	return requireRow(res)
}

// --- profile ---

func (r *SQLiteRepository) GetProfile(ctx context.Context, userID string) (core.Profile, error) {
	var p core.Profile
	err := r.db.QueryRowContext(ctx,
		`SELECT display_name, currency_symbol, theme FROM profiles WHERE user_id = ?`,
		userID).Scan(&p.Name, &p.CurrencySymbol, &p.Theme)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Profile{}, gateway.ErrNotFound
	}
	if err != nil {
		return core.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) UpdateProfile(ctx context.Context, userID string, p core.Profile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, display_name, currency_symbol, theme) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE
		    SET display_name = excluded.display_name,
		        currency_symbol = excluded.currency_symbol,
		        theme = excluded.theme`,
		userID, p.Name, p.CurrencySymbol, p.Theme)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// --- mirror sync bookkeeping ---

func (r *SQLiteRepository) ListPendingSync(ctx context.Context, limit int) ([]gateway.PendingRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT 'expense', id, user_id, version FROM expenses WHERE sync_status = 'pending'
		 UNION ALL
		 SELECT 'timesheet', id, user_id, version FROM timesheets WHERE sync_status = 'pending'
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending sync: %w", err)
	}
	defer rows.Close()

	var out []gateway.PendingRow
	for rows.Next() {
		var p gateway.PendingRow
		if err := rows.Scan(&p.Entity, &p.ID, &p.UserID, &p.Version); err != nil {
			return nil, fmt.Errorf("scan pending row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, entity, id string) error {
	return r.setSyncStatus(ctx, entity, id, "synced")
}

func (r *SQLiteRepository) MarkSyncError(ctx context.Context, entity, id string) error {
	return r.setSyncStatus(ctx, entity, id, "error")
}

func (r *SQLiteRepository) setSyncStatus(ctx context.Context, entity, id, status string) error {
	table, err := syncTable(entity)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE `+table+` SET sync_status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("set sync status: %w", err)
	}
	return nil
}

func syncTable(entity string) (string, error) {
	switch entity {
	case "expense":
		return "expenses", nil
	case "timesheet":
		return "timesheets", nil
	}
	return "", fmt.Errorf("unknown sync entity: %s", entity)
}

// --- helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkEntry(row rowScanner) (core.WorkEntry, error) {
	var e core.WorkEntry
	var workDate, paidDate string
	var paid int
	err := row.Scan(&e.ID, &e.JobName, &e.HoursWorked.Tenths, &e.HourlyRate.Cents,
		&workDate, &e.TimeFrom, &e.TimeTo, &paid, &paidDate)
	if err != nil {
		return core.WorkEntry{}, err
	}
	e.Paid = paid != 0
	if e.WorkDate, err = core.ParseDate(workDate); err != nil {
		return core.WorkEntry{}, fmt.Errorf("parse work date %q: %w", workDate, err)
	}
	if paidDate != "" {
		if e.PaidDate, err = core.ParseDate(paidDate); err != nil {
			return core.WorkEntry{}, fmt.Errorf("parse paid date %q: %w", paidDate, err)
		}
	}
	return e, nil
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var e core.Expense
	var cat, method, occurred string
	err := row.Scan(&e.ID, &e.Name, &cat, &e.Amount.Cents, &occurred, &method, &e.Notes)
	if err != nil {
		return core.Expense{}, err
	}
	e.Category = core.ExpenseCategory(cat)
	e.Method = core.PaymentMethod(method)
	if e.OccurredAt, err = time.Parse(time.RFC3339, occurred); err != nil {
		return core.Expense{}, fmt.Errorf("parse occurred_at %q: %w", occurred, err)
	}
	return e, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return gateway.ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func dateToCol(d core.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.ISO()
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}
