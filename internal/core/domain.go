package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const (
	CategoryRent          ExpenseCategory = "rent"
	CategoryUtilities     ExpenseCategory = "utilities"
	CategoryGrocery       ExpenseCategory = "grocery"
	CategoryFastFood      ExpenseCategory = "fast_food"
	CategoryTransport     ExpenseCategory = "transport"
	CategoryCreditCard    ExpenseCategory = "credit_card"
	CategoryEntertainment ExpenseCategory = "entertainment"
	CategoryHealthcare    ExpenseCategory = "healthcare"
	CategoryShopping      ExpenseCategory = "shopping"
	CategoryOther         ExpenseCategory = "other"
)

const (
	MethodCredit       PaymentMethod = "credit"
	MethodDebit        PaymentMethod = "debit"
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodOther        PaymentMethod = "other"
)

const (
	AccountChecking AccountType = "checking"
	AccountSavings  AccountType = "savings"
	AccountBoth     AccountType = "both"
)

const (
	DebtCreditCard   DebtType = "credit_card"
	DebtStudentLoan  DebtType = "student_loan"
	DebtPersonalLoan DebtType = "personal_loan"
	DebtMortgage     DebtType = "mortgage"
	DebtOther        DebtType = "other"
)

type (
	ExpenseCategory string
	PaymentMethod   string
	AccountType     string
	DebtType        string

	Date struct {
		time.Time
	}

	// DateRange is an inclusive calendar-date window. The zero value means
	// "no filtering"; a zero From or To leaves that side unbounded.
	DateRange struct {
		From Date
		To   Date
	}

	// WorkEntry is one logged timesheet record. TimeFrom/TimeTo are optional
	// HH:MM clock times; when both are present HoursWorked must match
	// ComputeHours over them. PaidDate is set exactly when Paid is true.
	WorkEntry struct {
		ID          string `json:"id"`
		JobName     string `json:"job_name"`
		HoursWorked Hours  `json:"hours_worked"`
		HourlyRate  Money  `json:"hourly_rate"`
		WorkDate    Date   `json:"work_date"`
		TimeFrom    string `json:"time_from,omitempty"`
		TimeTo      string `json:"time_to,omitempty"`
		Paid        bool   `json:"paid"`
		PaidDate    Date   `json:"paid_date"`
	}

	Expense struct {
		ID         string          `json:"id"`
		Name       string          `json:"name"`
		Category   ExpenseCategory `json:"category"`
		Amount     Money           `json:"amount"`
		OccurredAt time.Time       `json:"occurred_at"`
		Method     PaymentMethod   `json:"method"`
		Notes      string          `json:"notes,omitempty"`
	}

	BankAccount struct {
		ID      string      `json:"id"`
		Name    string      `json:"name"`
		Type    AccountType `json:"type"`
		Balance Money       `json:"balance"`
	}

	// CashAccount is a per-user singleton.
	CashAccount struct {
		Balance Money `json:"balance"`
	}

	Debt struct {
		ID     string   `json:"id"`
		Name   string   `json:"name"`
		Type   DebtType `json:"type"`
		Amount Money    `json:"amount"`
	}

	Profile struct {
		Name           string `json:"name"`
		CurrencySymbol string `json:"currency_symbol"`
		Theme          string `json:"theme"`
	}
)

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrEmptyName            = errors.New("empty name")
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidCategory      = errors.New("invalid expense category")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrInvalidDebtType      = errors.New("invalid debt type")
	ErrInvalidClockTime     = errors.New("invalid clock time")
	ErrInvalidTimeRange     = errors.New("invalid time range")
	ErrClockHoursMismatch   = errors.New("hours do not match clock times")
	ErrPaidDateMismatch     = errors.New("paid date inconsistent with paid flag")
	ErrNegativeHours        = errors.New("negative hours")
)

func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryRent, CategoryUtilities, CategoryGrocery, CategoryFastFood,
		CategoryTransport, CategoryCreditCard, CategoryEntertainment,
		CategoryHealthcare, CategoryShopping, CategoryOther:
		return true
	}
	return false
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCredit, MethodDebit, MethodCash, MethodBankTransfer, MethodOther:
		return true
	}
	return false
}

func (t AccountType) Valid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountBoth:
		return true
	}
	return false
}

func (t DebtType) Valid() bool {
	switch t {
	case DebtCreditCard, DebtStudentLoan, DebtPersonalLoan, DebtMortgage, DebtOther:
		return true
	}
	return false
}

func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	c := ExpenseCategory(strings.TrimSpace(s))
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.TrimSpace(s))
	if !m.Valid() {
		return "", ErrInvalidPaymentMethod
	}
	return m, nil
}

func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.TrimSpace(s))
	if !t.Valid() {
		return "", ErrInvalidAccountType
	}
	return t, nil
}

func ParseDebtType(s string) (DebtType, error) {
	t := DebtType(strings.TrimSpace(s))
	if !t.Valid() {
		return "", ErrInvalidDebtType
	}
	return t, nil
}

// NewDate creates a Date from year, month, day (UTC midnight).
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar-date component.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, int(m), d)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Weekday returns the full day-of-week label ("Monday").
func (d Date) Weekday() string {
	return d.Time.Weekday().String()
}

// ISO formats the date as yyyy-mm-dd.
func (d Date) ISO() string {
	return d.Time.Format("2006-01-02")
}

// MarshalJSON renders the date as "yyyy-mm-dd"; the zero date becomes "".
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.ISO() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ErrInvalidDate
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDate parses a yyyy-mm-dd string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// MonthRange returns the inclusive window covering one calendar month.
func MonthRange(year, month int) DateRange {
	first := NewDate(year, month, 1)
	last := Date{Time: first.AddDate(0, 1, -1)}
	return DateRange{From: first, To: last}
}

// Contains reports whether d falls inside the range. Zero bounds match
// everything on their side.
func (r DateRange) Contains(d Date) bool {
	if !r.From.IsZero() && d.Before(r.From.Time) {
		return false
	}
	if !r.To.IsZero() && d.After(r.To.Time) {
		return false
	}
	return true
}

func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// DayOfWeek is the label derived from the work date, stored alongside the
// entry the way the original rows carried it.
func (e WorkEntry) DayOfWeek() string {
	return e.WorkDate.Weekday()
}

func (e WorkEntry) Validate() error {
	if strings.TrimSpace(e.JobName) == "" {
		return ErrEmptyName
	}
	if err := e.WorkDate.Validate(); err != nil {
		return err
	}
	if e.HoursWorked.Tenths < 0 {
		return ErrNegativeHours
	}
	if e.HourlyRate.Cents < 0 {
		return ErrInvalidAmount
	}
	if e.TimeFrom != "" && e.TimeTo != "" {
		computed, err := ComputeHours(e.TimeFrom, e.TimeTo)
		if err != nil {
			return err
		}
		if computed != e.HoursWorked {
			return ErrClockHoursMismatch
		}
	}
	if e.Paid != !e.PaidDate.IsZero() {
		return ErrPaidDateMismatch
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if len(e.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if e.OccurredAt.IsZero() {
		return ErrInvalidDate
	}
	if !e.Method.Valid() {
		return ErrInvalidPaymentMethod
	}
	return nil
}

func (a BankAccount) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if !a.Type.Valid() {
		return ErrInvalidAccountType
	}
	// Balance may be negative (overdraft); no amount check.
	return nil
}

func (d Debt) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if !d.Type.Valid() {
		return ErrInvalidDebtType
	}
	if d.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}
