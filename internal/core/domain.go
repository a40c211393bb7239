package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// DateLayout is the canonical date form used everywhere: storage, wire, display.
const DateLayout = "2006-01-02"

// MonthKeyLayout identifies a year+month, e.g. "2024-06".
const MonthKeyLayout = "2006-01"

type (
	// Kind classifies a transaction as income or expense.
	Kind string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is an immutable ledger fact. Amount is always a positive
	// magnitude; the sign lives in Kind. Date is the canonical YYYY-MM-DD
	// string and is parsed at computation boundaries, so a malformed value
	// degrades per-computation instead of poisoning the whole ledger.
	Transaction struct {
		ID          int64
		Category    string
		Description string
		Amount      Money
		Kind        Kind
		Date        string
		TimeOfDay   string // display only, never aggregated
	}

	// Budget is a per-category spending plan for a single month.
	// AlertThreshold is a 0-100 percent of Amount; the absolute trip level
	// is derived at evaluation time, never stored.
	Budget struct {
		ID             int64
		Category       string
		Amount         Money
		Month          string // YYYY-MM
		AlertEnabled   bool
		AlertThreshold int64
	}

	// BudgetWithSpent is the derived budget view, recomputed on every read.
	// Remaining may go negative; clamping is a presentation concern.
	BudgetWithSpent struct {
		Budget
		Spent          Money
		Remaining      Money
		Exceeded       bool
		AlertTriggered bool
	}
)

var (
	ErrEmptyAmount        = errors.New("empty amount")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrNoCategorySelected = errors.New("no category selected")
	ErrEmptyDate          = errors.New("empty date")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrBudgetNotFound     = errors.New("budget not found")
)

// NewDate creates a Date from year, month, day at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses the canonical YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// MonthKey returns the YYYY-MM identifier of the date's month.
func (d Date) MonthKey() string {
	return d.Format(MonthKeyLayout)
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.AddDate(0, 0, n)}
}

// AddMonths returns the date shifted by n calendar months.
func (d Date) AddMonths(n int) Date {
	return Date{Time: d.AddDate(0, n, 0)}
}

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ParsedDate resolves the transaction's date. The ledger does not guarantee
// well-formed dates, so callers must treat an error as "exclude this record"
// unless a computation specifies otherwise.
func (t Transaction) ParsedDate() (Date, error) {
	return ParseDate(t.Date)
}

// Validate enforces the persistence invariant for budgets: a positive plan
// amount, a non-blank category and a well-formed month.
func (b Budget) Validate() error {
	if b.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(b.Category) == "" {
		return ErrInvalidCategory
	}
	if _, err := time.Parse(MonthKeyLayout, b.Month); err != nil {
		return ErrEmptyDate
	}
	if b.AlertThreshold < 0 || b.AlertThreshold > 100 {
		return fmt.Errorf("%w: alert threshold %d out of range", ErrInvalidAmount, b.AlertThreshold)
	}
	return nil
}

// TransactionInput is the raw user submission for a new transaction, before
// amount parsing. Kind is fixed by the entry flow (add-income vs add-expense).
type TransactionInput struct {
	Amount      string
	Category    string
	Description string
	Date        string
	TimeOfDay   string
	Kind        Kind
}

// Validate checks the submission and builds the Transaction to persist.
// Failures map one-to-one onto the user-visible validation errors.
func (in TransactionInput) Validate() (Transaction, error) {
	if strings.TrimSpace(in.Amount) == "" {
		return Transaction{}, ErrEmptyAmount
	}
	cents, err := ParseDecimalToCents(in.Amount)
	if err != nil {
		return Transaction{}, ErrInvalidAmount
	}
	if strings.TrimSpace(in.Category) == "" {
		return Transaction{}, ErrNoCategorySelected
	}
	if strings.TrimSpace(in.Date) == "" {
		return Transaction{}, ErrEmptyDate
	}
	d, err := ParseDate(in.Date)
	if err != nil {
		return Transaction{}, fmt.Errorf("%w: %v", ErrEmptyDate, err)
	}
	if !in.Kind.Valid() {
		return Transaction{}, fmt.Errorf("invalid kind %q", in.Kind)
	}
	return Transaction{
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		Amount:      Money{Cents: cents},
		Kind:        in.Kind,
		Date:        d.String(),
		TimeOfDay:   strings.TrimSpace(in.TimeOfDay),
	}, nil
}
