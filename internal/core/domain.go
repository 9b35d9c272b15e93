package core

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the canonical wire and storage format for dates.
const DateLayout = "2006-01-02"

type (
	// Money is a monetary amount in integer cents. All ledger arithmetic
	// happens on cents so balances never accumulate float drift.
	Money struct {
		Cents int64
	}

	// Date is a calendar date. Time-of-day is always midnight UTC.
	Date struct {
		time.Time
	}

	// ExpenseRecord is one spending entry. ID is assigned by the ledger at
	// creation and never changes afterwards.
	ExpenseRecord struct {
		ID       string
		Title    string
		Amount   Money
		Category string
		Date     Date
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyTitle    = errors.New("empty title")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidDate   = errors.New("invalid date")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a canonical yyyy-mm-dd date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// String renders the canonical yyyy-mm-dd form.
func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks the caller-supplied fields. The ID is owned by the
// ledger and is deliberately not part of record validation.
func (e ExpenseRecord) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if len(e.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	return nil
}
