package core

import (
	"errors"
	"strings"
	"time"
)

const (
	StatusActive  DebtStatus = "active"
	StatusPaidOff DebtStatus = "paid_off"
	StatusPaused  DebtStatus = "paused"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	DebtStatus      string
	TransactionType string
	Category        string

	Money struct {
		Satang int64
	}

	// Debt is a single tracked obligation. RemainingAmount never exceeds
	// TotalAmount; payments are applied by the service layer, never here.
	Debt struct {
		ID              int64      `json:"id"`
		UserID          string     `json:"-"`
		Name            string     `json:"name"`
		Lender          string     `json:"lender,omitempty"`
		TotalAmount     Money      `json:"totalAmount"`
		RemainingAmount Money      `json:"remainingAmount"`
		InterestRate    float64    `json:"interestRate"` // percent, >= 0
		MinimumPayment  Money      `json:"minimumPayment"`
		DueDateDay      int        `json:"dueDateDay,omitempty"` // day of month 1-31, 0 = no schedule
		Status          DebtStatus `json:"status"`
		CreatedAt       time.Time  `json:"createdAt"`
	}

	Transaction struct {
		ID        int64           `json:"id"`
		UserID    string          `json:"-"`
		Type      TransactionType `json:"type"`
		Category  Category        `json:"category"`
		Amount    Money           `json:"amount"`
		Note      string          `json:"note,omitempty"`
		Date      time.Time       `json:"date"`
		DebtID    int64           `json:"debtId,omitempty"` // optional link to a debt, 0 = none
		CreatedAt time.Time       `json:"createdAt"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDueDay    = errors.New("invalid due date day")
	ErrInvalidStatus    = errors.New("invalid debt status")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidDate      = errors.New("invalid transaction date")
	ErrEmptyName        = errors.New("empty debt name")
	ErrEmptyCategory    = errors.New("empty category")
	ErrRemainingTooHigh = errors.New("remaining amount exceeds total amount")
)

func (s DebtStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPaidOff, StatusPaused:
		return true
	}
	return false
}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// HasSchedule reports whether the debt carries a recurring due day.
// Schedule-dependent computations must be skipped when this is false.
func (d Debt) HasSchedule() bool {
	return d.DueDateDay >= 1 && d.DueDateDay <= 31
}

func (d Debt) Validate() error {
	if len(strings.TrimSpace(d.Name)) == 0 {
		return ErrEmptyName
	}
	if len(d.Name) > 200 {
		return errors.New("debt name too long (max 200 characters)")
	}
	if d.TotalAmount.Satang <= 0 {
		return ErrInvalidAmount
	}
	if d.RemainingAmount.Satang < 0 {
		return ErrInvalidAmount
	}
	if d.RemainingAmount.Satang > d.TotalAmount.Satang {
		return ErrRemainingTooHigh
	}
	if d.InterestRate < 0 {
		return errors.New("negative interest rate")
	}
	if d.MinimumPayment.Satang < 0 {
		return ErrInvalidAmount
	}
	if d.DueDateDay != 0 && (d.DueDateDay < 1 || d.DueDateDay > 31) {
		return ErrInvalidDueDay
	}
	if !d.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(string(t.Category)) == "" {
		return ErrEmptyCategory
	}
	if t.Amount.Satang <= 0 {
		return ErrInvalidAmount
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if len(t.Note) > 500 {
		return errors.New("note too long (max 500 characters)")
	}
	return nil
}
