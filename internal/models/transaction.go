package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionKind determines whether a transaction is money
// leaving or entering the user's pocket.
type TransactionKind string

const (
	KindExpense TransactionKind = "expense"
	KindIncome  TransactionKind = "income"
)

// Transaction represents a single expense or income record of a user.
type Transaction struct {
	DefaultModel
	UserID     string          `json:"userId" gorm:"index" example:"b5f29991-4bd9-4779-9b27-50e14d4f56a1"` // ID of the user owning the transaction
	CategoryID uint64          `json:"categoryId" example:"3"`                                             // ID of the category
	Category   Category        `json:"-"`
	Title      string          `json:"title" example:"Weekly groceries" default:""` // Short description
	Note       string          `json:"note" example:"" default:""`                  // Notes about the transaction
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,2)" example:"54.99"`
	Date       time.Time       `json:"date" example:"2024-06-14T00:00:00Z"` // Day the transaction occurred. Time of day is only used for sorting.
	Kind       TransactionKind `json:"kind" example:"expense"`
}

// BeforeSave
//   - sets the timezone for the Date to UTC
//   - trims whitespace from string fields
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Title = strings.TrimSpace(t.Title)
	t.Note = strings.TrimSpace(t.Note)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

// AfterSave validates the amount and kind. This runs after the write
// so that on updates, the check sees the merged resource. An error
// rolls the write back.
func (t *Transaction) AfterSave(_ *gorm.DB) error {
	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if t.Kind != KindExpense && t.Kind != KindIncome {
		return ErrInvalidKind
	}

	return nil
}

// AfterFind enforces dates to be in UTC.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}
