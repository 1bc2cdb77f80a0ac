package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget represents a spending limit for one category over a bounded
// date window.
//
// The consumed amount is always derived from the transaction set. It is
// deliberately never persisted so that it can not go stale.
type Budget struct {
	DefaultModel
	UserID      string          `json:"userId" gorm:"index" example:"b5f29991-4bd9-4779-9b27-50e14d4f56a1"` // ID of the user owning the budget
	CategoryID  uint64          `json:"categoryId" example:"3"`                                             // ID of the category the budget limits
	Category    Category        `json:"-"`
	Name        string          `json:"name" example:"Groceries June" default:""` // Name of the budget
	Note        string          `json:"note" example:"" default:""`               // Notes about the budget
	LimitAmount decimal.Decimal `json:"limitAmount" gorm:"type:DECIMAL(20,2)" example:"500"`
	StartDate   time.Time       `json:"startDate" example:"2024-06-01T00:00:00Z"` // First day counting towards the budget
	EndDate     time.Time       `json:"endDate" example:"2024-06-30T00:00:00Z"`   // Last day counting towards the budget, inclusive
	Active      bool            `json:"active" example:"true" default:"true"`     // Only active budgets are evaluated for alerts
}

// Breakdown holds the derived consumption figures for a budget.
type Breakdown struct {
	Spent          decimal.Decimal `json:"spent" example:"380"`         // Sum of all expenses in the budget window
	Remaining      decimal.Decimal `json:"remaining" example:"120"`     // Limit minus spent, negative when overspent
	PercentageUsed decimal.Decimal `json:"percentageUsed" example:"76"` // Spent in percent of the limit, 0 for a zero limit
}

// BeforeSave
//   - trims whitespace from string fields
//   - sets the timezone for the dates to UTC
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Note = strings.TrimSpace(b.Note)

	b.StartDate = b.StartDate.In(time.UTC)
	b.EndDate = b.EndDate.In(time.UTC)

	return nil
}

// AfterSave validates the limit and the date window. This runs after
// the write so that on updates, the check sees the merged resource. An
// error rolls the write back.
func (b *Budget) AfterSave(_ *gorm.DB) error {
	if !b.LimitAmount.IsPositive() {
		return ErrLimitNotPositive
	}

	if b.EndDate.Before(b.StartDate) {
		return ErrBudgetPeriodInvalid
	}

	return nil
}

// Spent returns the current consumption of the budget.
//
// It is the sum of all expense transactions of the budget's user and
// category with a date inside the budget window, both endpoints
// inclusive. The sum is recomputed from the transaction set on every
// call, there is no cached value that could go stale.
func (b Budget) Spent(db *gorm.DB) (decimal.Decimal, error) {
	var spent decimal.NullDecimal

	err := db.
		Table("transactions").
		Select("SUM(amount)").
		Where("user_id = ?", b.UserID).
		Where("category_id = ?", b.CategoryID).
		Where("kind = ?", KindExpense).
		Where("date(transactions.date) >= date(?)", b.StartDate).
		Where("date(transactions.date) <= date(?)", b.EndDate).
		Find(&spent).
		Error
	if err != nil {
		return decimal.Zero, err
	}

	// If no transactions are found, the value is nil
	if !spent.Valid {
		return decimal.Zero, nil
	}

	return spent.Decimal, nil
}

// Breakdown computes all derived values for the budget.
func (b Budget) Breakdown(db *gorm.DB) (Breakdown, error) {
	spent, err := b.Spent(db)
	if err != nil {
		return Breakdown{}, err
	}

	return NewBreakdown(spent, b.LimitAmount), nil
}

// NewBreakdown computes the derived figures from a consumption snapshot.
// A non-positive limit yields a percentage of 0, it is not an error.
func NewBreakdown(spent, limit decimal.Decimal) Breakdown {
	percentage := decimal.Zero
	if limit.IsPositive() {
		percentage = spent.Div(limit).Mul(decimal.NewFromInt(100))
	}

	return Breakdown{
		Spent:          spent,
		Remaining:      limit.Sub(spent),
		PercentageUsed: percentage,
	}
}
