package aggregation

import (
	"github.com/shopspring/decimal"
	"github.com/smartspend/backend/internal/models"
	"github.com/smartspend/backend/internal/types"
)

// TrendPoint is the aggregated result for one calendar month.
type TrendPoint struct {
	Month    types.Month     `json:"month" example:"2024-06-01T00:00:00Z"`
	Expenses decimal.Decimal `json:"expenses" example:"1337.42"` // Sum of all expenses in the month
	Income   decimal.Decimal `json:"income" example:"2100"`      // Sum of all income in the month
	Net      decimal.Decimal `json:"net" example:"762.58"`       // Income minus expenses
}

// MonthlyTrend rolls the transactions into a month-over-month series
// for the trailing window of the given length, ending with and
// including the end month.
//
// The series always contains exactly one point per month in the
// window, oldest first. Months without transactions are emitted with
// zero totals so that trend charts have no gaps. Transactions outside
// the window are ignored.
func MonthlyTrend(transactions []models.Transaction, end types.Month, months int) []TrendPoint {
	if months < 1 {
		return []TrendPoint{}
	}

	points := make([]TrendPoint, months)
	index := make(map[string]int, months)

	for i := 0; i < months; i++ {
		month := end.AddDate(0, i-months+1)
		points[i] = TrendPoint{Month: month}
		index[month.String()] = i
	}

	for _, transaction := range transactions {
		i, ok := index[types.MonthOf(transaction.Date).String()]
		if !ok {
			continue
		}

		switch transaction.Kind {
		case models.KindExpense:
			points[i].Expenses = points[i].Expenses.Add(transaction.Amount)
		case models.KindIncome:
			points[i].Income = points[i].Income.Add(transaction.Amount)
		}
	}

	for i := range points {
		points[i].Net = points[i].Income.Sub(points[i].Expenses)
	}

	return points
}
