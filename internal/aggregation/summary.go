// Package aggregation implements the grouping and summation primitives
// for dashboards, reports and budget evaluation.
//
// All functions are pure computations over transaction slices, they do
// not touch the database.
package aggregation

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/smartspend/backend/internal/models"
	"github.com/smartspend/backend/internal/types"
)

// Summary is one aggregated group of transactions.
type Summary struct {
	Label      string          `json:"label" example:"Groceries"` // Name of the group
	Color      string          `json:"color" example:"#22c55e"`   // Color tag of the group, empty for month groups
	Total      decimal.Decimal `json:"total" example:"380"`       // Sum of all amounts in the group
	Count      int             `json:"count" example:"5"`         // Number of transactions in the group
	Percentage decimal.Decimal `json:"percentage" example:"42.2"` // Share of the group in the summarized set, in percent
}

type bucket struct {
	label string
	color string
	total decimal.Decimal
	count int
}

// ByCategory groups the transactions by their category and returns one
// summary per category, ordered by descending total.
//
// The percentage of each summary is computed against the total of the
// summarized set itself, not against any global figure. An empty set
// yields an empty slice.
func ByCategory(transactions []models.Transaction, categories []models.Category) []Summary {
	names := make(map[uint64]models.Category, len(categories))
	for _, category := range categories {
		names[category.ID] = category
	}

	return summarize(transactions, func(t models.Transaction) (string, string) {
		if category, ok := names[t.CategoryID]; ok {
			return category.Name, category.Color
		}

		// Transactions can reference categories the caller did not
		// resolve. They still form a group.
		return fmt.Sprintf("Category %d", t.CategoryID), ""
	})
}

// ByMonth groups the transactions by the calendar month of their date,
// ordered by descending total. The contract is the same as for
// ByCategory.
func ByMonth(transactions []models.Transaction) []Summary {
	return summarize(transactions, func(t models.Transaction) (string, string) {
		return types.MonthOf(t.Date).String(), ""
	})
}

// summarize groups the transactions by the key function.
//
// Groups are collected in input order and sorted with a stable sort so
// that groups with equal totals keep a deterministic order for the
// same input.
func summarize(transactions []models.Transaction, key func(models.Transaction) (string, string)) []Summary {
	index := make(map[string]int)
	buckets := make([]bucket, 0)

	grandTotal := decimal.Zero

	for _, transaction := range transactions {
		label, color := key(transaction)

		i, ok := index[label]
		if !ok {
			i = len(buckets)
			index[label] = i
			buckets = append(buckets, bucket{label: label, color: color})
		}

		buckets[i].total = buckets[i].total.Add(transaction.Amount)
		buckets[i].count++
		grandTotal = grandTotal.Add(transaction.Amount)
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].total.GreaterThan(buckets[j].total)
	})

	summaries := make([]Summary, 0, len(buckets))
	for _, b := range buckets {
		// The percentage is 0 for an all-zero set, not an error
		percentage := decimal.Zero
		if grandTotal.IsPositive() {
			percentage = b.total.Div(grandTotal).Mul(decimal.NewFromInt(100))
		}

		summaries = append(summaries, Summary{
			Label:      b.label,
			Color:      b.color,
			Total:      b.total,
			Count:      b.count,
			Percentage: percentage,
		})
	}

	return summaries
}
