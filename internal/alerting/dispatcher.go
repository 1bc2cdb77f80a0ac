package alerting

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/smartspend/backend/internal/models"
	"gorm.io/gorm"
)

// Candidate is an alert that passed the preference gate and is ready
// to be persisted as a notification.
type Candidate struct {
	UserID        string
	Type          models.NotificationType
	Title         string
	Message       string
	BudgetID      *uint64
	TransactionID *uint64
}

// money formats an amount the way it appears in notification texts.
func money(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// percent formats a percentage with one decimal place.
func percent(percentage decimal.Decimal) string {
	return percentage.StringFixed(1) + "%"
}

// budgetCandidate builds the alert for a budget consumption snapshot.
// The message content is deterministic for a given snapshot.
func budgetCandidate(budget models.Budget, breakdown models.Breakdown, severity Severity) Candidate {
	candidate := Candidate{
		UserID:   budget.UserID,
		BudgetID: &budget.ID,
	}

	overspent := breakdown.Spent.Sub(budget.LimitAmount)

	switch severity {
	case SeverityWarning:
		candidate.Type = models.TypeBudgetWarning
		candidate.Title = "Budget Warning"
		candidate.Message = fmt.Sprintf("You've spent %s of your %s budget. Current spending: %s of %s",
			percent(breakdown.PercentageUsed), budget.Name, money(breakdown.Spent), money(budget.LimitAmount))

	case SeverityExceeded:
		candidate.Type = models.TypeBudgetExceeded
		candidate.Title = "Budget Exceeded!"
		candidate.Message = fmt.Sprintf("You've exceeded your %s budget by %s. Total spent: %s (Budget: %s)",
			budget.Name, money(overspent), money(breakdown.Spent), money(budget.LimitAmount))

	case SeverityCritical:
		candidate.Type = models.TypeBudgetCritical
		candidate.Title = "Critical Budget Alert!"
		candidate.Message = fmt.Sprintf("URGENT: You've spent %s of your %s budget! You're %s over budget. Immediate action recommended.",
			percent(breakdown.PercentageUsed), budget.Name, money(overspent))
	}

	return candidate
}

// expenseCandidate builds the informational alert for a newly recorded
// expense.
func expenseCandidate(transaction models.Transaction) Candidate {
	return Candidate{
		UserID:        transaction.UserID,
		Type:          models.TypeExpenseAdded,
		Title:         "New Expense Added",
		Message:       fmt.Sprintf("Expense '%s' of %s has been added", transaction.Title, money(transaction.Amount)),
		TransactionID: &transaction.ID,
	}
}

// monthlyReportCandidate builds the alert pointing the user at their
// monthly report.
func monthlyReportCandidate(userID string) Candidate {
	return Candidate{
		UserID:  userID,
		Type:    models.TypeMonthlyReport,
		Title:   "Monthly Financial Report",
		Message: "Your monthly financial report is ready. Check your dashboard for detailed insights.",
	}
}

// Dispatch persists the candidate as an unread notification.
//
// The priority is fully determined by the notification type.
func Dispatch(db *gorm.DB, candidate Candidate) (models.Notification, error) {
	notification := models.Notification{
		UserID:        candidate.UserID,
		Title:         candidate.Title,
		Message:       candidate.Message,
		Type:          candidate.Type,
		Priority:      candidate.Type.DefaultPriority(),
		IsRead:        false,
		BudgetID:      candidate.BudgetID,
		TransactionID: candidate.TransactionID,
	}

	err := db.Create(&notification).Error
	if err != nil {
		return models.Notification{}, err
	}

	alertsEmitted.WithLabelValues(string(candidate.Type)).Inc()

	return notification, nil
}
