package models

import (
	"time"
)

// NotificationType classifies a notification.
type NotificationType string

const (
	TypeBudgetWarning  NotificationType = "budget-warning"
	TypeBudgetExceeded NotificationType = "budget-exceeded"
	TypeBudgetCritical NotificationType = "budget-critical"
	TypeExpenseAdded   NotificationType = "expense-added"
	TypeMonthlyReport  NotificationType = "monthly-report"
)

// NotificationPriority is the urgency of a notification, used by
// clients for display ordering and styling.
type NotificationPriority string

const (
	PriorityLow      NotificationPriority = "low"
	PriorityMedium   NotificationPriority = "medium"
	PriorityHigh     NotificationPriority = "high"
	PriorityCritical NotificationPriority = "critical"
)

// DefaultPriority returns the priority a notification type carries.
// The type fully determines the priority.
func (t NotificationType) DefaultPriority() NotificationPriority {
	switch t {
	case TypeBudgetExceeded:
		return PriorityHigh
	case TypeBudgetCritical:
		return PriorityCritical
	case TypeExpenseAdded:
		return PriorityLow
	}

	// TypeBudgetWarning, TypeMonthlyReport
	return PriorityMedium
}

// Notification is a persisted alert for a user.
//
// Notifications are only ever created by the dispatcher and only
// mutated by read-state transitions. The foreign keys to budgets and
// transactions cascade, deleting the parent removes the notification.
type Notification struct {
	DefaultModel
	UserID        string               `json:"userId" gorm:"index" example:"b5f29991-4bd9-4779-9b27-50e14d4f56a1"` // ID of the user the notification is for
	Title         string               `json:"title" example:"Budget Warning"`
	Message       string               `json:"message" example:"You've spent 76.0% of your Groceries budget. Current spending: $380.00 of $500.00"`
	Type          NotificationType     `json:"type" example:"budget-warning"`
	Priority      NotificationPriority `json:"priority" example:"medium"`
	IsRead        bool                 `json:"isRead" example:"false" default:"false"`
	ReadAt        *time.Time           `json:"readAt"`   // Time the notification was marked as read
	BudgetID      *uint64              `json:"budgetId"` // The budget the notification refers to, if any
	Budget        *Budget              `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	TransactionID *uint64              `json:"transactionId"` // The transaction the notification refers to, if any
	Transaction   *Transaction         `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
