package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartspend/backend/internal/models"
)

type NotificationLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/notifications/42"` // The notification itself
	Budget      string `json:"budget,omitempty" example:"https://example.com/api/v1/budgets/5"`
	Transaction string `json:"transaction,omitempty" example:"https://example.com/api/v1/transactions/17"`
}

// Notification is the representation of a Notification in API v1.
//
// Notifications are created by the backend only, there is no create or
// update endpoint for them. The only mutations are the read-state
// transitions.
type Notification struct {
	models.DefaultModel
	UserID        string                      `json:"userId" example:"b5f29991-4bd9-4779-9b27-50e14d4f56a1"` // ID of the user the notification is for
	Title         string                      `json:"title" example:"Budget Warning"`
	Message       string                      `json:"message" example:"You've spent 76.0% of your Groceries budget. Current spending: $380.00 of $500.00"`
	Type          models.NotificationType     `json:"type" example:"budget-warning"`
	Priority      models.NotificationPriority `json:"priority" example:"medium"`
	IsRead        bool                        `json:"isRead" example:"false"`
	ReadAt        *time.Time                  `json:"readAt"` // Time the notification was marked as read
	BudgetID      *uint64                     `json:"budgetId"`
	TransactionID *uint64                     `json:"transactionId"`
	Links         NotificationLinks           `json:"links"`
}

// newNotification returns the API v1 representation of the resource
func newNotification(c *gin.Context, model models.Notification) Notification {
	url := c.GetString(string(models.DBContextURL))

	notification := Notification{
		DefaultModel:  model.DefaultModel,
		UserID:        model.UserID,
		Title:         model.Title,
		Message:       model.Message,
		Type:          model.Type,
		Priority:      model.Priority,
		IsRead:        model.IsRead,
		ReadAt:        model.ReadAt,
		BudgetID:      model.BudgetID,
		TransactionID: model.TransactionID,
		Links: NotificationLinks{
			Self: fmt.Sprintf("%s/v1/notifications/%d", url, model.ID),
		},
	}

	if model.BudgetID != nil {
		notification.Links.Budget = fmt.Sprintf("%s/v1/budgets/%d", url, *model.BudgetID)
	}

	if model.TransactionID != nil {
		notification.Links.Transaction = fmt.Sprintf("%s/v1/transactions/%d", url, *model.TransactionID)
	}

	return notification
}

type NotificationListResponse struct {
	Data  []Notification `json:"data"`                                             // List of Notifications, newest first
	Error *string        `json:"error" example:"the userId parameter must be set"` // The error, if any occurred
}

type NotificationResponse struct {
	Data  *Notification `json:"data"`                                             // Data for the Notification
	Error *string       `json:"error" example:"the userId parameter must be set"` // The error, if any occurred
}

// NotificationCountResponse is returned by the unread count and the
// retention sweep endpoints.
type NotificationCountResponse struct {
	Data  int64   `json:"data" example:"3"`                                 // The count of notifications
	Error *string `json:"error" example:"the userId parameter must be set"` // The error, if any occurred
}

type NotificationQueryFilter struct {
	UserID string `form:"user"`   // ID of the user the notifications are for
	Limit  int    `form:"limit"`  // Maximum number of Notifications to return. Defaults to all.
	MaxAge int    `form:"maxAge"` // Maximum age in days for the retention sweep. Defaults to 30.
}
