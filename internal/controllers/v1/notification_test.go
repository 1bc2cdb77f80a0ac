package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/smartspend/backend/internal/controllers/v1"
	"github.com/smartspend/backend/internal/models"
	"github.com/smartspend/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestNotification stores a notification directly. Notifications
// are only ever created by the backend itself, there is no endpoint
// for it.
func createTestNotification(t *testing.T, notification models.Notification) models.Notification {
	if notification.UserID == "" {
		notification.UserID = "user-default"
	}

	if notification.Title == "" {
		notification.Title = "Budget Warning"
	}

	if notification.Type == "" {
		notification.Type = models.TypeBudgetWarning
	}

	if notification.Priority == "" {
		notification.Priority = notification.Type.DefaultPriority()
	}

	err := models.DB.Create(&notification).Error
	require.NoError(t, err, "notification could not be created")

	return notification
}

// TestNotificationsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestNotificationsDBClosed() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/notifications?user=user-1", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)

	var response v1.NotificationListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Contains(suite.T(), *response.Error, models.ErrGeneral.Error())
}

// TestNotificationsUserRequired verifies that every notification endpoint
// rejects requests without the user parameter.
func (suite *TestSuiteStandard) TestNotificationsUserRequired() {
	notification := createTestNotification(suite.T(), models.Notification{UserID: "user-1"})

	tests := []struct {
		path   string
		method string
	}{
		{"http://example.com/v1/notifications", http.MethodGet},
		{"http://example.com/v1/notifications", http.MethodDelete},
		{"http://example.com/v1/notifications/unread-count", http.MethodGet},
		{"http://example.com/v1/notifications/read-all", http.MethodPost},
		{fmt.Sprintf("http://example.com/v1/notifications/%d/read", notification.ID), http.MethodPatch},
		{fmt.Sprintf("http://example.com/v1/notifications/%d", notification.ID), http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			recorder := test.Request(t, tt.method, tt.path, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
			assert.Contains(t, recorder.Body.String(), "the userId parameter must be set")
		})
	}
}

// TestNotificationsGet verifies that notifications are returned for the
// requested user only, newest first.
func (suite *TestSuiteStandard) TestNotificationsGet() {
	first := createTestNotification(suite.T(), models.Notification{UserID: "user-1", Title: "First"})
	second := createTestNotification(suite.T(), models.Notification{UserID: "user-1", Title: "Second"})
	_ = createTestNotification(suite.T(), models.Notification{UserID: "user-2", Title: "Other user"})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/notifications?user=user-1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.NotificationListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 2, "Notification list has wrong length")
	assert.Equal(suite.T(), second.ID, response.Data[0].ID)
	assert.Equal(suite.T(), first.ID, response.Data[1].ID)
}

func (suite *TestSuiteStandard) TestNotificationsGetLimit() {
	for i := 0; i < 5; i++ {
		_ = createTestNotification(suite.T(), models.Notification{UserID: "user-1"})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/notifications?user=user-1&limit=2", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.NotificationListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Len(suite.T(), response.Data, 2)
}

// TestNotificationsGetLinks verifies that references to the budget and the
// transaction are turned into links.
func (suite *TestSuiteStandard) TestNotificationsGetLinks() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{UserID: "user-1"})

	_ = createTestNotification(suite.T(), models.Notification{
		UserID:   "user-1",
		BudgetID: &budget.Data.ID,
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/notifications?user=user-1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.NotificationListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/budgets/%d", budget.Data.ID), response.Data[0].Links.Budget)
	assert.Empty(suite.T(), response.Data[0].Links.Transaction)
}

func (suite *TestSuiteStandard) TestNotificationsUnreadCount() {
	_ = createTestNotification(suite.T(), models.Notification{UserID: "user-1"})
	read := createTestNotification(suite.T(), models.Notification{UserID: "user-1"})
	_ = createTestNotification(suite.T(), models.Notification{UserID: "user-2"})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/notifications/%d/read?user=user-1", read.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/notifications/unread-count?user=user-1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.NotificationCountResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), int64(1), response.Data)
}

// TestNotificationsRead verifies the read state transition, including its
// idempotency.
func (suite *TestSuiteStandard) TestNotificationsRead() {
	notification := createTestNotification(suite.T(), models.Notification{UserID: "user-1"})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/notifications/%d/read?user=user-1", notification.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var first v1.NotificationResponse
	test.DecodeResponse(suite.T(), &r, &first)

	assert.True(suite.T(), first.Data.IsRead)
	require.NotNil(suite.T(), first.Data.ReadAt)

	// Marking again is a no-op that keeps the original timestamp
	r = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/notifications/%d/read?user=user-1", notification.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var second v1.NotificationResponse
	test.DecodeResponse(suite.T(), &r, &second)

	require.NotNil(suite.T(), second.Data.ReadAt)
	assert.True(suite.T(), first.Data.ReadAt.Equal(*second.Data.ReadAt), "ReadAt changed from %s to %s", first.Data.ReadAt, second.Data.ReadAt)
}

func (suite *TestSuiteStandard) TestNotificationsReadFails() {
	notification := createTestNotification(suite.T(), models.Notification{UserID: "user-1"})

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"Wrong user", fmt.Sprintf("%d/read?user=user-2", notification.ID), http.StatusNotFound},
		{"Non-existing Notification", "1337/read?user=user-1", http.StatusNotFound},
		{"Invalid ID", "notAnID/read?user=user-1", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPatch, fmt.Sprintf("http://example.com/v1/notifications/%s", tt.path), "")
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestNotificationsReadAll() {
	_ = createTestNotification(suite.T(), models.Notification{UserID: "user-1"})
	_ = createTestNotification(suite.T(), models.Notification{UserID: "user-1"})
	_ = createTestNotification(suite.T(), models.Notification{UserID: "user-2"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/notifications/read-all?user=user-1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/notifications/unread-count?user=user-1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var count v1.NotificationCountResponse
	test.DecodeResponse(suite.T(), &r, &count)
	assert.Equal(suite.T(), int64(0), count.Data)

	// The other user's notification stays unread
	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/notifications/unread-count?user=user-2", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &count)
	assert.Equal(suite.T(), int64(1), count.Data)
}

// TestNotificationsDelete verifies that deletion is scoped to the owner.
func (suite *TestSuiteStandard) TestNotificationsDelete() {
	notification := createTestNotification(suite.T(), models.Notification{UserID: "user-1"})

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"Wrong user", fmt.Sprintf("%d?user=user-2", notification.ID), http.StatusNotFound},
		{"Success", fmt.Sprintf("%d?user=user-1", notification.ID), http.StatusNoContent},
		{"Already deleted", fmt.Sprintf("%d?user=user-1", notification.ID), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1/notifications/%s", tt.path), "")
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

// TestNotificationsSweep verifies that old notifications are removed by the
// retention sweep.
func (suite *TestSuiteStandard) TestNotificationsSweep() {
	old := createTestNotification(suite.T(), models.Notification{UserID: "user-1", Title: "Old"})
	_ = createTestNotification(suite.T(), models.Notification{UserID: "user-1", Title: "Recent"})

	// Backdate the old notification past the default retention
	err := models.DB.Model(&old).Update("created_at", time.Now().In(time.UTC).AddDate(0, 0, -40)).Error
	require.NoError(suite.T(), err)

	r := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/notifications?user=user-1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var removed v1.NotificationCountResponse
	test.DecodeResponse(suite.T(), &r, &removed)
	assert.Equal(suite.T(), int64(1), removed.Data)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/notifications?user=user-1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.NotificationListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "Recent", response.Data[0].Title)
}

func (suite *TestSuiteStandard) TestNotificationsSweepCustomAge() {
	notification := createTestNotification(suite.T(), models.Notification{UserID: "user-1"})

	err := models.DB.Model(&notification).Update("created_at", time.Now().In(time.UTC).AddDate(0, 0, -10)).Error
	require.NoError(suite.T(), err)

	r := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/notifications?user=user-1&maxAge=7", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var removed v1.NotificationCountResponse
	test.DecodeResponse(suite.T(), &r, &removed)
	assert.Equal(suite.T(), int64(1), removed.Data)
}
