package alerting_test

import (
	"time"

	"github.com/smartspend/backend/internal/alerting"
	"github.com/smartspend/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) createTestNotification(notification models.Notification) models.Notification {
	if notification.UserID == "" {
		notification.UserID = "user-default"
	}

	if notification.Type == "" {
		notification.Type = models.TypeBudgetWarning
	}

	if notification.Priority == "" {
		notification.Priority = notification.Type.DefaultPriority()
	}

	err := models.DB.Create(&notification).Error
	if err != nil {
		suite.Assert().FailNow("notification could not be created", err)
	}

	return notification
}

func (suite *TestSuiteStandard) TestListNewestFirst() {
	for _, title := range []string{"first", "second", "third"} {
		notification := suite.createTestNotification(models.Notification{UserID: "user-1", Title: title})

		// Spread the creation timestamps so the ordering is
		// unambiguous
		offset := time.Duration(notification.ID) * time.Minute
		err := models.DB.Model(&notification).Update("created_at", noon.Add(offset)).Error
		require.Nil(suite.T(), err)
	}

	suite.createTestNotification(models.Notification{UserID: "user-2", Title: "other user"})

	notifications, err := alerting.List(models.DB, "user-1", 0)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), notifications, 3)

	assert.Equal(suite.T(), "third", notifications[0].Title)
	assert.Equal(suite.T(), "second", notifications[1].Title)
	assert.Equal(suite.T(), "first", notifications[2].Title)
}

func (suite *TestSuiteStandard) TestListLimit() {
	for i := 0; i < 5; i++ {
		suite.createTestNotification(models.Notification{UserID: "user-1"})
	}

	notifications, err := alerting.List(models.DB, "user-1", 2)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), notifications, 2)
}

func (suite *TestSuiteStandard) TestUnreadCount() {
	suite.createTestNotification(models.Notification{UserID: "user-1"})
	suite.createTestNotification(models.Notification{UserID: "user-1"})
	read := suite.createTestNotification(models.Notification{UserID: "user-1"})
	suite.createTestNotification(models.Notification{UserID: "user-2"})

	_, err := alerting.MarkRead(models.DB, read.ID, "user-1")
	require.Nil(suite.T(), err)

	count, err := alerting.UnreadCount(models.DB, "user-1")
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(2), count)
}

func (suite *TestSuiteStandard) TestMarkReadIdempotent() {
	notification := suite.createTestNotification(models.Notification{UserID: "user-1"})

	first, err := alerting.MarkRead(models.DB, notification.ID, "user-1")
	require.Nil(suite.T(), err)
	assert.True(suite.T(), first.IsRead)
	require.NotNil(suite.T(), first.ReadAt)

	// Marking again is a no-op and keeps the original timestamp
	second, err := alerting.MarkRead(models.DB, notification.ID, "user-1")
	require.Nil(suite.T(), err)
	assert.True(suite.T(), second.IsRead)
	require.NotNil(suite.T(), second.ReadAt)
	assert.True(suite.T(), first.ReadAt.Equal(*second.ReadAt))
}

func (suite *TestSuiteStandard) TestMarkReadWrongUser() {
	notification := suite.createTestNotification(models.Notification{UserID: "user-1"})

	_, err := alerting.MarkRead(models.DB, notification.ID, "user-2")
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestMarkAllRead() {
	suite.createTestNotification(models.Notification{UserID: "user-1"})
	suite.createTestNotification(models.Notification{UserID: "user-1"})
	other := suite.createTestNotification(models.Notification{UserID: "user-2"})

	err := alerting.MarkAllRead(models.DB, "user-1")
	require.Nil(suite.T(), err)

	count, err := alerting.UnreadCount(models.DB, "user-1")
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(0), count)

	// Other users are untouched
	var reloaded models.Notification
	require.Nil(suite.T(), models.DB.First(&reloaded, other.ID).Error)
	assert.False(suite.T(), reloaded.IsRead)
}

func (suite *TestSuiteStandard) TestDelete() {
	notification := suite.createTestNotification(models.Notification{UserID: "user-1"})

	err := alerting.Delete(models.DB, notification.ID, "user-1")
	require.Nil(suite.T(), err)

	err = models.DB.First(&models.Notification{}, notification.ID).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestDeleteWrongUser() {
	notification := suite.createTestNotification(models.Notification{UserID: "user-1"})

	err := alerting.Delete(models.DB, notification.ID, "user-2")
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	// The notification is still there for its owner
	_, err = alerting.MarkRead(models.DB, notification.ID, "user-1")
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestSweepOld() {
	old := suite.createTestNotification(models.Notification{UserID: "user-1", Title: "old"})
	err := models.DB.Model(&old).Update("created_at", time.Now().In(time.UTC).AddDate(0, 0, -40)).Error
	require.Nil(suite.T(), err)

	recent := suite.createTestNotification(models.Notification{UserID: "user-1", Title: "recent"})
	otherUser := suite.createTestNotification(models.Notification{UserID: "user-2", Title: "old, other user"})
	err = models.DB.Model(&otherUser).Update("created_at", time.Now().In(time.UTC).AddDate(0, 0, -40)).Error
	require.Nil(suite.T(), err)

	removed, err := alerting.SweepOld(models.DB, "user-1", 0)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(1), removed)

	notifications, err := alerting.List(models.DB, "user-1", 0)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), notifications, 1)
	assert.Equal(suite.T(), recent.ID, notifications[0].ID)
}

func (suite *TestSuiteStandard) TestSweepOldCustomAge() {
	notification := suite.createTestNotification(models.Notification{UserID: "user-1"})
	err := models.DB.Model(&notification).Update("created_at", time.Now().In(time.UTC).AddDate(0, 0, -10)).Error
	require.Nil(suite.T(), err)

	removed, err := alerting.SweepOld(models.DB, "user-1", 7)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(1), removed)
}
