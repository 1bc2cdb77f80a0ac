package alerting

import (
	"time"

	"github.com/smartspend/backend/internal/models"
	"gorm.io/gorm"
)

// DefaultRetentionDays is how long notifications are kept by the
// retention sweep when the caller does not specify an age.
const DefaultRetentionDays = 30

// List returns the notifications of the user, newest first.
// A limit of 0 returns all notifications.
func List(db *gorm.DB, userID string, limit int) ([]models.Notification, error) {
	notifications := make([]models.Notification, 0)

	q := db.
		Where(&models.Notification{UserID: userID}).
		Order("created_at DESC, id DESC")

	if limit > 0 {
		q = q.Limit(limit)
	}

	err := q.Find(&notifications).Error
	return notifications, err
}

// UnreadCount returns the number of unread notifications of the user.
func UnreadCount(db *gorm.DB, userID string) (int64, error) {
	var count int64

	err := db.
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).
		Error

	return count, err
}

// MarkRead marks one notification of the user as read.
//
// The operation is idempotent: marking an already read notification
// again is a no-op and keeps the original read timestamp.
func MarkRead(db *gorm.DB, id uint64, userID string) (models.Notification, error) {
	notification, err := byOwner(db, id, userID)
	if err != nil {
		return models.Notification{}, err
	}

	if notification.IsRead {
		return notification, nil
	}

	now := time.Now().In(time.UTC)
	notification.IsRead = true
	notification.ReadAt = &now

	err = db.Save(&notification).Error
	if err != nil {
		return models.Notification{}, err
	}

	return notification, nil
}

// MarkAllRead marks all unread notifications of the user as read.
func MarkAllRead(db *gorm.DB, userID string) error {
	return db.
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{
			"is_read": true,
			"read_at": time.Now().In(time.UTC),
		}).
		Error
}

// Delete removes one notification of the user.
func Delete(db *gorm.DB, id uint64, userID string) error {
	notification, err := byOwner(db, id, userID)
	if err != nil {
		return err
	}

	return db.Delete(&notification).Error
}

// SweepOld removes all notifications of the user older than the given
// age in days. Non-positive ages fall back to DefaultRetentionDays.
// It returns the number of removed notifications.
func SweepOld(db *gorm.DB, userID string, maxAgeDays int) (int64, error) {
	if maxAgeDays <= 0 {
		maxAgeDays = DefaultRetentionDays
	}

	cutoff := time.Now().In(time.UTC).AddDate(0, 0, -maxAgeDays)

	result := db.
		Where("user_id = ? AND created_at < ?", userID, cutoff).
		Delete(&models.Notification{})

	return result.RowsAffected, result.Error
}

// byOwner loads a notification scoped to its owner. A notification
// belonging to a different user is indistinguishable from a missing
// one.
func byOwner(db *gorm.DB, id uint64, userID string) (models.Notification, error) {
	var notification models.Notification

	err := db.
		Where(&models.Notification{UserID: userID}).
		First(&notification, id).
		Error

	return notification, err
}
