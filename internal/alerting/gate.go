package alerting

import (
	"errors"
	"time"

	"github.com/smartspend/backend/internal/models"
	"gorm.io/gorm"
)

// loadPreference returns the stored preferences of the user, or the
// defaults if the user has never stored any.
//
// Missing preferences fail open so that users are not silently muted
// before they ever visited the settings page.
func loadPreference(db *gorm.DB, userID string) (models.NotificationPreference, error) {
	var preference models.NotificationPreference

	err := db.Where(&models.NotificationPreference{UserID: userID}).First(&preference).Error
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			return models.DefaultPreference(userID), nil
		}

		return models.NotificationPreference{}, err
	}

	return preference, nil
}

// approve decides whether a notification of the given type may be
// emitted for the owner of the preferences at the given instant.
//
// Quiet hours deny unconditionally, regardless of the per-type flags.
func approve(preference models.NotificationPreference, t models.NotificationType, now time.Time) bool {
	if preference.InQuietHours(now) {
		return false
	}

	return preference.Allows(t)
}

// Approve decides whether a notification of the given type may be
// emitted for the user at the given instant.
func Approve(db *gorm.DB, userID string, t models.NotificationType, now time.Time) (bool, error) {
	preference, err := loadPreference(db, userID)
	if err != nil {
		return false, err
	}

	return approve(preference, t, now), nil
}
