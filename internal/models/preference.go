package models

import (
	"time"

	"github.com/smartspend/backend/internal/types"
	"gorm.io/gorm"
)

// NotificationPreference holds the notification settings of one user.
// There is exactly one row per user.
type NotificationPreference struct {
	DefaultModel
	UserID string `json:"userId" gorm:"uniqueIndex" example:"b5f29991-4bd9-4779-9b27-50e14d4f56a1"` // ID of the user the preferences belong to

	EnableBudgetWarnings    bool  `json:"enableBudgetWarnings" example:"true" default:"true"`
	WarningThresholdPercent int64 `json:"warningThresholdPercent" example:"75" default:"75"` // Budget consumption in percent at which a warning is sent
	EnableBudgetExceeded    bool  `json:"enableBudgetExceeded" example:"true" default:"true"`
	EnableBudgetCritical    bool  `json:"enableBudgetCritical" example:"true" default:"true"`
	EnableExpenseAdded      bool  `json:"enableExpenseAdded" example:"false" default:"false"`
	EnableMonthlyReports    bool  `json:"enableMonthlyReports" example:"true" default:"true"`

	// Delivery channels. E-mail delivery itself is handled by a
	// surrounding service, this backend only records the flag.
	EnableInApp bool `json:"enableInApp" example:"true" default:"true"`
	EnableEmail bool `json:"enableEmail" example:"false" default:"false"`

	EnableQuietHours bool            `json:"enableQuietHours" example:"false" default:"false"`
	QuietHoursStart  types.TimeOfDay `json:"quietHoursStart" example:"22:00:00"`
	QuietHoursEnd    types.TimeOfDay `json:"quietHoursEnd" example:"08:00:00"`
}

// DefaultPreference returns the settings used for users that have
// never stored any. Alerts default to enabled so that new users are
// not silently muted.
func DefaultPreference(userID string) NotificationPreference {
	return NotificationPreference{
		UserID:                  userID,
		EnableBudgetWarnings:    true,
		WarningThresholdPercent: 75,
		EnableBudgetExceeded:    true,
		EnableBudgetCritical:    true,
		EnableExpenseAdded:      false,
		EnableMonthlyReports:    true,
		EnableInApp:             true,
		EnableEmail:             false,
		EnableQuietHours:        false,
		QuietHoursStart:         types.NewTimeOfDay(22, 0),
		QuietHoursEnd:           types.NewTimeOfDay(8, 0),
	}
}

// BeforeSave validates the warning threshold.
func (p *NotificationPreference) BeforeSave(_ *gorm.DB) error {
	if p.WarningThresholdPercent < 1 || p.WarningThresholdPercent > 100 {
		return ErrThresholdOutOfRange
	}

	return nil
}

// Allows reports whether notifications of the given type are enabled.
// Types without an explicit flag are always allowed.
func (p NotificationPreference) Allows(t NotificationType) bool {
	switch t {
	case TypeBudgetWarning:
		return p.EnableBudgetWarnings
	case TypeBudgetExceeded:
		return p.EnableBudgetExceeded
	case TypeBudgetCritical:
		return p.EnableBudgetCritical
	case TypeExpenseAdded:
		return p.EnableExpenseAdded
	case TypeMonthlyReport:
		return p.EnableMonthlyReports
	}

	return true
}

// InQuietHours reports whether the instant falls into the user's quiet
// hours window.
//
// A window with start < end covers a single day and contains the
// times with start <= t < end. A window with start >= end spans
// midnight (such as 22:00 to 08:00) and contains the times with
// t >= start or t <= end.
func (p NotificationPreference) InQuietHours(now time.Time) bool {
	if !p.EnableQuietHours {
		return false
	}

	t := types.TimeOfDayOf(now)

	if p.QuietHoursStart < p.QuietHoursEnd {
		return t >= p.QuietHoursStart && t < p.QuietHoursEnd
	}

	return t >= p.QuietHoursStart || t <= p.QuietHoursEnd
}
