package alerting

import (
	"context"
	"time"

	"github.com/smartspend/backend/internal/models"
	"gorm.io/gorm"
)

// storageTimeout bounds a single pipeline run at the storage boundary.
// The pipeline itself does not retry, storage failures propagate to
// the caller.
const storageTimeout = 30 * time.Second

// CheckBudgets runs the full evaluation pipeline for one user and
// category: recompute consumption, classify it, gate it through the
// user's preferences and dispatch the approved alerts.
//
// It evaluates every active budget of the user for the category whose
// window contains now. The consumption is always recomputed fresh from
// the transaction set, the pipeline never reads a cached spend.
//
// The returned slice contains the created notifications, it is empty
// when no threshold was crossed or the gate denied.
func CheckBudgets(db *gorm.DB, userID string, categoryID uint64, now time.Time) ([]models.Notification, error) {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	db = db.WithContext(ctx)

	var budgets []models.Budget
	err := db.
		Where(&models.Budget{UserID: userID, CategoryID: categoryID}).
		Where("active = ?", true).
		Where("date(?) >= date(start_date) AND date(?) <= date(end_date)", now, now).
		Find(&budgets).
		Error
	if err != nil {
		return nil, err
	}

	preference, err := loadPreference(db, userID)
	if err != nil {
		return nil, err
	}

	notifications := make([]models.Notification, 0)

	for _, budget := range budgets {
		breakdown, err := budget.Breakdown(db)
		if err != nil {
			return notifications, err
		}

		severity := Evaluate(breakdown.Spent, budget.LimitAmount, preference.WarningThresholdPercent)

		// At most one tier per evaluation, higher tiers pre-empt
		// lower ones
		alertType, ok := severity.NotificationType()
		if !ok {
			continue
		}

		if !approve(preference, alertType, now) {
			continue
		}

		notification, err := Dispatch(db, budgetCandidate(budget, breakdown, severity))
		if err != nil {
			return notifications, err
		}

		notifications = append(notifications, notification)
	}

	return notifications, nil
}

// NotifyExpenseAdded dispatches the informational notification for a
// newly recorded expense, if the user opted into them.
//
// It returns nil without error when the gate denied.
func NotifyExpenseAdded(db *gorm.DB, transaction models.Transaction, now time.Time) (*models.Notification, error) {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	db = db.WithContext(ctx)

	preference, err := loadPreference(db, transaction.UserID)
	if err != nil {
		return nil, err
	}

	if !approve(preference, models.TypeExpenseAdded, now) {
		return nil, nil
	}

	notification, err := Dispatch(db, expenseCandidate(transaction))
	if err != nil {
		return nil, err
	}

	return &notification, nil
}

// NotifyMonthlyReport dispatches the notification pointing the user at
// their monthly report, if the user opted into them.
func NotifyMonthlyReport(db *gorm.DB, userID string, now time.Time) (*models.Notification, error) {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	db = db.WithContext(ctx)

	preference, err := loadPreference(db, userID)
	if err != nil {
		return nil, err
	}

	if !approve(preference, models.TypeMonthlyReport, now) {
		return nil, nil
	}

	notification, err := Dispatch(db, monthlyReportCandidate(userID))
	if err != nil {
		return nil, err
	}

	return &notification, nil
}
