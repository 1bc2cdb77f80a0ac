// Package alerting implements the budget threshold evaluation
// pipeline: classification of a consumption snapshot into a severity,
// gating through user preferences and dispatch of notifications.
package alerting

import (
	"github.com/shopspring/decimal"
	"github.com/smartspend/backend/internal/models"
)

// Severity is the alert tier of a budget consumption snapshot.
//
// The tiers are strictly ordered: Normal < Warning < Exceeded <
// Critical. A snapshot that reaches a tier has also crossed all lower
// thresholds, but only the highest applicable tier is ever signaled.
type Severity uint8

const (
	SeverityNormal Severity = iota
	SeverityWarning
	SeverityExceeded
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityNormal:   "normal",
	SeverityWarning:  "warning",
	SeverityExceeded: "exceeded",
	SeverityCritical: "critical",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}

	return "unknown"
}

// Exceeds reports whether s is a higher tier than o.
func (s Severity) Exceeds(o Severity) bool {
	return s > o
}

// NotificationType returns the notification type for the severity.
// SeverityNormal has no notification type, nothing is signaled for it.
func (s Severity) NotificationType() (models.NotificationType, bool) {
	switch s {
	case SeverityWarning:
		return models.TypeBudgetWarning, true
	case SeverityExceeded:
		return models.TypeBudgetExceeded, true
	case SeverityCritical:
		return models.TypeBudgetCritical, true
	}

	return "", false
}

// Thresholds for the two fixed tiers, in percent of the budget limit.
// The warning tier below them is configured per user.
var (
	thresholdCritical = decimal.NewFromInt(125)
	thresholdExceeded = decimal.NewFromInt(100)
)

// Evaluate classifies a consumption snapshot.
//
// Higher tiers pre-empt lower ones, one call yields exactly one
// severity. The call is stateless: re-evaluating an unchanged snapshot
// yields the same severity again, there is no de-duplication or
// cooldown here.
func Evaluate(spent, limit decimal.Decimal, warningThresholdPercent int64) Severity {
	percentage := models.NewBreakdown(spent, limit).PercentageUsed

	switch {
	case percentage.GreaterThanOrEqual(thresholdCritical):
		return SeverityCritical
	case percentage.GreaterThanOrEqual(thresholdExceeded):
		return SeverityExceeded
	case percentage.GreaterThanOrEqual(decimal.NewFromInt(warningThresholdPercent)):
		return SeverityWarning
	}

	return SeverityNormal
}
