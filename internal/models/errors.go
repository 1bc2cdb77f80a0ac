package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrAmountNotPositive     = errors.New("the amount must be positive")
	ErrLimitNotPositive      = errors.New("the budget limit must be positive")
	ErrBudgetPeriodInvalid   = errors.New("the budget end date must not be before its start date")
	ErrInvalidKind           = errors.New("the transaction kind must be 'expense' or 'income'")
	ErrCategoryNameNotUnique = errors.New("the category name is already in use")
	ErrPreferenceExists      = errors.New("notification preferences for this user already exist")
	ErrThresholdOutOfRange   = errors.New("the warning threshold must be between 1 and 100 percent")
)
