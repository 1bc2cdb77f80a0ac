package models

import (
	"strings"

	"gorm.io/gorm"
)

// Category represents a spending or income category.
//
// Categories are shared between all users, they are referenced
// by transactions and budgets but never owned by anyone.
type Category struct {
	DefaultModel
	Name  string `json:"name" gorm:"uniqueIndex" example:"Groceries" default:""`         // Name of the category
	Note  string `json:"note" example:"Everything that goes into the fridge" default:""` // Notes about the category
	Color string `json:"color" example:"#22c55e" default:""`                             // Color tag used by clients
}

// BeforeSave trims whitespace from the string fields.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)
	c.Color = strings.TrimSpace(c.Color)

	return nil
}
