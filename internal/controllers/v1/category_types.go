package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/smartspend/backend/internal/models"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name  string `json:"name" example:"Groceries" default:""`                            // Name of the category
	Note  string `json:"note" example:"Everything that goes into the fridge" default:""` // Notes about the category
	Color string `json:"color" example:"#22c55e" default:""`                             // Color tag used by clients
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:  editable.Name,
		Note:  editable.Note,
		Color: editable.Color,
	}
}

type CategoryLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/categories/7"`                    // The category itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=7"` // Transactions for this category
}

// Category is the representation of a Category in API v1.
type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`
}

// newCategory returns the API v1 representation of the resource
func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:  model.Name,
			Note:  model.Note,
			Color: model.Color,
		},
		Links: CategoryLinks{
			Self:         fmt.Sprintf("%s/v1/categories/%d", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?category=%d", url, model.ID),
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                // List of Categories
	Error      *string     `json:"error" example:"the category name is already in use"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                          // Pagination information
}

type CategoryCreateResponse struct {
	Data  []CategoryResponse `json:"data"`                                                // List of the created Categories or their respective error
	Error *string            `json:"error" example:"the category name is already in use"` // The error, if any occurred
}

func (c *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                // Data for the Category
	Error *string   `json:"error" example:"the category name is already in use"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Note   string `form:"note" filterField:"false"`   // By note
	Color  string `form:"color"`                      // By color tag
	Search string `form:"search" filterField:"false"` // By string in name or note
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Category returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) model() models.Category {
	return models.Category{
		Color: f.Color,
	}
}
