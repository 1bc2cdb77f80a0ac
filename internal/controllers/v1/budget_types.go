package v1

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/smartspend/backend/internal/models"
	"gorm.io/gorm"
)

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	UserID     string `json:"userId" example:"b5f29991-4bd9-4779-9b27-50e14d4f56a1"` // ID of the user owning the budget
	CategoryID uint64 `json:"categoryId" example:"3"`                                // ID of the category the budget limits

	Name string `json:"name" example:"Groceries June" default:""` // Name of the budget
	Note string `json:"note" example:"" default:""`               // A note

	LimitAmount decimal.Decimal `json:"limitAmount" example:"500" minimum:"0.01" multipleOf:"0.01"` // The spending limit

	StartDate time.Time `json:"startDate" example:"2024-06-01T00:00:00Z"` // First day counting towards the budget
	EndDate   time.Time `json:"endDate" example:"2024-06-30T00:00:00Z"`   // Last day counting towards the budget, inclusive
	Active    bool      `json:"active" example:"true" default:"true"`     // Only active budgets are evaluated for alerts
}

// model returns the database resource for the API representation of the editable fields
func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		UserID:      editable.UserID,
		CategoryID:  editable.CategoryID,
		Name:        editable.Name,
		Note:        editable.Note,
		LimitAmount: editable.LimitAmount,
		StartDate:   editable.StartDate,
		EndDate:     editable.EndDate,
		Active:      editable.Active,
	}
}

type BudgetLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/budgets/5"`                                     // The budget itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=7&user=b5f29991"` // Transactions counting towards this budget
}

// Budget is the representation of a Budget in API v1.
//
// The consumption figures are computed from the transaction set when
// the response is built, they are never read from a stored value.
type Budget struct {
	models.DefaultModel
	BudgetEditable
	models.Breakdown
	Links BudgetLinks `json:"links"`
}

// newBudget returns the API v1 representation of the resource
func newBudget(c *gin.Context, db *gorm.DB, model models.Budget) (Budget, error) {
	url := c.GetString(string(models.DBContextURL))

	breakdown, err := model.Breakdown(db)
	if err != nil {
		return Budget{}, err
	}

	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			UserID:      model.UserID,
			CategoryID:  model.CategoryID,
			Name:        model.Name,
			Note:        model.Note,
			LimitAmount: model.LimitAmount,
			StartDate:   model.StartDate,
			EndDate:     model.EndDate,
			Active:      model.Active,
		},
		Breakdown: breakdown,
		Links: BudgetLinks{
			Self:         fmt.Sprintf("%s/v1/budgets/%d", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?category=%d&user=%s", url, model.CategoryID, model.UserID),
		},
	}, nil
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                              // List of Budgets
	Error      *string     `json:"error" example:"the budget limit must be positive"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                        // Pagination information
}

type BudgetCreateResponse struct {
	Error *string          `json:"error" example:"the budget limit must be positive"` // The error, if any occurred
	Data  []BudgetResponse `json:"data"`                                              // List of created Budgets
}

func (b *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Error *string `json:"error" example:"the budget limit must be positive"` // The error, if any occurred for this budget
	Data  *Budget `json:"data"`                                              // The Budget data, if creation was successful
}

type BudgetQueryFilter struct {
	UserID     string `form:"user"`                       // By ID of the owning user
	CategoryID string `form:"category"`                   // By ID of the category
	Active     bool   `form:"active"`                     // Is the budget active?
	Name       string `form:"name" filterField:"false"`   // By name
	Note       string `form:"note" filterField:"false"`   // By note
	Search     string `form:"search" filterField:"false"` // By string in name or note
	Offset     uint   `form:"offset" filterField:"false"` // The offset of the first Budget returned. Defaults to 0.
	Limit      int    `form:"limit" filterField:"false"`  // Maximum number of Budgets to return. Defaults to 50.
}

func (f BudgetQueryFilter) model() (models.Budget, error) {
	var categoryID uint64

	if f.CategoryID != "" {
		var err error
		categoryID, err = strconv.ParseUint(f.CategoryID, 10, 64)
		if err != nil {
			return models.Budget{}, errInvalidID
		}
	}

	return models.Budget{
		UserID:     f.UserID,
		CategoryID: categoryID,
		Active:     f.Active,
	}, nil
}
