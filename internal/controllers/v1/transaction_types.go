package v1

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/smartspend/backend/internal/models"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	UserID     string `json:"userId" example:"b5f29991-4bd9-4779-9b27-50e14d4f56a1"` // ID of the user owning the transaction
	CategoryID uint64 `json:"categoryId" example:"3"`                                // ID of the category

	Title string `json:"title" example:"Weekly groceries" default:""` // Short description
	Note  string `json:"note" example:"" default:""`                  // A note

	// The maximum value is "999999999999999999.99", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"54.99" minimum:"0.01" multipleOf:"0.01"` // The amount for the transaction

	Date time.Time              `json:"date" example:"2024-06-14T00:00:00Z"` // Date of the transaction. Time is currently only used for sorting
	Kind models.TransactionKind `json:"kind" example:"expense"`              // Whether money leaves or enters the pocket
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		UserID:     editable.UserID,
		CategoryID: editable.CategoryID,
		Title:      editable.Title,
		Note:       editable.Note,
		Amount:     editable.Amount,
		Date:       editable.Date,
		Kind:       editable.Kind,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/42"` // The transaction itself
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Links TransactionLinks `json:"links"`
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			UserID:     model.UserID,
			CategoryID: model.CategoryID,
			Title:      model.Title,
			Note:       model.Note,
			Amount:     model.Amount,
			Date:       model.Date,
			Kind:       model.Kind,
		},
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%d", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                        // List of Transactions
	Error      *string       `json:"error" example:"the amount must be positive"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                  // Pagination information
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the amount must be positive"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                        // List of created Transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the amount must be positive"` // The error, if any occurred for this transaction
	Data  *Transaction `json:"data"`                                        // The Transaction data, if creation was successful
}

type TransactionQueryFilter struct {
	UserID     string                 `form:"user"`                                                                // By ID of the owning user
	CategoryID string                 `form:"category"`                                                            // By ID of the category
	Kind       models.TransactionKind `form:"kind"`                                                                // By kind
	Title      string                 `form:"title" filterField:"false"`                                           // By title
	Note       string                 `form:"note" filterField:"false"`                                            // By note
	Glob       string                 `form:"glob" filterField:"false"`                                            // By glob pattern on the title, e.g. "*groceries*"
	FromDate   time.Time              `form:"fromDate" filterField:"false" time_format:"2006-01-02" time_utc:"1"`  // Transactions at or after this date
	UntilDate  time.Time              `form:"untilDate" filterField:"false" time_format:"2006-01-02" time_utc:"1"` // Transactions at or before this date
	Search     string                 `form:"search" filterField:"false"`                                          // By string in title or note
	Offset     uint                   `form:"offset" filterField:"false"`                                          // The offset of the first Transaction returned. Defaults to 0.
	Limit      int                    `form:"limit" filterField:"false"`                                           // Maximum number of Transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() (models.Transaction, error) {
	var categoryID uint64

	if f.CategoryID != "" {
		var err error
		categoryID, err = strconv.ParseUint(f.CategoryID, 10, 64)
		if err != nil {
			return models.Transaction{}, errInvalidID
		}
	}

	return models.Transaction{
		UserID:     f.UserID,
		CategoryID: categoryID,
		Kind:       f.Kind,
	}, nil
}
