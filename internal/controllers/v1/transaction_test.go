package v1_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	v1 "github.com/smartspend/backend/internal/controllers/v1"
	"github.com/smartspend/backend/internal/models"
	"github.com/smartspend/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestTransaction(t *testing.T, transaction v1.TransactionEditable, expectedStatus ...int) v1.TransactionResponse {
	if transaction.UserID == "" {
		transaction.UserID = "user-default"
	}

	if transaction.CategoryID == 0 {
		transaction.CategoryID = createTestCategory(t, v1.CategoryEditable{}).Data.ID
	}

	if transaction.Kind == "" {
		transaction.Kind = models.KindExpense
	}

	if transaction.Amount.IsZero() {
		transaction.Amount = decimal.NewFromFloat(17.23)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.TransactionEditable{transaction}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.TransactionCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.TransactionResponse{}
}

// TestTransactionsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestTransactionsDBClosed() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestTransaction(t, v1.TransactionEditable{CategoryID: category.Data.ID}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/transactions", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.TransactionListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

// TestTransactionsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestTransactionsOptions() {
	tests := []struct {
		name   string
		id     string // path at the transactions endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Transaction with this ID", "1337", http.StatusNotFound},
		{"Not a valid ID", "NotParseableAsID", http.StatusBadRequest},
		{"Transaction exists", fmt.Sprint(createTestTransaction(suite.T(), v1.TransactionEditable{}).Data.ID), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/transactions", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsCreateFails() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	tests := []struct {
		name     string
		body     any
		status   int                                                // expected HTTP status
		testFunc func(t *testing.T, r v1.TransactionCreateResponse) // tests to perform against the response
	}{
		{
			"Broken Body", `[{ "title": 2 }]`, http.StatusBadRequest,
			func(t *testing.T, r v1.TransactionCreateResponse) {
				assert.Equal(t, "json: cannot unmarshal number into Go struct field TransactionEditable.title of type string", *r.Error)
			},
		},
		{
			"No body", "", http.StatusBadRequest,
			func(t *testing.T, r v1.TransactionCreateResponse) {
				assert.Equal(t, "the request body must not be empty", *r.Error)
			},
		},
		{
			"Zero amount",
			[]v1.TransactionEditable{
				{
					UserID:     "user-1",
					CategoryID: category.Data.ID,
					Kind:       models.KindExpense,
				},
			},
			http.StatusBadRequest,
			func(t *testing.T, r v1.TransactionCreateResponse) {
				assert.Equal(t, "the amount must be positive", *r.Data[0].Error)
			},
		},
		{
			"Negative amount",
			[]v1.TransactionEditable{
				{
					UserID:     "user-1",
					CategoryID: category.Data.ID,
					Kind:       models.KindExpense,
					Amount:     decimal.NewFromFloat(-17.23),
				},
			},
			http.StatusBadRequest,
			func(t *testing.T, r v1.TransactionCreateResponse) {
				assert.Equal(t, "the amount must be positive", *r.Data[0].Error)
			},
		},
		{
			"Invalid kind",
			[]v1.TransactionEditable{
				{
					UserID:     "user-1",
					CategoryID: category.Data.ID,
					Kind:       "transfer",
					Amount:     decimal.NewFromFloat(17.23),
				},
			},
			http.StatusBadRequest,
			func(t *testing.T, r v1.TransactionCreateResponse) {
				assert.Equal(t, "the transaction kind must be 'expense' or 'income'", *r.Data[0].Error)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.TransactionCreateResponse
			test.DecodeResponse(t, &r, &response)

			if tt.testFunc != nil {
				tt.testFunc(t, response)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetFilter() {
	groceries := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})
	leisure := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Leisure"})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		UserID:     "user-1",
		CategoryID: groceries.Data.ID,
		Title:      "Weekly groceries",
		Note:       "Supermarket run",
		Amount:     decimal.NewFromFloat(54.99),
		Date:       time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		Kind:       models.KindExpense,
	})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		UserID:     "user-1",
		CategoryID: leisure.Data.ID,
		Title:      "Cinema",
		Note:       "Movie night",
		Amount:     decimal.NewFromFloat(24),
		Date:       time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
		Kind:       models.KindExpense,
	})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		UserID:     "user-2",
		CategoryID: groceries.Data.ID,
		Title:      "Monthly groceries",
		Note:       "",
		Amount:     decimal.NewFromFloat(230.50),
		Date:       time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Kind:       models.KindExpense,
	})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		UserID:     "user-1",
		CategoryID: leisure.Data.ID,
		Title:      "Salary",
		Note:       "June",
		Amount:     decimal.NewFromFloat(2100),
		Date:       time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC),
		Kind:       models.KindIncome,
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"User 1", "user=user-1", 3},
		{"User 2", "user=user-2", 1},
		{"User not existing", "user=user-404", 0},
		{"Category", fmt.Sprintf("category=%d", groceries.Data.ID), 2},
		{"Category not existing", "category=1337", 0},
		{"Expenses", "kind=expense", 3},
		{"Income", "kind=income", 1},
		{"Expenses for user 1", "user=user-1&kind=expense", 2},
		{"Title", "title=Cinema", 1},
		{"Fuzzy title", "title=groceries", 2},
		{"Glob on title", "glob=*groceries*", 2},
		{"Glob no match", "glob=Rent*", 0},
		{"Note", "note=Movie night", 1},
		{"Search", "search=night", 1},
		{"From date", "fromDate=2024-06-14", 3},
		{"Until date", "untilDate=2024-06-14", 2},
		{"Date window", "fromDate=2024-06-01&untilDate=2024-06-30", 3},
		{"Offset 2", "offset=2", 2},
		{"Limit 3", "limit=3", 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.TransactionListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("/v1/transactions?%s", tt.query), "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
			test.DecodeResponse(t, &r, &re)

			assert.Equal(t, tt.len, len(re.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

// TestTransactionsGetInvalidQuery verifies that invalid filter parameters are
// rejected.
func (suite *TestSuiteStandard) TestTransactionsGetInvalidQuery() {
	tests := []string{
		"category=NotAnID",
		"fromDate=2024-06-31T00:00:00Z",
	}

	for _, tt := range tests {
		suite.T().Run(tt, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}
}

// TestTransactionsGetSorted verifies that transactions are returned newest
// first.
func (suite *TestSuiteStandard) TestTransactionsGetSorted() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	oldest := createTestTransaction(suite.T(), v1.TransactionEditable{
		CategoryID: category.Data.ID,
		Title:      "Oldest",
		Date:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	newest := createTestTransaction(suite.T(), v1.TransactionEditable{
		CategoryID: category.Data.ID,
		Title:      "Newest",
		Date:       time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
	})

	middle := createTestTransaction(suite.T(), v1.TransactionEditable{
		CategoryID: category.Data.ID,
		Title:      "Middle",
		Date:       time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var transactions v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &transactions)

	require.Len(suite.T(), transactions.Data, 3, "Transaction list has wrong length")

	assert.Equal(suite.T(), newest.Data.ID, transactions.Data[0].ID)
	assert.Equal(suite.T(), middle.Data.ID, transactions.Data[1].ID)
	assert.Equal(suite.T(), oldest.Data.ID, transactions.Data[2].ID)
}

// Verify that updating transactions works as desired
func (suite *TestSuiteStandard) TestTransactionsUpdate() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{Title: "Name of the transaction"})

	tests := []struct {
		name        string                                       // name of the test
		transaction map[string]any                               // the updates to perform. This is not a struct because that would set all fields on the request
		testFunc    func(t *testing.T, r v1.TransactionResponse) // tests to perform against the updated transaction resource
	}{
		{
			"Title, Note",
			map[string]any{
				"title": "Another title",
				"note":  "New note!",
			},
			func(t *testing.T, r v1.TransactionResponse) {
				assert.Equal(t, "New note!", r.Data.Note)
				assert.Equal(t, "Another title", r.Data.Title)
			},
		},
		{
			"Amount",
			map[string]any{
				"amount": decimal.RequireFromString("72.11"),
			},
			func(t *testing.T, r v1.TransactionResponse) {
				assert.True(t, r.Data.Amount.Equal(decimal.NewFromFloat(72.11)))
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, transaction.Data.Links.Self, tt.transaction)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionResponse
			test.DecodeResponse(t, &r, &response)

			if tt.testFunc != nil {
				tt.testFunc(t, response)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsUpdateFails() {
	tests := []struct {
		name   string
		id     string
		body   any
		status int // expected response status
	}{
		{"Invalid type", "", `{"title": 2}`, http.StatusBadRequest},
		{"Broken JSON", "", `{ "title": 2" }`, http.StatusBadRequest},
		{"Negative amount", "", `{"amount": -42}`, http.StatusBadRequest},
		{"Non-existing Transaction", "1337", `{"title": "Does not matter"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var recorder httptest.ResponseRecorder

			if tt.id == "" {
				transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
					Note: "Auto-created for test",
				})

				tt.id = fmt.Sprint(transaction.Data.ID)
			}

			recorder = test.Request(t, http.MethodPatch, fmt.Sprintf("http://example.com/v1/transactions/%s", tt.id), tt.body)
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

// TestTransactionsUpdateRollback verifies that a rejected update does
// not modify the stored transaction.
func (suite *TestSuiteStandard) TestTransactionsUpdateRollback() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
		Amount: decimal.NewFromFloat(17.23),
	})

	recorder := test.Request(suite.T(), http.MethodPatch, transaction.Data.Links.Self, `{"amount": -42}`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromFloat(17.23)), "amount was changed to %s", response.Data.Amount)
}

// TestTransactionsDelete verifies all cases for Transaction deletions.
func (suite *TestSuiteStandard) TestTransactionsDelete() {
	tests := []struct {
		name   string
		id     string
		status int // expected response status
	}{
		{"Success", "", http.StatusNoContent},
		{"Non-existing Transaction", "1337", http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var recorder httptest.ResponseRecorder

			if tt.id == "" {
				transaction := createTestTransaction(t, v1.TransactionEditable{})
				tt.id = fmt.Sprint(transaction.Data.ID)
			}

			recorder = test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1/transactions/%s", tt.id), "")
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

// TestTransactionsTriggerAlerts verifies that creating an expense against a
// nearly consumed budget creates a notification for the user.
func (suite *TestSuiteStandard) TestTransactionsTriggerAlerts() {
	now := time.Now().In(time.UTC)
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})

	// The budget window has to contain the evaluation time, which is the
	// time the transaction is created at.
	_ = createTestBudget(suite.T(), v1.BudgetEditable{
		UserID:      "user-1",
		CategoryID:  category.Data.ID,
		Name:        "Groceries June",
		LimitAmount: decimal.NewFromInt(500),
		StartDate:   now.AddDate(0, 0, -15),
		EndDate:     now.AddDate(0, 0, 15),
	})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		UserID:     "user-1",
		CategoryID: category.Data.ID,
		Title:      "Weekly groceries",
		Amount:     decimal.NewFromInt(380),
		Date:       now,
		Kind:       models.KindExpense,
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/notifications?user=user-1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var notifications v1.NotificationListResponse
	test.DecodeResponse(suite.T(), &r, &notifications)

	require.Len(suite.T(), notifications.Data, 1, "Expected exactly one notification")
	assert.Equal(suite.T(), models.TypeBudgetWarning, notifications.Data[0].Type)
	assert.Equal(suite.T(), "Budget Warning", notifications.Data[0].Title)
	assert.Contains(suite.T(), notifications.Data[0].Message, "76.0%")
	assert.Contains(suite.T(), notifications.Data[0].Message, "Groceries June")
}
