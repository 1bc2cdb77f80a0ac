package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartspend/backend/internal/aggregation"
	"github.com/smartspend/backend/internal/alerting"
	"github.com/smartspend/backend/internal/httputil"
	"github.com/smartspend/backend/internal/models"
	"github.com/smartspend/backend/internal/types"
)

type SummaryResponse struct {
	Data  []aggregation.Summary `json:"data"`                                             // Aggregated totals, largest first
	Error *string               `json:"error" example:"the userId parameter must be set"` // The error, if any occurred
}

type TrendResponse struct {
	Data  []aggregation.TrendPoint `json:"data"`                                             // One entry per month, oldest first
	Error *string                  `json:"error" example:"the userId parameter must be set"` // The error, if any occurred
}

type SummaryQuery struct {
	GroupBy   string                 `form:"groupBy"`                                         // Group totals by "category" or "month". Defaults to "category".
	Kind      models.TransactionKind `form:"kind"`                                            // Only aggregate transactions of this kind
	FromDate  time.Time              `form:"fromDate" time_format:"2006-01-02" time_utc:"1"`  // Transactions at or after this date
	UntilDate time.Time              `form:"untilDate" time_format:"2006-01-02" time_utc:"1"` // Transactions at or before this date
}

type TrendQuery struct {
	Months int `form:"months"` // Number of trailing months. Defaults to 6.
}

// RegisterReportRoutes registers the routes for reports with
// the RouterGroup that is passed.
func RegisterReportRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/summary", OptionsReportSummary)
		r.GET("/summary", GetSummaryReport)
	}

	{
		r.OPTIONS("/trend", OptionsReportTrend)
		r.GET("/trend", GetTrendReport)
	}

	{
		r.OPTIONS("/monthly-notification", OptionsReportMonthlyNotification)
		r.POST("/monthly-notification", CreateMonthlyReportNotification)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/reports/summary [options]
func OptionsReportSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/reports/trend [options]
func OptionsReportTrend(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/reports/monthly-notification [options]
func OptionsReportMonthlyNotification(c *gin.Context) {
	httputil.OptionsPost(c)
}

// reportTransactions loads the transactions of the user for the
// summary report, applying the optional kind and date filters.
func reportTransactions(userID string, query SummaryQuery) ([]models.Transaction, error) {
	q := models.DB.Where("user_id = ?", userID)

	if query.Kind != "" {
		q = q.Where("kind = ?", query.Kind)
	}

	if !query.FromDate.IsZero() {
		q = q.Where("date(date) >= date(?)", query.FromDate)
	}

	if !query.UntilDate.IsZero() {
		q = q.Where("date(date) <= date(?)", query.UntilDate)
	}

	var transactions []models.Transaction
	err := q.Find(&transactions).Error
	return transactions, err
}

// @Summary		Get spending summary
// @Description	Returns the transaction totals of a user grouped by category or month, largest first
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	SummaryResponse
// @Failure		400	{object}	SummaryResponse
// @Failure		500	{object}	SummaryResponse
// @Param			user		query	string	true	"ID of the user"
// @Param			groupBy		query	string	false	"Group by 'category' or 'month'. Defaults to 'category'."
// @Param			kind		query	string	false	"Only aggregate transactions of this kind"
// @Param			fromDate	query	string	false	"Transactions at or after this date (YYYY-MM-DD)"
// @Param			untilDate	query	string	false	"Transactions at or before this date (YYYY-MM-DD)"
// @Router			/v1/reports/summary [get]
func GetSummaryReport(c *gin.Context) {
	userID, err := userIDParameter(c)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, SummaryResponse{
			Error: &s,
		})
		return
	}

	var query SummaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, SummaryResponse{
			Error: &s,
		})
		return
	}

	if query.GroupBy == "" {
		query.GroupBy = "category"
	}

	if query.GroupBy != "category" && query.GroupBy != "month" {
		s := errGroupByInvalid.Error()
		c.JSON(http.StatusBadRequest, SummaryResponse{
			Error: &s,
		})
		return
	}

	transactions, err := reportTransactions(userID, query)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	var data []aggregation.Summary

	switch query.GroupBy {
	case "category":
		var categories []models.Category
		err = models.DB.Find(&categories).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), SummaryResponse{
				Error: &s,
			})
			return
		}

		data = aggregation.ByCategory(transactions, categories)

	case "month":
		data = aggregation.ByMonth(transactions)
	}

	c.JSON(http.StatusOK, SummaryResponse{Data: data})
}

// @Summary		Get monthly trend
// @Description	Returns the expense and income totals of a user for the trailing months, oldest first. Months without transactions are included with zero totals.
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	TrendResponse
// @Failure		400	{object}	TrendResponse
// @Failure		500	{object}	TrendResponse
// @Param			user	query	string	true	"ID of the user"
// @Param			months	query	int		false	"Number of trailing months. Defaults to 6."
// @Router			/v1/reports/trend [get]
func GetTrendReport(c *gin.Context) {
	userID, err := userIDParameter(c)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, TrendResponse{
			Error: &s,
		})
		return
	}

	var query TrendQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, TrendResponse{
			Error: &s,
		})
		return
	}

	if query.Months == 0 {
		query.Months = 6
	}

	if query.Months < 1 || query.Months > 120 {
		s := errMonthsInvalid.Error()
		c.JSON(http.StatusBadRequest, TrendResponse{
			Error: &s,
		})
		return
	}

	var transactions []models.Transaction
	err = models.DB.Where("user_id = ?", userID).Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TrendResponse{
			Error: &s,
		})
		return
	}

	data := aggregation.MonthlyTrend(transactions, types.MonthOf(time.Now().In(time.UTC)), query.Months)
	c.JSON(http.StatusOK, TrendResponse{Data: data})
}

// @Summary		Send monthly report notification
// @Description	Notifies a user that their monthly report is ready. Respects the user's notification preferences.
// @Tags			Reports
// @Produce		json
// @Success		201	{object}	NotificationResponse
// @Success		204
// @Failure		400	{object}	NotificationResponse
// @Failure		500	{object}	NotificationResponse
// @Param			user	query	string	true	"ID of the user"
// @Router			/v1/reports/monthly-notification [post]
func CreateMonthlyReportNotification(c *gin.Context) {
	userID, err := userIDParameter(c)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, NotificationResponse{
			Error: &s,
		})
		return
	}

	notification, err := alerting.NotifyMonthlyReport(models.DB, userID, time.Now().In(time.UTC))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NotificationResponse{
			Error: &s,
		})
		return
	}

	// The user has monthly report notifications disabled
	if notification == nil {
		c.JSON(http.StatusNoContent, nil)
		return
	}

	data := newNotification(c, *notification)
	c.JSON(http.StatusCreated, NotificationResponse{Data: &data})
}
