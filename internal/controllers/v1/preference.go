package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartspend/backend/internal/httputil"
	"github.com/smartspend/backend/internal/models"
	"github.com/smartspend/backend/internal/types"
)

// PreferenceEditable represents all user configurable parameters
type PreferenceEditable struct {
	UserID string `json:"userId" example:"b5f29991-4bd9-4779-9b27-50e14d4f56a1"` // ID of the user the preferences belong to

	EnableBudgetWarnings    bool  `json:"enableBudgetWarnings" example:"true" default:"true"`
	WarningThresholdPercent int64 `json:"warningThresholdPercent" example:"75" default:"75"` // Budget consumption in percent at which a warning is sent
	EnableBudgetExceeded    bool  `json:"enableBudgetExceeded" example:"true" default:"true"`
	EnableBudgetCritical    bool  `json:"enableBudgetCritical" example:"true" default:"true"`
	EnableExpenseAdded      bool  `json:"enableExpenseAdded" example:"false" default:"false"`
	EnableMonthlyReports    bool  `json:"enableMonthlyReports" example:"true" default:"true"`

	EnableInApp bool `json:"enableInApp" example:"true" default:"true"`
	EnableEmail bool `json:"enableEmail" example:"false" default:"false"`

	EnableQuietHours bool            `json:"enableQuietHours" example:"false" default:"false"`
	QuietHoursStart  types.TimeOfDay `json:"quietHoursStart" example:"22:00:00"`
	QuietHoursEnd    types.TimeOfDay `json:"quietHoursEnd" example:"08:00:00"`
}

// model returns the database resource for the API representation of the editable fields
func (editable PreferenceEditable) model() models.NotificationPreference {
	return models.NotificationPreference{
		UserID:                  editable.UserID,
		EnableBudgetWarnings:    editable.EnableBudgetWarnings,
		WarningThresholdPercent: editable.WarningThresholdPercent,
		EnableBudgetExceeded:    editable.EnableBudgetExceeded,
		EnableBudgetCritical:    editable.EnableBudgetCritical,
		EnableExpenseAdded:      editable.EnableExpenseAdded,
		EnableMonthlyReports:    editable.EnableMonthlyReports,
		EnableInApp:             editable.EnableInApp,
		EnableEmail:             editable.EnableEmail,
		EnableQuietHours:        editable.EnableQuietHours,
		QuietHoursStart:         editable.QuietHoursStart,
		QuietHoursEnd:           editable.QuietHoursEnd,
	}
}

type PreferenceResponse struct {
	Data  *models.NotificationPreference `json:"data"`                                             // Data for the preferences
	Error *string                        `json:"error" example:"the userId parameter must be set"` // The error, if any occurred
}

// RegisterPreferenceRoutes registers the routes for notification
// preferences with the RouterGroup that is passed.
func RegisterPreferenceRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsPreference)
	r.GET("", GetPreference)
	r.PUT("", UpdatePreference)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Preferences
// @Success		204
// @Router			/v1/preferences [options]
func OptionsPreference(c *gin.Context) {
	httputil.OptionsGetPut(c)
}

// @Summary		Get notification preferences
// @Description	Returns the notification preferences of a user. Users that never stored any get the defaults, nothing is persisted by this call.
// @Tags			Preferences
// @Produce		json
// @Success		200	{object}	PreferenceResponse
// @Failure		400	{object}	PreferenceResponse
// @Failure		500	{object}	PreferenceResponse
// @Param			user	query	string	true	"ID of the user"
// @Router			/v1/preferences [get]
func GetPreference(c *gin.Context) {
	userID, err := userIDParameter(c)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, PreferenceResponse{
			Error: &s,
		})
		return
	}

	var preference models.NotificationPreference
	err = models.DB.Where(&models.NotificationPreference{UserID: userID}).First(&preference).Error
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			preference = models.DefaultPreference(userID)
			c.JSON(http.StatusOK, PreferenceResponse{Data: &preference})
			return
		}

		s := err.Error()
		c.JSON(status(err), PreferenceResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, PreferenceResponse{Data: &preference})
}

// @Summary		Update notification preferences
// @Description	Stores the notification preferences of a user, creating them if none exist yet
// @Tags			Preferences
// @Accept			json
// @Produce		json
// @Success		200			{object}	PreferenceResponse
// @Success		201			{object}	PreferenceResponse
// @Failure		400			{object}	PreferenceResponse
// @Failure		500			{object}	PreferenceResponse
// @Param			preference	body		PreferenceEditable	true	"Preferences"
// @Router			/v1/preferences [put]
func UpdatePreference(c *gin.Context) {
	var editable PreferenceEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PreferenceResponse{
			Error: &s,
		})
		return
	}

	if editable.UserID == "" {
		s := errUserIDParameter.Error()
		c.JSON(http.StatusBadRequest, PreferenceResponse{
			Error: &s,
		})
		return
	}

	preference := editable.model()

	var existing models.NotificationPreference
	err = models.DB.Where(&models.NotificationPreference{UserID: editable.UserID}).First(&existing).Error
	if err != nil {
		if !errors.Is(err, models.ErrResourceNotFound) {
			s := err.Error()
			c.JSON(status(err), PreferenceResponse{
				Error: &s,
			})
			return
		}

		err = models.DB.Create(&preference).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), PreferenceResponse{
				Error: &s,
			})
			return
		}

		c.JSON(http.StatusCreated, PreferenceResponse{Data: &preference})
		return
	}

	preference.DefaultModel = existing.DefaultModel
	err = models.DB.Save(&preference).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PreferenceResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, PreferenceResponse{Data: &preference})
}
