package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartspend/backend/internal/alerting"
	"github.com/smartspend/backend/internal/httputil"
	"github.com/smartspend/backend/internal/models"
)

// RegisterNotificationRoutes registers the routes for notifications with
// the RouterGroup that is passed.
func RegisterNotificationRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsNotificationList)
		r.GET("", GetNotifications)
		r.DELETE("", SweepNotifications)
	}

	{
		r.OPTIONS("/unread-count", OptionsNotificationUnreadCount)
		r.GET("/unread-count", GetNotificationUnreadCount)
	}

	{
		r.OPTIONS("/read-all", OptionsNotificationReadAll)
		r.POST("/read-all", ReadAllNotifications)
	}

	// Notification with ID
	{
		r.OPTIONS("/:id", OptionsNotificationDetail)
		r.PATCH("/:id/read", ReadNotification)
		r.DELETE("/:id", DeleteNotification)
	}
}

// userIDParameter reads the mandatory user parameter from the query
// string.
func userIDParameter(c *gin.Context) (string, error) {
	userID := c.Query("user")
	if userID == "" {
		return "", errUserIDParameter
	}

	return userID, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Notifications
// @Success		204
// @Router			/v1/notifications [options]
func OptionsNotificationList(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Notifications
// @Success		204
// @Router			/v1/notifications/unread-count [options]
func OptionsNotificationUnreadCount(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Notifications
// @Success		204
// @Router			/v1/notifications/read-all [options]
func OptionsNotificationReadAll(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Notifications
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/notifications/{id} [options]
func OptionsNotificationDetail(c *gin.Context) {
	httputil.OptionsPatchDelete(c)
}

// @Summary		Get notifications
// @Description	Returns the notifications of a user, newest first
// @Tags			Notifications
// @Produce		json
// @Success		200	{object}	NotificationListResponse
// @Failure		400	{object}	NotificationListResponse
// @Failure		500	{object}	NotificationListResponse
// @Param			user	query	string	true	"ID of the user"
// @Param			limit	query	int		false	"Maximum number of Notifications to return. Defaults to all."
// @Router			/v1/notifications [get]
func GetNotifications(c *gin.Context) {
	var filter NotificationQueryFilter
	_ = c.ShouldBindQuery(&filter)

	userID, err := userIDParameter(c)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, NotificationListResponse{
			Error: &s,
		})
		return
	}

	notifications, err := alerting.List(models.DB, userID, filter.Limit)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NotificationListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Notification, 0)
	for _, notification := range notifications {
		data = append(data, newNotification(c, notification))
	}

	c.JSON(http.StatusOK, NotificationListResponse{Data: data})
}

// @Summary		Get unread count
// @Description	Returns the number of unread notifications of a user
// @Tags			Notifications
// @Produce		json
// @Success		200	{object}	NotificationCountResponse
// @Failure		400	{object}	NotificationCountResponse
// @Failure		500	{object}	NotificationCountResponse
// @Param			user	query	string	true	"ID of the user"
// @Router			/v1/notifications/unread-count [get]
func GetNotificationUnreadCount(c *gin.Context) {
	userID, err := userIDParameter(c)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, NotificationCountResponse{
			Error: &s,
		})
		return
	}

	count, err := alerting.UnreadCount(models.DB, userID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NotificationCountResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, NotificationCountResponse{Data: count})
}

// @Summary		Mark notification as read
// @Description	Marks a notification as read. Marking a notification that is already read again is a no-op.
// @Tags			Notifications
// @Produce		json
// @Success		200	{object}	NotificationResponse
// @Failure		400	{object}	NotificationResponse
// @Failure		404	{object}	NotificationResponse
// @Failure		500	{object}	NotificationResponse
// @Param			id		path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			user	query	string	true	"ID of the user"
// @Router			/v1/notifications/{id}/read [patch]
func ReadNotification(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NotificationResponse{
			Error: &s,
		})
		return
	}

	userID, err := userIDParameter(c)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, NotificationResponse{
			Error: &s,
		})
		return
	}

	notification, err := alerting.MarkRead(models.DB, uri.ID, userID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NotificationResponse{
			Error: &s,
		})
		return
	}

	data := newNotification(c, notification)
	c.JSON(http.StatusOK, NotificationResponse{Data: &data})
}

// @Summary		Mark all notifications as read
// @Description	Marks all unread notifications of a user as read
// @Tags			Notifications
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			user	query	string	true	"ID of the user"
// @Router			/v1/notifications/read-all [post]
func ReadAllNotifications(c *gin.Context) {
	userID, err := userIDParameter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	err = alerting.MarkAllRead(models.DB, userID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Delete notification
// @Description	Deletes a notification. Notifications of other users can not be deleted.
// @Tags			Notifications
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id		path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			user	query	string	true	"ID of the user"
// @Router			/v1/notifications/{id} [delete]
func DeleteNotification(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	userID, err := userIDParameter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	err = alerting.Delete(models.DB, uri.ID, userID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Delete old notifications
// @Description	Deletes the notifications of a user older than maxAge days. Defaults to 30 days.
// @Tags			Notifications
// @Produce		json
// @Success		200	{object}	NotificationCountResponse
// @Failure		400	{object}	NotificationCountResponse
// @Failure		500	{object}	NotificationCountResponse
// @Param			user	query	string	true	"ID of the user"
// @Param			maxAge	query	int		false	"Maximum age in days. Defaults to 30."
// @Router			/v1/notifications [delete]
func SweepNotifications(c *gin.Context) {
	var filter NotificationQueryFilter
	_ = c.ShouldBindQuery(&filter)

	userID, err := userIDParameter(c)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, NotificationCountResponse{
			Error: &s,
		})
		return
	}

	removed, err := alerting.SweepOld(models.DB, userID, filter.MaxAge)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NotificationCountResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, NotificationCountResponse{Data: removed})
}
