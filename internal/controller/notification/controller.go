// Package notification provides HTTP handlers for in-app notifications.
package notification

import (
	"net/http"

	"findjob-backend/internal/service"
	"findjob-backend/internal/utilities"

	"github.com/gin-gonic/gin"
)

// NotificationController handles endpoints under /notifications.
type NotificationController struct {
	Notifications *service.NotificationService
}

// NewNotificationController creates a new instance of NotificationController.
func NewNotificationController(notifications *service.NotificationService) *NotificationController {
	return &NotificationController{
		Notifications: notifications,
	}
}

// GetNotifications lists the logged in user's notifications, newest first.
// @Summary List notifications
// @Tags Notification
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param unread query boolean false "Only unread notifications"
// @Success 200 {array} model.Notification
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /notifications [get]
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	unread := c.Query("unread") == "true"
	notifications, err := nc.Notifications.List(c.Request.Context(), utilities.OptionalUser(c), unread)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead flags a notification as read.
// @Summary Mark notification as read
// @Tags Notification
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Notification ID"
// @Success 200 {object} model.Notification
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Notification not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /notifications/{id}/read [patch]
func (nc *NotificationController) MarkNotificationRead(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}
	n, err := nc.Notifications.MarkRead(c.Request.Context(), utilities.OptionalUser(c), id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}
