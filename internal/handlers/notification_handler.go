package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/tripbay/internal/models"
	"github.com/joshua-takyi/tripbay/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ListNotificationsHandler(ns *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := currentActor(c)
		if !ok {
			return
		}
		offset, limit, ok := pagination(c)
		if !ok {
			return
		}

		notifications, total, err := ns.GetNotificationsByUser(c.Request.Context(), userID, offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(notifications, page, limit, total))
	}
}

func MarkNotificationReadHandler(ns *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := currentActor(c)
		if !ok {
			return
		}
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid notification ID format"))
			return
		}

		if err := ns.MarkRead(c.Request.Context(), userID, id); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Notification marked as read"))
	}
}

func MarkAllNotificationsReadHandler(ns *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := currentActor(c)
		if !ok {
			return
		}

		if err := ns.MarkAllRead(c.Request.Context(), userID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "All notifications marked as read"))
	}
}
