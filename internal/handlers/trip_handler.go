package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/tripbay/internal/models"
	"github.com/joshua-takyi/tripbay/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func CreateTripHandler(ts *services.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := currentActor(c)
		if !ok {
			return
		}

		var trip models.Trip
		if err := c.ShouldBindJSON(&trip); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		trip.TouristID = userID

		created, err := ts.CreateTrip(c.Request.Context(), &trip)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Trip created successfully"))
	}
}

func GetTripHandler(ts *services.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := currentActor(c)
		if !ok {
			return
		}
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid trip ID format"))
			return
		}

		trip, err := ts.GetTrip(c.Request.Context(), id, userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(trip, ""))
	}
}

func ListTripsHandler(ts *services.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := currentActor(c)
		if !ok {
			return
		}

		trips, err := ts.ListTrips(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(trips, ""))
	}
}

func UpdateTripHandler(ts *services.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := currentActor(c)
		if !ok {
			return
		}
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid trip ID format"))
			return
		}

		var update map[string]interface{}
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		trip, err := ts.UpdateTrip(c.Request.Context(), id, userID, update)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(trip, "Trip updated successfully"))
	}
}

func DeleteTripHandler(ts *services.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := currentActor(c)
		if !ok {
			return
		}
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid trip ID format"))
			return
		}

		if err := ts.DeleteTrip(c.Request.Context(), id, userID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Trip deleted"))
	}
}

// SendTripRemindersHandler kicks off the reminder sweep for trips starting
// inside the requested window. Admin only, intended to be hit by a scheduler.
func SendTripRemindersHandler(ts *services.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, role, ok := currentActor(c)
		if !ok {
			return
		}
		if role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, models.ErrorResponse("admin access required"))
			return
		}

		window := 48 * time.Hour
		if raw := c.Query("window"); raw != "" {
			parsed, err := time.ParseDuration(raw)
			if err != nil || parsed <= 0 {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid window duration"))
				return
			}
			window = parsed
		}

		sent, err := ts.SendUpcomingReminders(c.Request.Context(), window)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"reminders_sent": sent}, ""))
	}
}
