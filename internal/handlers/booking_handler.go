package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/tripbay/internal/models"
	"github.com/joshua-takyi/tripbay/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func CreateBookingHandler(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := currentActor(c)
		if !ok {
			return
		}

		var reqBody struct {
			ServiceID       string    `json:"service_id" binding:"required"`
			ServiceDate     time.Time `json:"service_date" binding:"required"`
			NumberOfPeople  int       `json:"number_of_people"`
			SpecialRequests string    `json:"special_requests"`
		}
		if err := c.ShouldBindJSON(&reqBody); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		serviceID, err := uuid.Parse(reqBody.ServiceID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid service ID format"))
			return
		}

		booking, err := b.CreateBooking(c.Request.Context(), userID, serviceID, reqBody.ServiceDate, reqBody.NumberOfPeople, reqBody.SpecialRequests)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(booking, "Booking created successfully"))
	}
}

func GetBookingHandler(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid booking ID format"))
			return
		}

		userID, role, ok := currentActor(c)
		if !ok {
			return
		}

		booking, err := b.GetBooking(c.Request.Context(), bookingID, userID, role)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(booking, ""))
	}
}

func ListMyBookingsHandler(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := currentActor(c)
		if !ok {
			return
		}
		offset, limit, ok := pagination(c)
		if !ok {
			return
		}

		bookings, total, err := b.ListBookingsByTourist(c.Request.Context(), userID, offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(bookings, page, limit, total))
	}
}

func ListServiceBookingsHandler(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		serviceID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid service ID format"))
			return
		}
		userID, role, ok := currentActor(c)
		if !ok {
			return
		}
		offset, limit, ok := pagination(c)
		if !ok {
			return
		}

		bookings, total, err := b.ListBookingsByService(c.Request.Context(), serviceID, userID, role, offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(bookings, page, limit, total))
	}
}

func UpdateBookingDetailsHandler(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid booking ID format"))
			return
		}

		userID, _, ok := currentActor(c)
		if !ok {
			return
		}

		var reqBody struct {
			ServiceDate     *time.Time `json:"service_date"`
			NumberOfPeople  *int       `json:"number_of_people"`
			SpecialRequests *string    `json:"special_requests"`
		}
		if err := c.ShouldBindJSON(&reqBody); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		booking, err := b.UpdateBookingDetails(c.Request.Context(), bookingID, userID, services.BookingDetailsUpdate{
			ServiceDate:     reqBody.ServiceDate,
			NumberOfPeople:  reqBody.NumberOfPeople,
			SpecialRequests: reqBody.SpecialRequests,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(booking, "Booking updated successfully"))
	}
}

func TransitionBookingHandler(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid booking ID format"))
			return
		}

		userID, role, ok := currentActor(c)
		if !ok {
			return
		}

		var reqBody struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&reqBody); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		booking, err := b.TransitionBooking(c.Request.Context(), bookingID, models.BookingStatus(reqBody.Status), userID, role)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(booking, "Booking status updated"))
	}
}

func DeleteBookingHandler(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid booking ID format"))
			return
		}

		userID, role, ok := currentActor(c)
		if !ok {
			return
		}

		if err := b.HardDeleteBooking(c.Request.Context(), bookingID, userID, role); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Booking deleted"))
	}
}
