package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/tripbay/internal/models"
	"github.com/joshua-takyi/tripbay/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func CreateReviewHandler(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := currentActor(c)
		if !ok {
			return
		}

		var reqBody struct {
			TargetID   string `json:"target_id" binding:"required"`
			TargetKind string `json:"target_kind" binding:"required"`
			Rating     int    `json:"rating" binding:"required"`
			Comment    string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&reqBody); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		targetID, err := uuid.Parse(reqBody.TargetID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid target ID format"))
			return
		}
		kind, err := models.ParseTargetKind(reqBody.TargetKind)
		if err != nil {
			respondError(c, err)
			return
		}

		review := &models.Review{
			AuthorID:   userID,
			TargetID:   targetID,
			TargetKind: kind,
			Rating:     reqBody.Rating,
			Comment:    reqBody.Comment,
		}

		created, summary, err := r.CreateReview(c.Request.Context(), review)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(gin.H{
			"review": created,
			"rating": summary,
		}, "Review created successfully"))
	}
}

func ListTargetReviewsHandler(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetID, err := uuid.Parse(c.Param("target_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid target ID format"))
			return
		}
		kind, err := models.ParseTargetKind(c.Query("kind"))
		if err != nil {
			respondError(c, err)
			return
		}

		reviews, err := r.GetReviewsByTarget(c.Request.Context(), targetID, kind)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(reviews, ""))
	}
}

func UpdateReviewHandler(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid review ID format"))
			return
		}

		userID, _, ok := currentActor(c)
		if !ok {
			return
		}

		var reqBody struct {
			Rating  int    `json:"rating" binding:"required"`
			Comment string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&reqBody); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		updated, summary, err := r.UpdateReview(c.Request.Context(), reviewID, userID, reqBody.Rating, reqBody.Comment)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"review": updated,
			"rating": summary,
		}, "Review updated successfully"))
	}
}

func DeleteReviewHandler(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid review ID format"))
			return
		}

		userID, role, ok := currentActor(c)
		if !ok {
			return
		}

		summary, err := r.DeleteReview(c.Request.Context(), reviewID, userID, role)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"rating": summary}, "Review deleted"))
	}
}
