package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/tripbay/internal/models"
	"github.com/joshua-takyi/tripbay/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func CreateAdHandler(as *services.AdService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := currentActor(c)
		if !ok {
			return
		}
		if role != models.RoleOwner && role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, models.ErrorResponse("only service owners can submit advertisements"))
			return
		}

		var ad models.Advertisement
		if err := c.ShouldBindJSON(&ad); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := as.CreateAd(c.Request.Context(), &ad, userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Advertisement submitted for review"))
	}
}

func ApproveAdHandler(as *services.AdService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, role, ok := currentActor(c)
		if !ok {
			return
		}
		adID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid advertisement ID format"))
			return
		}

		ad, err := as.ApproveAd(c.Request.Context(), adID, role)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(ad, "Advertisement approved"))
	}
}

func RejectAdHandler(as *services.AdService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, role, ok := currentActor(c)
		if !ok {
			return
		}
		adID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid advertisement ID format"))
			return
		}

		var reqBody struct {
			Reason string `json:"reason" binding:"required"`
		}
		if err := c.ShouldBindJSON(&reqBody); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		ad, err := as.RejectAd(c.Request.Context(), adID, role, reqBody.Reason)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(ad, "Advertisement rejected"))
	}
}

func ListPendingAdsHandler(as *services.AdService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, role, ok := currentActor(c)
		if !ok {
			return
		}
		offset, limit, ok := pagination(c)
		if !ok {
			return
		}

		ads, total, err := as.ListPendingAds(c.Request.Context(), role, offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(ads, page, limit, total))
	}
}

func ListMyAdsHandler(as *services.AdService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := currentActor(c)
		if !ok {
			return
		}

		ads, err := as.ListAdsByOwner(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(ads, ""))
	}
}

func DeleteAdHandler(as *services.AdService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := currentActor(c)
		if !ok {
			return
		}
		adID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid advertisement ID format"))
			return
		}

		if err := as.DeleteAd(c.Request.Context(), adID, userID, role); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Advertisement deleted"))
	}
}
