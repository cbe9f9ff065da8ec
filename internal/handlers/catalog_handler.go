package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/tripbay/internal/models"
	"github.com/joshua-takyi/tripbay/internal/services"
)

func CreateServiceHandler(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := currentActor(c)
		if !ok {
			return
		}
		if role != models.RoleOwner && role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, models.ErrorResponse("only service owners can create listings"))
			return
		}

		var svc models.TourService
		if err := c.ShouldBindJSON(&svc); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := cs.CreateService(c.Request.Context(), &svc, userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Service created successfully"))
	}
}

func GetServiceHandler(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid service ID format"))
			return
		}

		svc, err := cs.GetServiceByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(svc, ""))
	}
}

func ListServicesHandler(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit, ok := pagination(c)
		if !ok {
			return
		}

		items, total, err := cs.ListServices(c.Request.Context(), offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(items, page, limit, total))
	}
}

// searchQuery lifts the recognised catalog filters out of the query string.
func searchQuery(c *gin.Context) map[string]interface{} {
	query := make(map[string]interface{})
	for _, key := range []string{"q", "location", "category"} {
		if v := c.Query(key); v != "" {
			query[key] = v
		}
	}
	return query
}

func SearchServicesHandler(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit, ok := pagination(c)
		if !ok {
			return
		}

		items, total, err := cs.SearchServices(c.Request.Context(), searchQuery(c), offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(items, page, limit, total))
	}
}

func UpdateServiceHandler(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid service ID format"))
			return
		}
		userID, role, ok := currentActor(c)
		if !ok {
			return
		}

		var update map[string]interface{}
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		updated, err := cs.UpdateService(c.Request.Context(), id, update, userID, role)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Service updated successfully"))
	}
}

func DeleteServiceHandler(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid service ID format"))
			return
		}
		userID, role, ok := currentActor(c)
		if !ok {
			return
		}

		if err := cs.DeleteService(c.Request.Context(), id, userID, role); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Service deleted"))
	}
}

func CreateAttractionHandler(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := currentActor(c)
		if !ok {
			return
		}
		if role != models.RoleOwner && role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, models.ErrorResponse("only service owners can create listings"))
			return
		}

		var attraction models.Attraction
		if err := c.ShouldBindJSON(&attraction); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := cs.CreateAttraction(c.Request.Context(), &attraction, userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Attraction created successfully"))
	}
}

func GetAttractionHandler(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid attraction ID format"))
			return
		}

		attraction, err := cs.GetAttractionByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(attraction, ""))
	}
}

func ListAttractionsHandler(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit, ok := pagination(c)
		if !ok {
			return
		}

		items, total, err := cs.ListAttractions(c.Request.Context(), offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(items, page, limit, total))
	}
}

func SearchAttractionsHandler(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit, ok := pagination(c)
		if !ok {
			return
		}

		items, total, err := cs.SearchAttractions(c.Request.Context(), searchQuery(c), offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(items, page, limit, total))
	}
}

func UpdateAttractionHandler(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid attraction ID format"))
			return
		}
		userID, role, ok := currentActor(c)
		if !ok {
			return
		}

		var update map[string]interface{}
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		updated, err := cs.UpdateAttraction(c.Request.Context(), id, update, userID, role)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Attraction updated successfully"))
	}
}

func DeleteAttractionHandler(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid attraction ID format"))
			return
		}
		userID, role, ok := currentActor(c)
		if !ok {
			return
		}

		if err := cs.DeleteAttraction(c.Request.Context(), id, userID, role); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Attraction deleted"))
	}
}
