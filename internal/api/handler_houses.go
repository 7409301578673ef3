package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smarthome-backend/internal/store"
)

// pathID parses the :id route parameter. A false return means a response was
// already written.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

type houseRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateHouse handles POST /api/houses.
func (h *Handler) CreateHouse(c *gin.Context) {
	var req houseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	house, err := h.store.CreateHouse(c.Request.Context(), store.HouseParams{Name: req.Name})
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, house)
}

// GetHouse handles GET /api/houses/:id. The response includes the ids of the
// house's rooms and thermostats.
func (h *Handler) GetHouse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := h.store.GetHouse(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListHouses handles GET /api/houses.
func (h *Handler) ListHouses(c *gin.Context) {
	houses, err := h.store.ListHouses(c.Request.Context())
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, houses)
}

// UpdateHouse handles PUT /api/houses/:id.
func (h *Handler) UpdateHouse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req houseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	house, err := h.store.UpdateHouse(c.Request.Context(), id, store.HouseParams{Name: req.Name})
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, house)
}

// DeleteHouse handles DELETE /api/houses/:id.
func (h *Handler) DeleteHouse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteHouse(c.Request.Context(), id); err != nil {
		writeStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
