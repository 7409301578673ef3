package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smarthome-backend/internal/model"
	"smarthome-backend/internal/store"
)

type lightRequest struct {
	Name  string `json:"name" binding:"required"`
	Room  int64  `json:"room" binding:"required"`
	State string `json:"state" binding:"omitempty,oneof=on off"`
}

func (r lightRequest) params() store.LightParams {
	return store.LightParams{
		Name:   r.Name,
		RoomID: r.Room,
		State:  model.LightState(r.State),
	}
}

// CreateLight handles POST /api/lights. State defaults to off.
func (h *Handler) CreateLight(c *gin.Context) {
	var req lightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	light, err := h.store.CreateLight(c.Request.Context(), req.params())
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, light)
}

// GetLight handles GET /api/lights/:id.
func (h *Handler) GetLight(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	light, err := h.store.GetLight(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, light)
}

// ListLights handles GET /api/lights.
func (h *Handler) ListLights(c *gin.Context) {
	lights, err := h.store.ListLights(c.Request.Context())
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, lights)
}

// UpdateLight handles PUT /api/lights/:id. A state flip lands in the audit
// log and is fanned out to push subscribers.
func (h *Handler) UpdateLight(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req lightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	light, recordIDs, err := h.store.UpdateLight(c.Request.Context(), id, req.params())
	if err != nil {
		writeStoreError(c, err)
		return
	}
	h.dispatch(recordIDs)
	c.JSON(http.StatusOK, light)
}

// DeleteLight handles DELETE /api/lights/:id.
func (h *Handler) DeleteLight(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteLight(c.Request.Context(), id); err != nil {
		writeStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
