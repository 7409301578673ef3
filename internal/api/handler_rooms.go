package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smarthome-backend/internal/store"
)

type roomRequest struct {
	Name               string   `json:"name" binding:"required"`
	House              int64    `json:"house" binding:"required"`
	CurrentTemperature *float64 `json:"current_temperature" binding:"required"`
}

func (r roomRequest) params() store.RoomParams {
	return store.RoomParams{
		Name:               r.Name,
		HouseID:            r.House,
		CurrentTemperature: *r.CurrentTemperature,
	}
}

// CreateRoom handles POST /api/rooms.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.store.CreateRoom(c.Request.Context(), req.params())
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// GetRoom handles GET /api/rooms/:id. The response includes the ids of the
// room's lights.
func (h *Handler) GetRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := h.store.GetRoom(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListRooms handles GET /api/rooms.
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.store.ListRooms(c.Request.Context())
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// UpdateRoom handles PUT /api/rooms/:id. A temperature change lands in the
// audit log and is fanned out to push subscribers.
func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, recordIDs, err := h.store.UpdateRoom(c.Request.Context(), id, req.params())
	if err != nil {
		writeStoreError(c, err)
		return
	}
	h.dispatch(recordIDs)
	c.JSON(http.StatusOK, room)
}

// DeleteRoom handles DELETE /api/rooms/:id.
func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteRoom(c.Request.Context(), id); err != nil {
		writeStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
