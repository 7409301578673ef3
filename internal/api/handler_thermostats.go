package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smarthome-backend/internal/model"
	"smarthome-backend/internal/store"
)

type thermostatRequest struct {
	Name                string   `json:"name" binding:"required"`
	House               int64    `json:"house" binding:"required"`
	Mode                string   `json:"mode" binding:"omitempty,oneof=off fan auto cool heat"`
	CurrentTemperature  *float64 `json:"current_temperature" binding:"required"`
	TemperatureSetPoint *float64 `json:"temperature_set_point" binding:"required"`
}

func (r thermostatRequest) params() store.ThermostatParams {
	return store.ThermostatParams{
		Name:                r.Name,
		HouseID:             r.House,
		Mode:                model.Mode(r.Mode),
		CurrentTemperature:  *r.CurrentTemperature,
		TemperatureSetPoint: *r.TemperatureSetPoint,
	}
}

// CreateThermostat handles POST /api/thermostats. Mode defaults to off.
func (h *Handler) CreateThermostat(c *gin.Context) {
	var req thermostatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	thermostat, err := h.store.CreateThermostat(c.Request.Context(), req.params())
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, thermostat)
}

// GetThermostat handles GET /api/thermostats/:id.
func (h *Handler) GetThermostat(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	thermostat, err := h.store.GetThermostat(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, thermostat)
}

// ListThermostats handles GET /api/thermostats.
func (h *Handler) ListThermostats(c *gin.Context) {
	thermostats, err := h.store.ListThermostats(c.Request.Context())
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, thermostats)
}

// UpdateThermostat handles PUT /api/thermostats/:id. Each changed monitored
// field lands in the audit log and is fanned out to push subscribers.
func (h *Handler) UpdateThermostat(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req thermostatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	thermostat, recordIDs, err := h.store.UpdateThermostat(c.Request.Context(), id, req.params())
	if err != nil {
		writeStoreError(c, err)
		return
	}
	h.dispatch(recordIDs)
	c.JSON(http.StatusOK, thermostat)
}

// DeleteThermostat handles DELETE /api/thermostats/:id.
func (h *Handler) DeleteThermostat(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteThermostat(c.Request.Context(), id); err != nil {
		writeStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
