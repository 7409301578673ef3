package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smarthome-backend/internal/model"
)

// GetTrackRecords handles GET /api/track-records. The optional equipment
// query parameter filters by target kind; without it every kind is
// returned, newest-modified first. The audit log has no write endpoints.
func (h *Handler) GetTrackRecords(c *gin.Context) {
	var kind *model.TargetKind
	if raw := c.Query("equipment"); raw != "" {
		k, err := model.ParseTargetKind(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		kind = &k
	}

	records, err := h.store.ListTrackRecords(c.Request.Context(), kind)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
