package handlers

import (
	"net/http"

	"pet_discovery/internal/models"

	"github.com/gin-gonic/gin"
)

// @Summary      List service categories
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "services, other_label"
// @Router       /api/v1/services [get]
func (h *Handler) listServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"services":    h.services.Catalog.Services(),
		"other_label": models.OtherServiceLabel,
	})
}
