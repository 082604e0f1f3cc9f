package handlers

import (
	"net/http"

	"pet_discovery/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateCompanyRequest is the admin payload for a new company listing.
type CreateCompanyRequest struct {
	Name     string `json:"name" binding:"required" example:"멍멍 산책"`
	RoadAddr string `json:"road_addr" example:"서울 강남구 테헤란로 1"`
	Tel      string `json:"tel" example:"02-123-4567"`
	// Allowed: walk, bath, boarding, visit, training, grooming
	RepService  string  `json:"rep_service" binding:"required" example:"walk"`
	Description string  `json:"description"`
	X           float64 `json:"x" example:"127.0276"`
	Y           float64 `json:"y" example:"37.4979"`
}

// @Summary      Create a company
// @Description  Open sessions keep their listing; new sessions see the company. The signed-in admin is recorded as its creator.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body      CreateCompanyRequest  true  "Company"
// @Success      201   {object}  map[string]int
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/companies [post]
// @Security     BearerAuth
func (h *Handler) createCompany(c *gin.Context) {
	var req CreateCompanyRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	admin := adminID(c)
	id, err := h.services.Companies.Create(c.Request.Context(), models.Company{
		Name:        req.Name,
		RoadAddr:    req.RoadAddr,
		Tel:         req.Tel,
		RepService:  models.ServiceID(req.RepService),
		Description: req.Description,
		Coordinates: models.Coordinates{X: req.X, Y: req.Y},
		CreatedBy:   admin,
	})
	if err != nil {
		h.respondError(c, err, "company_create_failed", "name", req.Name, "admin_id", admin)
		return
	}
	if h.log != nil {
		h.log.Infow("company_created", "id", id, "admin_id", admin)
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}
