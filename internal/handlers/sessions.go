package handlers

import (
	"errors"
	"io"
	"net/http"

	"pet_discovery/internal/discovery"
	"pet_discovery/internal/models"

	"github.com/gin-gonic/gin"
)

type mountRequest struct {
	// Page size; 0 uses the server default.
	PageSize int `json:"page_size,omitempty" example:"6"`
}

type filterRequest struct {
	Query string `json:"query" example:"강남"`
	// Service category id; empty means all. Allowed: walk, bath, boarding, visit, training, grooming
	Service string `json:"service" example:"walk"`
}

type pageRequest struct {
	Page *int `json:"page" binding:"required" example:"2"`
}

type companyRef struct {
	CompanyID int `json:"company_id" binding:"required" example:"3"`
}

// detailResponse is the detail panel: open is false when nothing is selected.
type detailResponse struct {
	Open   bool              `json:"open"`
	Detail *discovery.Detail `json:"detail"`
}

// @Summary      Mount a discovery view
// @Description  Fetches the company listing once and returns the initial view (no filter, page 1, no selection).
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body      mountRequest  false  "Options"
// @Success      201   {object}  service.ViewState
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/sessions [post]
func (h *Handler) mountSession(c *gin.Context) {
	var req mountRequest
	if body := c.Request.Body; body != nil && body != http.NoBody {
		// chunked requests carry no length; an empty one means defaults
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			h.badRequest(c, err)
			return
		}
	}
	st, err := h.services.Discovery.Mount(c.Request.Context(), req.PageSize)
	if err != nil {
		h.respondError(c, err, "session_mount_failed", "page_size", req.PageSize)
		return
	}
	c.JSON(http.StatusCreated, st)
}

// @Summary      Unmount a discovery view
// @Tags         sessions
// @Param        id   path  string  true  "Session id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/sessions/{id} [delete]
func (h *Handler) unmountSession(c *gin.Context) {
	if err := h.services.Discovery.Unmount(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "session_unmount_failed", "session_id", c.Param("id"))
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Get view output
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  service.ViewState
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/sessions/{id} [get]
func (h *Handler) getSession(c *gin.Context) {
	st, err := h.services.Discovery.View(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "session_view_failed", "session_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Set search text and service filter
// @Description  Resets the view to page 1. The current selection is kept even when filtered out.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Session id"
// @Param        body  body      filterRequest  true  "Filter"
// @Success      200   {object}  service.ViewState
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/sessions/{id}/filter [put]
func (h *Handler) setFilter(c *gin.Context) {
	var req filterRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	st, err := h.services.Discovery.SetFilter(c.Request.Context(), c.Param("id"), discovery.FilterState{
		Query:   req.Query,
		Service: models.ServiceID(req.Service),
	})
	if err != nil {
		h.respondError(c, err, "session_set_filter_failed", "session_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Go to page
// @Description  Out-of-range pages are clamped.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Session id"
// @Param        body  body      pageRequest  true  "Page"
// @Success      200   {object}  service.ViewState
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/sessions/{id}/page [put]
func (h *Handler) setPage(c *gin.Context) {
	var req pageRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	st, err := h.services.Discovery.SetPage(c.Request.Context(), c.Param("id"), *req.Page)
	if err != nil {
		h.respondError(c, err, "session_set_page_failed", "session_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Select a company from the list
// @Description  Clicks the company's map marker. With a map attached over WebSocket the selection applies once the map reports the click; a company without a marker is reported in last_miss.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path      string      true  "Session id"
// @Param        body  body      companyRef  true  "Company"
// @Success      200   {object}  service.ViewState
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/sessions/{id}/select [post]
func (h *Handler) selectFromList(c *gin.Context) {
	var req companyRef
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	st, err := h.services.Discovery.SelectFromList(c.Request.Context(), c.Param("id"), req.CompanyID)
	if err != nil {
		h.respondError(c, err, "session_select_failed", "session_id", c.Param("id"), "company_id", req.CompanyID)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Report a marker click
// @Description  For clients without the WebSocket bridge.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path      string      true  "Session id"
// @Param        body  body      companyRef  true  "Company"
// @Success      200   {object}  service.ViewState
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/sessions/{id}/map-click [post]
func (h *Handler) mapClick(c *gin.Context) {
	var req companyRef
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	st, err := h.services.Discovery.MapClick(c.Request.Context(), c.Param("id"), req.CompanyID)
	if err != nil {
		h.respondError(c, err, "session_map_click_failed", "session_id", c.Param("id"), "company_id", req.CompanyID)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Close the detail panel
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  service.ViewState
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/sessions/{id}/selection [delete]
func (h *Handler) clearSelection(c *gin.Context) {
	st, err := h.services.Discovery.ClearSelection(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "session_clear_failed", "session_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Get the detail panel
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  detailResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/sessions/{id}/detail [get]
func (h *Handler) getDetail(c *gin.Context) {
	d, ok, err := h.services.Discovery.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "session_detail_failed", "session_id", c.Param("id"))
		return
	}
	resp := detailResponse{Open: ok}
	if ok {
		resp.Detail = &d
	}
	c.JSON(http.StatusOK, resp)
}
