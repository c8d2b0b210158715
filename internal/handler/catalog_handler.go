package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"academico/internal/service"
)

// CatalogHandler handles curriculum catalog read endpoints.
type CatalogHandler struct {
	catalogs service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogs service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogs: catalogs}
}

// List handles GET /api/v1/catalogs.
func (h *CatalogHandler) List(c *gin.Context) {
	catalogs, err := h.catalogs.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, catalogs)
}

// GetDetail handles GET /api/v1/catalogs/:id.
func (h *CatalogHandler) GetDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid catalog id")
		return
	}

	detail, err := h.catalogs.GetDetail(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, detail)
}
