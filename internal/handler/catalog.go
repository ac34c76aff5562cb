package handler

import (
	"net/http"

	"vedacart/internal/apierror"
	"vedacart/internal/catalog"
	"vedacart/internal/dto"
	"vedacart/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	svc *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// List returns every product in the reduced browse projection.
func (h *CatalogHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductListResponse{Data: list})
}

// Browse returns the summaries matching the three-way filter. Unset or "all"
// parameters filter nothing.
func (h *CatalogHandler) Browse(c *gin.Context) {
	var filter dto.CatalogFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	list, err := h.svc.Filtered(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductListResponse{Data: list})
}

// Filters returns the cascading filter options for the selected category.
func (h *CatalogHandler) Filters(c *gin.Context) {
	category := c.DefaultQuery("category", catalog.All)
	resp, err := h.svc.FilterOptions(c.Request.Context(), category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
