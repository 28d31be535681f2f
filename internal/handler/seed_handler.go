package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"medibook/internal/service"
)

// SeedHandler installs baseline reference data over HTTP, mirroring cmd/seed.
type SeedHandler struct {
	categoryService service.CategoryService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(categoryService service.CategoryService) *SeedHandler {
	return &SeedHandler{categoryService: categoryService}
}

// SeedCategories godoc
// @Summary Install the default specialization categories
// @Tags seed
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /seed/categories [get]
func (h *SeedHandler) SeedCategories(c echo.Context) error {
	count, err := h.categoryService.SeedDefaults(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "categories seeded",
		"count":   count,
	})
}
