package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"medibook/internal/service"
)

// CategoryHandler serves the category reference data.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List godoc
// @Summary List all categories
// @Tags categories
// @Produce json
// @Success 200 {array} model.Category
// @Router /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, categories)
}
