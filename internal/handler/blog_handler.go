package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"medibook/internal/service"
)

// BlogHandler handles blog post endpoints.
type BlogHandler struct {
	blogService service.BlogService
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(blogService service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// CreateBlogPostRequest represents an authoring request.
type CreateBlogPostRequest struct {
	Title      string `json:"title" validate:"required"`
	Image      string `json:"image"`
	Summary    string `json:"summary" validate:"max=600"`
	Content    string `json:"content"`
	Draft      bool   `json:"draft"`
	Categories []uint `json:"categories"`
}

// Create godoc
// @Summary Create a blog post authored by a doctor
// @Tags blog
// @Accept json
// @Produce json
// @Param userId query int true "Author account id"
// @Param request body CreateBlogPostRequest true "Post data"
// @Success 201 {object} model.BlogPost
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /blogposts [post]
func (h *BlogHandler) Create(c echo.Context) error {
	userID, err := queryUserID(c, "userId")
	if err != nil {
		return err
	}

	var req CreateBlogPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.blogService.Create(c.Request().Context(), userID, &service.CreateBlogPostInput{
		Title:       req.Title,
		Image:       req.Image,
		Summary:     req.Summary,
		Content:     req.Content,
		Draft:       req.Draft,
		CategoryIDs: req.Categories,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// ListPublished godoc
// @Summary List published blog posts, newest first
// @Tags blog
// @Produce json
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit" default(4)
// @Success 200 {object} service.BlogListResult
// @Router /blogposts [get]
func (h *BlogHandler) ListPublished(c echo.Context) error {
	offset := queryInt(c, "offset", 0)
	limit := queryInt(c, "limit", 4)

	result, err := h.blogService.ListPublished(c.Request().Context(), offset, limit)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// ListFiltered godoc
// @Summary List published blog posts filtered by category
// @Tags blog
// @Produce json
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit" default(6)
// @Param categories[] query []int false "Category ids"
// @Success 200 {object} service.BlogListResult
// @Router /blogposts/filtered [get]
func (h *BlogHandler) ListFiltered(c echo.Context) error {
	offset := queryInt(c, "offset", 0)
	limit := queryInt(c, "limit", 6)

	result, err := h.blogService.ListFiltered(c.Request().Context(), queryCategoryIDs(c), offset, limit)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// ListByAuthor godoc
// @Summary List a doctor's posts split into published and drafts
// @Tags blog
// @Produce json
// @Param userId query int true "Author account id"
// @Success 200 {object} service.AuthorPostsResult
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/blogposts [get]
func (h *BlogHandler) ListByAuthor(c echo.Context) error {
	userID, err := queryUserID(c, "userId")
	if err != nil {
		return err
	}

	result, err := h.blogService.ListByAuthor(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, result)
}
