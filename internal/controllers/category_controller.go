package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/NoxusLabb/CardapioDigital/internal/models"
	"github.com/NoxusLabb/CardapioDigital/internal/services"
	"github.com/gin-gonic/gin"
)

// CategoryController handles HTTP requests for menu categories
type CategoryController struct {
	catalog services.CatalogService
}

// NewCategoryController creates a new instance of CategoryController
func NewCategoryController(catalog services.CatalogService) *CategoryController {
	return &CategoryController{catalog: catalog}
}

// GetCategories godoc
// @Summary List categories
// @Description Get all menu categories
// @Tags categories
// @Accept json
// @Produce json
// @Success 200 {array} models.Category
// @Failure 500 {object} models.APIError
// @Router /api/categories [get]
func (cc *CategoryController) GetCategories(ctx *gin.Context) {
	categories, err := cc.catalog.GetCategories()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve categories"))
		return
	}
	ctx.JSON(http.StatusOK, categories)
}

// CreateCategory godoc
// @Summary Create a category
// @Description Create a new menu category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body models.Category true "Category object"
// @Success 201 {object} models.Category
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /api/admin/categories [post]
func (cc *CategoryController) CreateCategory(ctx *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
		Slug string `json:"slug" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid category data"))
		return
	}

	category, err := cc.catalog.CreateCategory(models.Category{Name: req.Name, Slug: req.Slug})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to create category"))
		return
	}
	ctx.JSON(http.StatusCreated, category)
}

// UpdateCategory godoc
// @Summary Update a category
// @Description Update an existing menu category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param category body models.Category true "Category object"
// @Success 200 {object} models.Category
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/admin/categories/{id} [put]
func (cc *CategoryController) UpdateCategory(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid category ID"))
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
		Slug string `json:"slug" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid category data"))
		return
	}

	category, err := cc.catalog.UpdateCategory(models.Category{ID: id, Name: req.Name, Slug: req.Slug})
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrCategoryNotFound, "Category not found"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to update category"))
		return
	}
	ctx.JSON(http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Delete a category that has no products referencing it
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/admin/categories/{id} [delete]
func (cc *CategoryController) DeleteCategory(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid category ID"))
		return
	}

	if err := cc.catalog.DeleteCategory(id); err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrCategoryNotFound, "Category not found"))
		case errors.Is(err, services.ErrCategoryInUse):
			ctx.JSON(http.StatusConflict, models.NewAPIError(models.ErrCategoryInUse, "Category still has products"))
		default:
			ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to delete category"))
		}
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}

// parseUintParam reads a numeric path parameter.
func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	raw, exists := ctx.Params.Get(name)
	if !exists {
		return 0, false
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(value), true
}
