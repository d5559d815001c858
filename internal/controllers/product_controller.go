package controllers

import (
	"errors"
	"net/http"

	"github.com/NoxusLabb/CardapioDigital/internal/models"
	"github.com/NoxusLabb/CardapioDigital/internal/services"
	"github.com/gin-gonic/gin"
)

// ProductController handles HTTP requests related to menu products
type ProductController struct {
	catalog services.CatalogService
}

// NewProductController creates a new instance of ProductController
func NewProductController(catalog services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// productRequest is the admin payload for creating or updating a product.
type productRequest struct {
	Name            string   `json:"name" binding:"required,min=3"`
	Description     string   `json:"description" binding:"required,min=5"`
	Price           float64  `json:"price" binding:"required,gt=0"`
	CategoryID      uint     `json:"categoryId" binding:"required"`
	ImageURL        string   `json:"imageUrl" binding:"required,url"`
	Available       *bool    `json:"available" binding:"required"`
	Ingredients     []string `json:"ingredients"`
	StockQuantity   int      `json:"stockQuantity" binding:"min=0"`
	MinimumStock    int      `json:"minimumStock" binding:"min=0"`
	CostPrice       *float64 `json:"costPrice"`
	Weight          *float64 `json:"weight"`
	Featured        bool     `json:"featured"`
	DiscountPercent int      `json:"discountPercent" binding:"min=0,max=100"`
	Tags            []string `json:"tags"`
}

func (r *productRequest) toModel() models.Product {
	return models.Product{
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		CategoryID:      r.CategoryID,
		ImageURL:        r.ImageURL,
		Available:       *r.Available,
		Ingredients:     r.Ingredients,
		StockQuantity:   r.StockQuantity,
		MinimumStock:    r.MinimumStock,
		CostPrice:       r.CostPrice,
		Weight:          r.Weight,
		Featured:        r.Featured,
		DiscountPercent: r.DiscountPercent,
		Tags:            r.Tags,
	}
}

// GetProducts godoc
// @Summary List products
// @Description Get all products on the menu
// @Tags products
// @Accept json
// @Produce json
// @Success 200 {array} models.Product
// @Failure 500 {object} models.APIError
// @Router /api/products [get]
func (pc *ProductController) GetProducts(ctx *gin.Context) {
	products, err := pc.catalog.GetProducts()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve products"))
		return
	}
	ctx.JSON(http.StatusOK, products)
}

// GetProductByID godoc
// @Summary Get product by ID
// @Description Get a single product by its ID
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/products/{id} [get]
func (pc *ProductController) GetProductByID(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid product ID"))
		return
	}

	product, err := pc.catalog.GetProductByID(id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrProductNotFound, "Product not found"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve product"))
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// GetProductsByCategory godoc
// @Summary List products by category
// @Description Get the products belonging to one category
// @Tags products
// @Accept json
// @Produce json
// @Param categoryId path int true "Category ID"
// @Success 200 {array} models.Product
// @Failure 400 {object} models.APIError
// @Router /api/products/category/{categoryId} [get]
func (pc *ProductController) GetProductsByCategory(ctx *gin.Context) {
	categoryID, ok := parseUintParam(ctx, "categoryId")
	if !ok {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid category ID"))
		return
	}

	products, err := pc.catalog.GetProductsByCategory(categoryID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve products"))
		return
	}
	ctx.JSON(http.StatusOK, products)
}

// SearchProducts godoc
// @Summary Search products
// @Description Case-insensitive substring search across product name and description
// @Tags products
// @Accept json
// @Produce json
// @Param term path string true "Search term"
// @Success 200 {array} models.Product
// @Failure 500 {object} models.APIError
// @Router /api/products/search/{term} [get]
func (pc *ProductController) SearchProducts(ctx *gin.Context) {
	term := ctx.Param("term")
	products, err := pc.catalog.SearchProducts(term)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to search products"))
		return
	}
	ctx.JSON(http.StatusOK, products)
}

// CreateProduct godoc
// @Summary Create a product
// @Description Create a new product with the input payload
// @Tags products
// @Accept json
// @Produce json
// @Param product body productRequest true "Product object"
// @Success 201 {object} models.Product
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/admin/products [post]
func (pc *ProductController) CreateProduct(ctx *gin.Context) {
	var req productRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrProductInvalidData, "Invalid product data",
			map[string]interface{}{"error": err.Error()}))
		return
	}

	product, err := pc.catalog.CreateProduct(req.toModel())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to create product"))
		return
	}
	ctx.JSON(http.StatusCreated, product)
}

// UpdateProduct godoc
// @Summary Update a product
// @Description Update an existing product with the input payload
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body productRequest true "Product object"
// @Success 200 {object} models.Product
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/admin/products/{id} [put]
func (pc *ProductController) UpdateProduct(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid product ID"))
		return
	}

	var req productRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrProductInvalidData, "Invalid product data",
			map[string]interface{}{"error": err.Error()}))
		return
	}

	product := req.toModel()
	product.ID = id
	updated, err := pc.catalog.UpdateProduct(product)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrProductNotFound, "Product not found"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to update product"))
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeleteProduct godoc
// @Summary Delete a product
// @Description Delete a product by its ID
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/admin/products/{id} [delete]
func (pc *ProductController) DeleteProduct(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid product ID"))
		return
	}

	if err := pc.catalog.DeleteProduct(id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrProductNotFound, "Product not found"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to delete product"))
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}
