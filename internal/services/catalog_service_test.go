package services

import (
	"testing"

	"github.com/NoxusLabb/CardapioDigital/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchProductsIsCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	seedMenu(t, db)
	service := NewCatalogService(db)

	testCases := []struct {
		name     string
		term     string
		expected []string
	}{
		{
			name:     "should match name regardless of case",
			term:     "x-burger",
			expected: []string{"X-Burger"},
		},
		{
			name:     "should match substring of description",
			term:     "CROCANTES",
			expected: []string{"Batata Frita"},
		},
		{
			name:     "should match across name and description",
			term:     "bata",
			expected: []string{"Batata Frita"},
		},
		{
			name:     "should return empty for no match",
			term:     "pizza",
			expected: []string{},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			products, err := service.SearchProducts(tt.term)
			require.NoError(t, err)

			names := make([]string, 0, len(products))
			for _, p := range products {
				names = append(names, p.Name)
			}
			assert.ElementsMatch(t, tt.expected, names)
		})
	}
}

func TestGetProductByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	service := NewCatalogService(db)

	_, err := service.GetProductByID(42)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetProductsByCategory(t *testing.T) {
	db := setupTestDB(t)
	xburger, _ := seedMenu(t, db)
	service := NewCatalogService(db)

	other := models.Category{Name: "Bebidas", Slug: "bebidas"}
	require.NoError(t, db.Create(&other).Error)

	products, err := service.GetProductsByCategory(xburger.CategoryID)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	empty, err := service.GetProductsByCategory(other.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDeleteCategoryBlockedWhileProductsReferenceIt(t *testing.T) {
	db := setupTestDB(t)
	xburger, _ := seedMenu(t, db)
	service := NewCatalogService(db)

	err := service.DeleteCategory(xburger.CategoryID)
	assert.ErrorIs(t, err, ErrCategoryInUse)

	// Still present
	categories, err := service.GetCategories()
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestDeleteCategoryRemovesUnreferencedCategory(t *testing.T) {
	db := setupTestDB(t)
	service := NewCatalogService(db)

	category, err := service.CreateCategory(models.Category{Name: "Sobremesas", Slug: "sobremesas"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteCategory(category.ID))

	err = service.DeleteCategory(category.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestGetCategoryBySlug(t *testing.T) {
	db := setupTestDB(t)
	seedMenu(t, db)
	service := NewCatalogService(db)

	category, err := service.GetCategoryBySlug("sanduiches")
	require.NoError(t, err)
	assert.Equal(t, "Sanduíches", category.Name)

	_, err = service.GetCategoryBySlug("nope")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestProductCRUDRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	xburger, _ := seedMenu(t, db)
	service := NewCatalogService(db)

	created, err := service.CreateProduct(models.Product{
		Name:        "Suco de Laranja",
		Description: "Copo 500ml, feito na hora",
		Price:       9.50,
		CategoryID:  xburger.CategoryID,
		ImageURL:    "https://via.placeholder.com/300",
		Available:   true,
		Ingredients: []string{"Laranja"},
		Tags:        []string{"natural", "sem açúcar"},
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	created.Price = 10.00
	created.Available = false
	updated, err := service.UpdateProduct(created)
	require.NoError(t, err)
	assert.Equal(t, 10.00, updated.Price)
	assert.False(t, updated.Available)

	fetched, err := service.GetProductByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Laranja"}, fetched.Ingredients)
	assert.Equal(t, []string{"natural", "sem açúcar"}, fetched.Tags)

	require.NoError(t, service.DeleteProduct(created.ID))
	_, err = service.GetProductByID(created.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	err = service.DeleteProduct(created.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateProductPersistsUnavailableFlag(t *testing.T) {
	db := setupTestDB(t)
	xburger, _ := seedMenu(t, db)
	service := NewCatalogService(db)

	// An admin can create a product that is not yet orderable; the false
	// value must survive the insert, not fall back to a column default.
	created, err := service.CreateProduct(models.Product{
		Name:        "Milkshake de Morango",
		Description: "Copo 400ml, em breve no cardápio",
		Price:       15.00,
		CategoryID:  xburger.CategoryID,
		ImageURL:    "https://via.placeholder.com/300",
		Available:   false,
	})
	require.NoError(t, err)

	fetched, err := service.GetProductByID(created.ID)
	require.NoError(t, err)
	assert.False(t, fetched.Available)

	// And an unavailable product stays unorderable
	orders := NewOrderService(db)
	_, err = orders.PlaceOrder(CreateOrderRequest{
		CustomerName:  "João Silva",
		CustomerPhone: "11 99999-0000",
		Items: []OrderItemRequest{
			{ProductID: created.ID, Quantity: 1},
		},
	})
	var unavailable *ProductUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, created.ID, unavailable.ProductID)
}

func TestUpdateProductNotFound(t *testing.T) {
	db := setupTestDB(t)
	service := NewCatalogService(db)

	_, err := service.UpdateProduct(models.Product{ID: 42, Name: "Fantasma"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}
