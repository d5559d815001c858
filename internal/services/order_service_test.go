package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/NoxusLabb/CardapioDigital/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// A second pooled connection would see a fresh in-memory database, so
	// pin the pool to a single connection for tests.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	)
	require.NoError(t, err)

	return db
}

func seedMenu(t *testing.T, db *gorm.DB) (models.Product, models.Product) {
	category := models.Category{Name: "Sanduíches", Slug: "sanduiches"}
	require.NoError(t, db.Create(&category).Error)

	xburger := models.Product{
		Name:        "X-Burger",
		Description: "Hambúrguer com queijo, alface, tomate e molho especial",
		Price:       18.90,
		CategoryID:  category.ID,
		ImageURL:    "https://via.placeholder.com/300",
		Available:   true,
		Ingredients: []string{"Pão", "Hambúrguer", "Queijo"},
	}
	require.NoError(t, db.Create(&xburger).Error)

	batata := models.Product{
		Name:        "Batata Frita",
		Description: "Porção de batatas fritas crocantes",
		Price:       12.90,
		CategoryID:  category.ID,
		ImageURL:    "https://via.placeholder.com/300",
		Available:   false,
	}
	require.NoError(t, db.Create(&batata).Error)

	return xburger, batata
}

func TestPlaceOrderComputesTotalFromCatalogPrices(t *testing.T) {
	db := setupTestDB(t)
	xburger, _ := seedMenu(t, db)
	service := NewOrderService(db)

	order, err := service.PlaceOrder(CreateOrderRequest{
		CustomerName:  "João Silva",
		CustomerPhone: "11 99999-0000",
		Items: []OrderItemRequest{
			{ProductID: xburger.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 37.80, order.TotalPrice)
	assert.Equal(t, models.StatusRecebido, order.Status)
	assert.Regexp(t, regexp.MustCompile(`^PED-\d{4}$`), order.OrderNumber)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "X-Burger", order.Items[0].ProductName)
	assert.Equal(t, 18.90, order.Items[0].UnitPrice)
}

func TestPlaceOrderRoundsTotalAtMinorUnit(t *testing.T) {
	db := setupTestDB(t)
	xburger, _ := seedMenu(t, db)
	service := NewOrderService(db)

	// 0.10 * 3 accumulates binary noise (0.30000000000000004)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", xburger.ID).Update("price", 0.10).Error)

	order, err := service.PlaceOrder(CreateOrderRequest{
		CustomerName:  "Maria Souza",
		CustomerPhone: "11 98888-0000",
		Items: []OrderItemRequest{
			{ProductID: xburger.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.30, order.TotalPrice)
}

func TestPlaceOrderTotalMatchesItemSum(t *testing.T) {
	db := setupTestDB(t)
	xburger, _ := seedMenu(t, db)
	service := NewOrderService(db)

	refrigerante := models.Product{
		Name:        "Refrigerante",
		Description: "Lata 350ml",
		Price:       6.00,
		CategoryID:  xburger.CategoryID,
		ImageURL:    "https://via.placeholder.com/300",
		Available:   true,
	}
	require.NoError(t, db.Create(&refrigerante).Error)

	order, err := service.PlaceOrder(CreateOrderRequest{
		CustomerName:  "João Silva",
		CustomerPhone: "11 99999-0000",
		Items: []OrderItemRequest{
			{ProductID: xburger.ID, Quantity: 2},
			{ProductID: refrigerante.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	var sum float64
	for _, item := range order.Items {
		sum += float64(item.Quantity) * item.UnitPrice
	}
	assert.Equal(t, sum, order.TotalPrice)
	assert.Equal(t, 55.80, order.TotalPrice)
}

func TestPlaceOrderIgnoresClientSuppliedPrice(t *testing.T) {
	db := setupTestDB(t)
	xburger, _ := seedMenu(t, db)
	service := NewOrderService(db)

	order, err := service.PlaceOrder(CreateOrderRequest{
		CustomerName:  "João Silva",
		CustomerPhone: "11 99999-0000",
		Items: []OrderItemRequest{
			{ProductID: xburger.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	// The snapshot is the catalog price at placement time; a later price
	// change must not touch the historical order.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", xburger.ID).Update("price", 99.99).Error)

	tracked, err := service.GetOrderByNumber(order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, 18.90, tracked.Items[0].UnitPrice)
	assert.Equal(t, 18.90, tracked.Order.TotalPrice)
}

func TestPlaceOrderProductNotFoundPersistsNothing(t *testing.T) {
	db := setupTestDB(t)
	xburger, _ := seedMenu(t, db)
	service := NewOrderService(db)

	_, err := service.PlaceOrder(CreateOrderRequest{
		CustomerName:  "João Silva",
		CustomerPhone: "11 99999-0000",
		Items: []OrderItemRequest{
			{ProductID: xburger.ID, Quantity: 1},
			{ProductID: 999, Quantity: 1},
		},
	})

	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, uint(999), notFound.ProductID)

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)
}

func TestPlaceOrderUnavailableProductPersistsNothing(t *testing.T) {
	db := setupTestDB(t)
	_, batata := seedMenu(t, db)
	service := NewOrderService(db)

	_, err := service.PlaceOrder(CreateOrderRequest{
		CustomerName:  "Maria Souza",
		CustomerPhone: "11 98888-0000",
		Items: []OrderItemRequest{
			{ProductID: batata.ID, Quantity: 1},
		},
	})

	var unavailable *ProductUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, batata.ID, unavailable.ProductID)
	assert.Equal(t, "Batata Frita", unavailable.ProductName)

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)
}

func TestPlaceOrderAssignsUniqueOrderNumbers(t *testing.T) {
	db := setupTestDB(t)
	xburger, _ := seedMenu(t, db)
	service := NewOrderService(db)

	numberPattern := regexp.MustCompile(`^PED-\d{4}$`)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		order, err := service.PlaceOrder(CreateOrderRequest{
			CustomerName:  "João Silva",
			CustomerPhone: "11 99999-0000",
			Items: []OrderItemRequest{
				{ProductID: xburger.ID, Quantity: 1},
			},
		})
		require.NoError(t, err)
		assert.Regexp(t, numberPattern, order.OrderNumber)
		assert.False(t, seen[order.OrderNumber], "order number %s assigned twice", order.OrderNumber)
		seen[order.OrderNumber] = true
	}
}

func TestPlaceOrderRetriesOnOrderNumberCollision(t *testing.T) {
	db := setupTestDB(t)
	xburger, _ := seedMenu(t, db)
	service := NewOrderService(db).(*orderService)

	// Occupy PED-1000 so the first draw collides
	require.NoError(t, db.Create(&models.Order{
		OrderNumber:   "PED-1000",
		CustomerName:  "Maria Souza",
		CustomerPhone: "11 98888-0000",
		Status:        models.StatusRecebido,
		TotalPrice:    18.90,
	}).Error)

	draws := []string{"PED-1000", "PED-1001"}
	service.genNumber = func() string {
		next := draws[0]
		if len(draws) > 1 {
			draws = draws[1:]
		}
		return next
	}

	order, err := service.PlaceOrder(CreateOrderRequest{
		CustomerName:  "João Silva",
		CustomerPhone: "11 99999-0000",
		Items: []OrderItemRequest{
			{ProductID: xburger.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "PED-1001", order.OrderNumber)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.EqualValues(t, 2, orderCount)
}

func TestPlaceOrderFailsWhenNumberSpaceExhausted(t *testing.T) {
	db := setupTestDB(t)
	xburger, _ := seedMenu(t, db)
	service := NewOrderService(db).(*orderService)

	require.NoError(t, db.Create(&models.Order{
		OrderNumber:   "PED-1000",
		CustomerName:  "Maria Souza",
		CustomerPhone: "11 98888-0000",
		Status:        models.StatusRecebido,
		TotalPrice:    18.90,
	}).Error)

	// Every draw collides, so all attempts burn out
	collisions := 0
	service.genNumber = func() string {
		collisions++
		return "PED-1000"
	}

	_, err := service.PlaceOrder(CreateOrderRequest{
		CustomerName:  "João Silva",
		CustomerPhone: "11 99999-0000",
		Items: []OrderItemRequest{
			{ProductID: xburger.ID, Quantity: 1},
		},
	})
	require.ErrorIs(t, err, ErrOrderNumberExhausted)
	assert.Equal(t, orderNumberAttempts, collisions)

	// The aborted transactions leave no order or item rows behind
	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.EqualValues(t, 1, orderCount)
	assert.Zero(t, itemCount)
}

func TestGetOrderByNumberIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	xburger, _ := seedMenu(t, db)
	service := NewOrderService(db)

	order, err := service.PlaceOrder(CreateOrderRequest{
		CustomerName:  "João Silva",
		CustomerPhone: "11 99999-0000",
		Items: []OrderItemRequest{
			{ProductID: xburger.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	first, err := service.GetOrderByNumber(order.OrderNumber)
	require.NoError(t, err)
	second, err := service.GetOrderByNumber(order.OrderNumber)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetOrderByNumberNotFound(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	_, err := service.GetOrderByNumber("PED-0000")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateOrderStatusRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	xburger, _ := seedMenu(t, db)
	service := NewOrderService(db)

	order, err := service.PlaceOrder(CreateOrderRequest{
		CustomerName:  "João Silva",
		CustomerPhone: "11 99999-0000",
		Items: []OrderItemRequest{
			{ProductID: xburger.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	updated, err := service.UpdateOrderStatus(order.ID, models.StatusEmPreparo)
	require.NoError(t, err)
	assert.Equal(t, models.StatusEmPreparo, updated.Status)

	tracked, err := service.GetOrderByNumber(order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, models.StatusEmPreparo, tracked.Order.Status)
	assert.True(t, tracked.Order.UpdatedAt.After(tracked.Order.CreatedAt),
		"updatedAt %v should be after createdAt %v", tracked.Order.UpdatedAt, tracked.Order.CreatedAt)
	// The total never moves on status changes
	assert.Equal(t, order.TotalPrice, tracked.Order.TotalPrice)
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	xburger, _ := seedMenu(t, db)
	service := NewOrderService(db)

	order, err := service.PlaceOrder(CreateOrderRequest{
		CustomerName:  "João Silva",
		CustomerPhone: "11 99999-0000",
		Items: []OrderItemRequest{
			{ProductID: xburger.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	_, err = service.UpdateOrderStatus(order.ID, "cancelado")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = service.UpdateOrderStatus(9999, models.StatusEmPreparo)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetOrdersNewestFirstWithStatusFilter(t *testing.T) {
	db := setupTestDB(t)
	xburger, _ := seedMenu(t, db)
	service := NewOrderService(db)

	var placed []models.Order
	for i := 0; i < 3; i++ {
		order, err := service.PlaceOrder(CreateOrderRequest{
			CustomerName:  "João Silva",
			CustomerPhone: "11 99999-0000",
			Items: []OrderItemRequest{
				{ProductID: xburger.ID, Quantity: 1},
			},
		})
		require.NoError(t, err)
		placed = append(placed, order)
		time.Sleep(5 * time.Millisecond)
	}

	_, err := service.UpdateOrderStatus(placed[1].ID, models.StatusEntregue)
	require.NoError(t, err)

	all, err := service.GetOrders("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, placed[2].OrderNumber, all[0].OrderNumber)
	assert.NotEmpty(t, all[0].Items)

	delivered, err := service.GetOrders(models.StatusEntregue)
	require.NoError(t, err)
	require.Len(t, delivered, 1)
	assert.Equal(t, placed[1].OrderNumber, delivered[0].OrderNumber)

	_, err = service.GetOrders("cancelado")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
