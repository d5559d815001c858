package services

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/NoxusLabb/CardapioDigital/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// orderNumberAttempts bounds the retry loop around order number generation.
// A collision means two orders drew the same 4-digit suffix; retrying with a
// fresh number is cheaper than any coordination scheme.
const orderNumberAttempts = 5

// OrderItemRequest is one requested line of an order. Price is never part of
// the request; the catalog value at placement time is authoritative.
type OrderItemRequest struct {
	ProductID uint   `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Notes     string `json:"notes"`
}

// CreateOrderRequest is the payload of POST /api/orders.
type CreateOrderRequest struct {
	CustomerName    string             `json:"customerName" binding:"required"`
	CustomerPhone   string             `json:"customerPhone" binding:"required"`
	CustomerAddress string             `json:"customerAddress"`
	Notes           string             `json:"notes"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderWithItems pairs an order header with its line items for tracking
// responses.
type OrderWithItems struct {
	Order models.Order       `json:"order"`
	Items []models.OrderItem `json:"items"`
}

// OrderService implements the order placement and tracking workflow:
// validation, price/name snapshotting, the atomic write, and the status
// state machine.
type OrderService interface {
	// PlaceOrder validates the request, resolves authoritative prices and
	// persists the order header and items atomically
	PlaceOrder(req CreateOrderRequest) (models.Order, error)
	// GetOrderByNumber retrieves an order and its items by tracking code
	GetOrderByNumber(orderNumber string) (OrderWithItems, error)
	// GetOrders lists all orders with nested items, newest first,
	// optionally filtered by status
	GetOrders(status string) ([]models.Order, error)
	// UpdateOrderStatus moves an order to one of the enumerated statuses
	UpdateOrderStatus(id uint, status string) (models.Order, error)
}

type orderService struct {
	db *gorm.DB

	// genNumber draws order number candidates; swappable in tests to force
	// collisions deterministically
	genNumber func() string
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(db *gorm.DB) OrderService {
	return &orderService{db: db, genNumber: newOrderNumber}
}

// round2 rounds to the currency's minor unit, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// newOrderNumber draws a candidate tracking code in the PED-1000..PED-9999
// range. Uniqueness is enforced by the database index, not by construction.
func newOrderNumber() string {
	return fmt.Sprintf("PED-%d", 1000+rand.Intn(9000))
}

func (s *orderService) PlaceOrder(req CreateOrderRequest) (models.Order, error) {
	// Validate every line item before touching any state. Fail-fast on the
	// first offending item; no partial order is ever created.
	items := make([]models.OrderItem, 0, len(req.Items))
	var total float64
	for _, item := range req.Items {
		var product models.Product
		if err := s.db.First(&product, item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Order{}, &ProductNotFoundError{ProductID: item.ProductID}
			}
			return models.Order{}, err
		}
		if !product.Available {
			return models.Order{}, &ProductUnavailableError{
				ProductID:   product.ID,
				ProductName: product.Name,
			}
		}

		// Snapshot the catalog's current name and price; any price carried
		// by the client is ignored.
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.Price,
			Notes:       item.Notes,
		})
		total += float64(item.Quantity) * product.Price
	}

	order := models.Order{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		Status:          models.StatusRecebido,
		TotalPrice:      round2(total),
		Notes:           req.Notes,
		Items:           items,
	}

	// The header and all item rows go in as one transaction. A duplicate
	// order number aborts the whole transaction, so each retry starts from
	// a clean slate with a fresh number.
	var lastErr error
	for attempt := 1; attempt <= orderNumberAttempts; attempt++ {
		order.ID = 0
		order.OrderNumber = s.genNumber()
		for i := range order.Items {
			order.Items[i].ID = 0
			order.Items[i].OrderID = 0
		}

		err := s.db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&order).Error
		})
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Order{}, err
		}

		log.WithFields(log.Fields{
			"order_number": order.OrderNumber,
			"attempt":      attempt,
		}).Warn("Order number collision, retrying with a new number")
		lastErr = err
	}

	return models.Order{}, fmt.Errorf("%w: %v", ErrOrderNumberExhausted, lastErr)
}

func (s *orderService) GetOrderByNumber(orderNumber string) (OrderWithItems, error) {
	var order models.Order
	err := s.db.Where("order_number = ?", orderNumber).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderWithItems{}, ErrOrderNotFound
		}
		return OrderWithItems{}, err
	}

	var items []models.OrderItem
	if err := s.db.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		return OrderWithItems{}, err
	}

	return OrderWithItems{Order: order, Items: items}, nil
}

func (s *orderService) GetOrders(status string) ([]models.Order, error) {
	if status != "" && !models.IsValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	query := s.db.Preload("Items").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderService) UpdateOrderStatus(id uint, status string) (models.Order, error) {
	if !models.IsValidOrderStatus(status) {
		return models.Order{}, ErrInvalidStatus
	}

	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, err
	}

	// Only the status moves; the total price is immutable after creation.
	if err := s.db.Model(&order).Update("status", status).Error; err != nil {
		return models.Order{}, err
	}
	return order, nil
}
