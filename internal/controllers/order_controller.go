package controllers

import (
	"errors"
	"net/http"

	"github.com/NoxusLabb/CardapioDigital/internal/models"
	"github.com/NoxusLabb/CardapioDigital/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// OrderController handles order placement, tracking, and the admin-side
// order management endpoints
type OrderController struct {
	orders services.OrderService
}

// NewOrderController creates a new instance of OrderController
func NewOrderController(orders services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// CreateOrder godoc
// @Summary Place an order
// @Description Validate the requested items, snapshot current prices and persist the order atomically
// @Tags orders
// @Accept json
// @Produce json
// @Param order body services.CreateOrderRequest true "Order request"
// @Success 201 {object} models.Order
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /api/orders [post]
func (oc *OrderController) CreateOrder(ctx *gin.Context) {
	var req services.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrOrderInvalidData, "Invalid order data",
			map[string]interface{}{"error": err.Error()}))
		return
	}

	order, err := oc.orders.PlaceOrder(req)
	if err != nil {
		var notFound *services.ProductNotFoundError
		var unavailable *services.ProductUnavailableError
		switch {
		case errors.As(err, &notFound):
			ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrProductNotFound, "Product not found",
				map[string]interface{}{"productId": notFound.ProductID}))
		case errors.As(err, &unavailable):
			ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrProductUnavailable, "Product not available",
				map[string]interface{}{
					"productId":   unavailable.ProductID,
					"productName": unavailable.ProductName,
				}))
		default:
			log.WithError(err).Error("Failed to place order")
			ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to place order"))
		}
		return
	}

	log.WithFields(log.Fields{
		"order_number": order.OrderNumber,
		"total_price":  order.TotalPrice,
		"items":        len(order.Items),
	}).Info("Order placed")
	ctx.JSON(http.StatusCreated, order)
}

// TrackOrder godoc
// @Summary Track an order
// @Description Look up an order and its items by tracking code
// @Tags orders
// @Accept json
// @Produce json
// @Param orderNumber query string true "Order number (PED-XXXX)"
// @Success 200 {object} services.OrderWithItems
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/orders/track [get]
func (oc *OrderController) TrackOrder(ctx *gin.Context) {
	orderNumber := ctx.Query("orderNumber")
	if orderNumber == "" {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "orderNumber query parameter is required"))
		return
	}

	result, err := oc.orders.GetOrderByNumber(orderNumber)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrOrderNotFound, "Order not found"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve order"))
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ListOrders godoc
// @Summary List orders
// @Description Get all orders with nested items, newest first, optionally filtered by status
// @Tags orders
// @Accept json
// @Produce json
// @Param status query string false "Filter by status (recebido, em_preparo, a_caminho, entregue)"
// @Success 200 {array} models.Order
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /api/admin/orders [get]
func (oc *OrderController) ListOrders(ctx *gin.Context) {
	status := ctx.Query("status")
	orders, err := oc.orders.GetOrders(status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrOrderInvalidStatus, "Invalid status filter",
				map[string]interface{}{"status": status}))
			return
		}
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve orders"))
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus godoc
// @Summary Update order status
// @Description Move an order to one of the enumerated statuses
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param status body object{status=string} true "New status"
// @Success 200 {object} models.Order
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/admin/orders/{id}/status [patch]
func (oc *OrderController) UpdateOrderStatus(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid order ID"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "status field is required"))
		return
	}

	order, err := oc.orders.UpdateOrderStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrOrderInvalidStatus, "Invalid status",
				map[string]interface{}{"status": req.Status}))
		case errors.Is(err, services.ErrOrderNotFound):
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrOrderNotFound, "Order not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to update order status"))
		}
		return
	}

	log.WithFields(log.Fields{
		"order_id": order.ID,
		"status":   order.Status,
	}).Info("Order status updated")
	ctx.JSON(http.StatusOK, order)
}
