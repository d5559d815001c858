package models

import (
	"time"
)

// Order lifecycle states. The tracker accepts any of the four values;
// transitions are not restricted to the forward direction.
const (
	StatusRecebido  = "recebido"
	StatusEmPreparo = "em_preparo"
	StatusACaminho  = "a_caminho"
	StatusEntregue  = "entregue"
)

// OrderStatuses lists every valid order status, in lifecycle order.
var OrderStatuses = []string{StatusRecebido, StatusEmPreparo, StatusACaminho, StatusEntregue}

// IsValidOrderStatus reports whether s is one of the enumerated statuses.
func IsValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Order is a customer's placed request. OrderNumber ("PED-" + 4 digits) is
// the customer-facing tracking code, distinct from the numeric ID.
// TotalPrice is fixed at creation time and never recomputed.
type Order struct {
	ID              uint        `json:"id" gorm:"primaryKey"`
	OrderNumber     string      `json:"orderNumber" gorm:"uniqueIndex;not null"`
	CustomerName    string      `json:"customerName" gorm:"not null"`
	CustomerPhone   string      `json:"customerPhone" gorm:"not null"`
	CustomerAddress string      `json:"customerAddress,omitempty"`
	Status          string      `json:"status" gorm:"not null;default:'recebido'"`
	TotalPrice      float64     `json:"totalPrice" gorm:"not null"`
	Notes           string      `json:"notes,omitempty"`
	Items           []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order. ProductName and UnitPrice are snapshots
// taken at placement time; later product edits never affect them.
type OrderItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	OrderID     uint    `json:"orderId" gorm:"not null;index"`
	ProductID   uint    `json:"productId" gorm:"not null"`
	ProductName string  `json:"productName" gorm:"not null"`
	Quantity    int     `json:"quantity" gorm:"not null"`
	UnitPrice   float64 `json:"unitPrice" gorm:"not null"`
	Notes       string  `json:"notes,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
