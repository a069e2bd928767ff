package models

import (
	"time"
)

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCancelled = "cancelled"
)

// Product represents a store item
type Product struct {
	ProductID   int        `gorm:"primaryKey;column:product_id" json:"product_id"`
	ProductName string     `gorm:"column:product_name" json:"product_name"`
	Description string     `gorm:"column:description" json:"description"`
	Price       float64    `gorm:"column:price" json:"price"`
	ImageURL    *string    `gorm:"column:image_url" json:"image_url,omitempty"`
	InStock     bool       `gorm:"column:in_stock" json:"in_stock"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// Order represents a store purchase
type Order struct {
	OrderID    int        `gorm:"primaryKey;column:order_id" json:"order_id"`
	FirstName  string     `gorm:"column:first_name" json:"first_name"`
	LastName   string     `gorm:"column:last_name" json:"last_name"`
	Email      string     `gorm:"column:email" json:"email"`
	Address    string     `gorm:"column:address" json:"address"`
	Total      float64    `gorm:"column:total" json:"total"`
	Status     string     `gorm:"column:status" json:"status"`
	PaymentRef *string    `gorm:"column:payment_ref" json:"payment_ref,omitempty"`
	CreateAt   *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt   *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// OrderItem is a line item on an order; unit price is snapshotted from the
// product at order time.
type OrderItem struct {
	OrderItemID int        `gorm:"primaryKey;column:order_item_id" json:"order_item_id"`
	OrderID     int        `gorm:"column:order_id" json:"order_id"`
	ProductID   int        `gorm:"column:product_id" json:"product_id"`
	Quantity    int        `gorm:"column:quantity" json:"quantity"`
	UnitPrice   float64    `gorm:"column:unit_price" json:"unit_price"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName overrides
func (Product) TableName() string {
	return "products"
}

func (Order) TableName() string {
	return "orders"
}

func (OrderItem) TableName() string {
	return "order_items"
}

// IsValidOrderStatus reports whether s is a known order status.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}
