package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment status values. The payment-confirm path is the authoritative
// writer; admin updates use the same vocabulary.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// Order status values.
const (
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// OrderItem is a line item with the unit price snapshotted at purchase
// time. Later catalog price changes must not affect persisted orders.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Name      string             `bson:"name" json:"name"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	UnitPrice float64            `bson:"unit_price" json:"unit_price"`
}

// StatusEntry is one record in an order's append-only status history.
type StatusEntry struct {
	Status string    `bson:"status" json:"status"`
	Note   string    `bson:"note,omitempty" json:"note,omitempty"`
	At     time.Time `bson:"at" json:"at"`
}

// Order represents a user's order
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items           []OrderItem        `bson:"items" json:"items"`
	Address         Address            `bson:"address" json:"address"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	ShippingFee     float64            `bson:"shipping_fee" json:"shipping_fee"`
	Tax             float64            `bson:"tax" json:"tax"`
	Discount        float64            `bson:"discount" json:"discount"`
	TotalAmount     float64            `bson:"total_amount" json:"total_amount"`
	PaymentMethod   string             `bson:"payment_method" json:"payment_method"` // "card" or "cod"
	PaymentStatus   string             `bson:"payment_status" json:"payment_status"`
	PaymentIntentID string             `bson:"payment_intent_id,omitempty" json:"payment_intent_id,omitempty"`
	Status          string             `bson:"status" json:"status"`
	StatusHistory   []StatusEntry      `bson:"status_history" json:"status_history"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	DeliveryDate    string             `bson:"delivery_date" json:"delivery_date"` // e.g. "2026-09-07"
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}
