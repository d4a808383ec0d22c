// Package services holds the business workflows between the HTTP
// controllers and the stores.
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"go-commerce-api/config"
	"go-commerce-api/models"
	"go-commerce-api/payment"
	"go-commerce-api/repository"
)

var (
	// ErrGateway marks an upstream payment-gateway failure (502 at the
	// boundary).
	ErrGateway = errors.New("payment gateway failure")
	// ErrPaymentUnresolved means the gateway reported an in-flight intent
	// state; the order is left unchanged.
	ErrPaymentUnresolved = errors.New("payment not resolved")
	ErrIntentMismatch    = errors.New("payment intent does not match order")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrEmptyOrder        = errors.New("order has no items")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)

// Mailer sends transactional notifications. Failures are never fatal to
// the request that triggered them.
type Mailer interface {
	SendOrderConfirmation(toEmail, name string, order *models.Order) error
	SendPaymentStatusUpdate(toEmail, name string, order *models.Order) error
	SendOrderStatusUpdate(toEmail, name string, order *models.Order) error
}

// CreateOrderInput is a validated checkout request. Prices are never taken
// from the client; only product ids and quantities are.
type CreateOrderInput struct {
	UserID        primitive.ObjectID
	Items         []models.CartItem
	Address       models.Address
	PaymentMethod string // "card" or "cod"
}

// CreateOrderResult is the outcome of a checkout. ClientSecret is set only
// for card payments.
type CreateOrderResult struct {
	Order        *models.Order
	ClientSecret string
}

// OrderService implements the checkout and payment workflows.
type OrderService struct {
	orders   repository.OrderStore
	products repository.ProductStore
	users    repository.UserStore
	gateway  payment.Gateway
	mailer   Mailer
	pricing  config.PricingConfig
	log      *zap.Logger
	now      func() time.Time
}

// NewOrderService wires the workflow to its stores and collaborators.
func NewOrderService(
	orders repository.OrderStore,
	products repository.ProductStore,
	users repository.UserStore,
	gateway payment.Gateway,
	mailer Mailer,
	pricing config.PricingConfig,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		users:    users,
		gateway:  gateway,
		mailer:   mailer,
		pricing:  pricing,
		log:      log,
		now:      time.Now,
	}
}

// Create runs the checkout workflow: snapshot server-side prices, compute
// totals, persist the order, reserve stock with conditional decrements,
// and for card payments create a gateway intent. Any failure after the
// order document exists compensates by restoring reserved stock and
// deleting the order.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	var (
		items    []models.OrderItem
		subtotal float64
	)
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("product %s: %w", item.ProductID.Hex(), repository.ErrNotFound)
			}
			return nil, err
		}
		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("product %s: %w", product.Name, repository.ErrOutOfStock)
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
		subtotal += product.Price * float64(item.Quantity)
	}

	subtotal = round2(subtotal)
	shipping := s.pricing.ShippingFee
	tax := round2(subtotal * s.pricing.TaxRate)
	var discount float64
	if subtotal >= s.pricing.FreeShippingMin {
		discount = shipping
	}
	total := round2(subtotal + shipping + tax - discount)

	now := s.now()
	order := &models.Order{
		UserID:        in.UserID,
		Items:         items,
		Address:       in.Address,
		Subtotal:      subtotal,
		ShippingFee:   shipping,
		Tax:           tax,
		Discount:      discount,
		TotalAmount:   total,
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: models.PaymentPending,
		Status:        models.StatusProcessing,
		StatusHistory: []models.StatusEntry{
			{Status: models.StatusProcessing, Note: "order placed", At: now},
		},
		CreatedAt:    now,
		DeliveryDate: now.AddDate(0, 0, 10).Format("2006-01-02"),
	}

	orderID, err := s.orders.Insert(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}
	order.ID = orderID

	// Reserve stock. Each decrement is conditional on stock >= qty, so a
	// concurrent checkout for the same product cannot oversell.
	for i, item := range items {
		if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.releaseStock(ctx, items[:i])
			s.discardOrder(ctx, orderID)
			return nil, err
		}
	}

	if in.PaymentMethod != "card" {
		s.notify(order, func(email, name string) error {
			return s.mailer.SendOrderConfirmation(email, name, order)
		})
		return &CreateOrderResult{Order: order}, nil
	}

	intent, err := s.gateway.CreateIntent(ctx, orderID.Hex(), total)
	if err != nil {
		s.releaseStock(ctx, items)
		s.discardOrder(ctx, orderID)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if err := s.orders.SetPaymentIntent(ctx, orderID, intent.ID); err != nil {
		return nil, err
	}
	order.PaymentIntentID = intent.ID

	return &CreateOrderResult{Order: order, ClientSecret: intent.ClientSecret}, nil
}

// ConfirmPayment re-verifies the intent's authoritative status with the
// gateway and updates the order accordingly. A caller-claimed status is
// never trusted. Confirming an already-paid order again is a no-op.
func (s *OrderService) ConfirmPayment(ctx context.Context, orderID primitive.ObjectID, intentID string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentIntentID != "" && order.PaymentIntentID != intentID {
		return nil, ErrIntentMismatch
	}

	intent, err := s.gateway.RetrieveIntent(ctx, intentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	switch intent.Status {
	case payment.StatusSucceeded:
		if order.PaymentStatus == models.PaymentPaid {
			return order, nil
		}
		entry := models.StatusEntry{Status: models.PaymentPaid, Note: "payment confirmed by gateway", At: s.now()}
		if err := s.orders.SetPaymentStatus(ctx, orderID, models.PaymentPaid, entry); err != nil {
			return nil, err
		}
		order.PaymentStatus = models.PaymentPaid
		order.StatusHistory = append(order.StatusHistory, entry)
		s.notify(order, func(email, name string) error {
			return s.mailer.SendPaymentStatusUpdate(email, name, order)
		})
		return order, nil

	case payment.StatusFailed:
		if order.PaymentStatus == models.PaymentFailed {
			return order, nil
		}
		entry := models.StatusEntry{Status: models.PaymentFailed, Note: "payment failed at gateway", At: s.now()}
		if err := s.orders.SetPaymentStatus(ctx, orderID, models.PaymentFailed, entry); err != nil {
			return nil, err
		}
		order.PaymentStatus = models.PaymentFailed
		order.StatusHistory = append(order.StatusHistory, entry)
		return order, nil

	default:
		return nil, ErrPaymentUnresolved
	}
}

// UpdateStatus appends a status transition to the order history and sets
// the current status. The history is append-only. The notification email
// is best-effort and never rolls back the transition.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status, note string) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	entry := models.StatusEntry{Status: status, Note: note, At: s.now()}
	if err := s.orders.AppendStatus(ctx, orderID, entry); err != nil {
		return nil, err
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.notify(order, func(email, name string) error {
		return s.mailer.SendOrderStatusUpdate(email, name, order)
	})
	return order, nil
}

// ListByUser returns the caller's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.FindByUser(ctx, userID)
}

// ListAll returns every order, newest first.
func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.orders.ListAll(ctx)
}

// Delete removes an order.
func (s *OrderService) Delete(ctx context.Context, orderID primitive.ObjectID) error {
	return s.orders.Delete(ctx, orderID)
}

// notify looks up the order's owner and sends one email. Failures are
// logged, never propagated.
func (s *OrderService) notify(order *models.Order, send func(email, name string) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := s.users.FindByID(ctx, order.UserID)
	if err != nil {
		s.log.Warn("notify: user lookup failed",
			zap.String("order_id", order.ID.Hex()), zap.Error(err))
		return
	}
	if err := send(user.Email, user.Name); err != nil {
		s.log.Warn("notify: send failed",
			zap.String("order_id", order.ID.Hex()),
			zap.String("email", user.Email), zap.Error(err))
	}
}

func (s *OrderService) releaseStock(ctx context.Context, items []models.OrderItem) {
	for _, item := range items {
		if err := s.products.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.log.Error("release stock failed",
				zap.String("product_id", item.ProductID.Hex()), zap.Error(err))
		}
	}
}

func (s *OrderService) discardOrder(ctx context.Context, orderID primitive.ObjectID) {
	if err := s.orders.Delete(ctx, orderID); err != nil {
		s.log.Error("compensating order delete failed",
			zap.String("order_id", orderID.Hex()), zap.Error(err))
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
