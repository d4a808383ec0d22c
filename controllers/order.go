// controllers/order.go
package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"go-commerce-api/models"
	"go-commerce-api/repository"
	"go-commerce-api/services"
)

// OrderController handles checkout and payment-status requests
type OrderController struct {
	Orders *services.OrderService
	Carts  repository.CartStore
	Log    *zap.Logger
}

// NewOrderController creates a new OrderController
func NewOrderController(orders *services.OrderService, carts repository.CartStore, log *zap.Logger) *OrderController {
	return &OrderController{Orders: orders, Carts: carts, Log: log}
}

// CreateOrder places an order from explicit items or, if none are given,
// from the caller's cart. Card payments return the gateway client secret.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	items, fromCart, err := oc.resolveItems(ctx, userID, req.Items)
	if err != nil {
		status := httpStatus(err)
		writeJSON(w, status, errorBody(err, status))
		return
	}

	result, err := oc.Orders.Create(ctx, services.CreateOrderInput{
		UserID:        userID,
		Items:         items,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		oc.Log.Warn("create order failed", zap.String("user_id", userID.Hex()), zap.Error(err))
		status := httpStatus(err)
		writeJSON(w, status, errorBody(err, status))
		return
	}

	if fromCart {
		if err := oc.Carts.DeleteByUser(ctx, userID); err != nil {
			oc.Log.Warn("clear cart failed", zap.String("user_id", userID.Hex()), zap.Error(err))
		}
	}

	resp := map[string]interface{}{
		"order": result.Order,
	}
	if result.ClientSecret != "" {
		resp["client_secret"] = result.ClientSecret
	}
	writeJSON(w, http.StatusCreated, resp)
}

// UpdatePaymentStatus confirms an order's payment. The claimed status in
// the request body is only a hint; the gateway is the authority.
func (oc *OrderController) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(r); !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req paymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	orderID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	order, err := oc.Orders.ConfirmPayment(ctx, orderID, req.PaymentIntentID)
	if err != nil {
		oc.Log.Warn("confirm payment failed", zap.String("order_id", req.OrderID), zap.Error(err))
		status := httpStatus(err)
		writeJSON(w, status, errorBody(err, status))
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// GetMyOrders retrieves the authenticated user's orders
func (oc *OrderController) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orders, err := oc.Orders.ListByUser(ctx, userID)
	if err != nil {
		http.Error(w, "Failed to retrieve orders", http.StatusInternalServerError)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (oc *OrderController) resolveItems(ctx context.Context, userID primitive.ObjectID, reqItems []orderItemRequest) ([]models.CartItem, bool, error) {
	if len(reqItems) > 0 {
		items := make([]models.CartItem, 0, len(reqItems))
		for _, item := range reqItems {
			productID, err := primitive.ObjectIDFromHex(item.ProductID)
			if err != nil {
				return nil, false, errInvalidProductID
			}
			items = append(items, models.CartItem{ProductID: productID, Quantity: item.Quantity})
		}
		return items, false, nil
	}

	cart, err := oc.Carts.FindByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, false, services.ErrEmptyOrder
	}
	if err != nil {
		return nil, false, err
	}
	if len(cart.Items) == 0 {
		return nil, false, services.ErrEmptyOrder
	}
	return cart.Items, true, nil
}
