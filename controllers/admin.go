package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"go-commerce-api/models"
	"go-commerce-api/repository"
	"go-commerce-api/services"
)

// AdminController handles the admin dashboard routes: order management
// and the read-only aggregation queries.
type AdminController struct {
	Orders *services.OrderService
	Stats  *services.StatsService
	Log    *zap.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(orders *services.OrderService, stats *services.StatsService, log *zap.Logger) *AdminController {
	return &AdminController{Orders: orders, Stats: stats, Log: log}
}

// ListOrders retrieves all orders, newest first
func (ac *AdminController) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	orders, err := ac.Orders.ListAll(ctx)
	if err != nil {
		http.Error(w, "Failed to retrieve orders", http.StatusInternalServerError)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// OrderStats runs the dashboard aggregation queries
func (ac *AdminController) OrderStats(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("recent"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "Invalid recent limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	report, err := ac.Stats.Report(ctx, limit)
	if err != nil {
		ac.Log.Error("stats aggregation failed", zap.Error(err))
		http.Error(w, "Failed to compute stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// UpdateOrderStatus appends a status transition to an order's history
func (ac *AdminController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	orderID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := ac.Orders.UpdateStatus(ctx, orderID, req.Status, req.Note)
	if err != nil {
		status := httpStatus(err)
		writeJSON(w, status, errorBody(err, status))
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// DeleteOrder removes an order
func (ac *AdminController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	orderID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err = ac.Orders.Delete(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to delete order", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Order deleted"})
}
