package services

import (
	"context"

	"go.uber.org/zap"

	"go-commerce-api/models"
	"go-commerce-api/repository"
)

// StatsReport is the admin dashboard summary. Empty collections yield
// zero counts and empty groupings, never an error.
type StatsReport struct {
	TotalOrders     int64            `json:"total_orders"`
	TotalRevenue    float64          `json:"total_revenue"`
	OrdersByStatus  map[string]int64 `json:"orders_by_status"`
	OrdersByPayment map[string]int64 `json:"orders_by_payment_status"`
	TotalProducts   int64            `json:"total_products"`
	TotalUsers      int64            `json:"total_users"`
	RecentOrders    []models.Order   `json:"recent_orders"`
}

// StatsService runs the read-only admin aggregation queries. It has no
// write side effects.
type StatsService struct {
	orders   repository.OrderStore
	products repository.ProductStore
	users    repository.UserStore
	log      *zap.Logger
}

func NewStatsService(
	orders repository.OrderStore,
	products repository.ProductStore,
	users repository.UserStore,
	log *zap.Logger,
) *StatsService {
	return &StatsService{orders: orders, products: products, users: users, log: log}
}

// Report gathers counts, sums and groupings over orders, products and
// users, plus the most recent orders.
func (s *StatsService) Report(ctx context.Context, recentLimit int) (*StatsReport, error) {
	totalOrders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.orders.RevenueTotal(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byPayment, err := s.orders.CountByPaymentStatus(ctx)
	if err != nil {
		return nil, err
	}
	totalProducts, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.orders.ListRecent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}

	if byStatus == nil {
		byStatus = map[string]int64{}
	}
	if byPayment == nil {
		byPayment = map[string]int64{}
	}
	if recent == nil {
		recent = []models.Order{}
	}

	return &StatsReport{
		TotalOrders:     totalOrders,
		TotalRevenue:    revenue,
		OrdersByStatus:  byStatus,
		OrdersByPayment: byPayment,
		TotalProducts:   totalProducts,
		TotalUsers:      totalUsers,
		RecentOrders:    recent,
	}, nil
}
