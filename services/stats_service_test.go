package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"go-commerce-api/models"
)

func TestStatsReportEmptyCollections(t *testing.T) {
	svc := NewStatsService(newFakeOrderStore(), newFakeProductStore(), newFakeUserStore(), zap.NewNop())

	report, err := svc.Report(context.Background(), 10)
	require.NoError(t, err)

	assert.Zero(t, report.TotalOrders)
	assert.Zero(t, report.TotalRevenue)
	assert.Zero(t, report.TotalProducts)
	assert.Zero(t, report.TotalUsers)
	assert.NotNil(t, report.OrdersByStatus)
	assert.Empty(t, report.OrdersByStatus)
	assert.NotNil(t, report.OrdersByPayment)
	assert.Empty(t, report.OrdersByPayment)
	assert.NotNil(t, report.RecentOrders)
	assert.Empty(t, report.RecentOrders)
}

func TestStatsReportCountsAndRevenue(t *testing.T) {
	orders := newFakeOrderStore()
	userID := primitive.NewObjectID()

	paid := &models.Order{UserID: userID, TotalAmount: 40, Status: models.StatusShipped, PaymentStatus: models.PaymentPaid}
	pending := &models.Order{UserID: userID, TotalAmount: 25, Status: models.StatusProcessing, PaymentStatus: models.PaymentPending}
	paidToo := &models.Order{UserID: userID, TotalAmount: 10, Status: models.StatusProcessing, PaymentStatus: models.PaymentPaid}
	for _, o := range []*models.Order{paid, pending, paidToo} {
		_, err := orders.Insert(context.Background(), o)
		require.NoError(t, err)
	}

	products := newFakeProductStore(product("mug", 10, 5))
	users := newFakeUserStore(&models.User{ID: userID, Email: "ada@example.com"})
	svc := NewStatsService(orders, products, users, zap.NewNop())

	report, err := svc.Report(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, int64(3), report.TotalOrders)
	assert.Equal(t, 50.0, report.TotalRevenue, "revenue sums paid orders only")
	assert.Equal(t, int64(2), report.OrdersByStatus[models.StatusProcessing])
	assert.Equal(t, int64(1), report.OrdersByStatus[models.StatusShipped])
	assert.Equal(t, int64(2), report.OrdersByPayment[models.PaymentPaid])
	assert.Equal(t, int64(1), report.OrdersByPayment[models.PaymentPending])
	assert.Equal(t, int64(1), report.TotalProducts)
	assert.Equal(t, int64(1), report.TotalUsers)
	assert.Len(t, report.RecentOrders, 2)
}
