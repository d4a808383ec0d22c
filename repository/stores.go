package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-commerce-api/models"
)

// ProductStore is the catalog access surface.
type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	Insert(ctx context.Context, p *models.Product) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, p *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// DecrementStock reserves qty units, failing with ErrOutOfStock unless
	// the product still has at least qty in stock. The check and the
	// decrement are one conditional update, so concurrent checkouts cannot
	// oversell.
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
	// IncrementStock returns previously reserved units, used when a later
	// step of the checkout fails.
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
	Count(ctx context.Context) (int64, error)
}

// OrderStore is the order persistence surface.
type OrderStore interface {
	Insert(ctx context.Context, o *models.Order) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	ListRecent(ctx context.Context, limit int) ([]models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetPaymentIntent(ctx context.Context, id primitive.ObjectID, intentID string) error
	// SetPaymentStatus updates payment_status and appends the given history
	// entry in one update.
	SetPaymentStatus(ctx context.Context, id primitive.ObjectID, status string, entry models.StatusEntry) error
	// AppendStatus sets the current status and appends to the history.
	// History entries are never rewritten or removed.
	AppendStatus(ctx context.Context, id primitive.ObjectID, entry models.StatusEntry) error
	Count(ctx context.Context) (int64, error)
	// RevenueTotal sums total_amount over paid orders; zero for an empty
	// collection.
	RevenueTotal(ctx context.Context) (float64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountByPaymentStatus(ctx context.Context) (map[string]int64, error)
}

// UserStore is the account persistence surface.
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, u *models.User) (primitive.ObjectID, error)
	Count(ctx context.Context) (int64, error)
}

// CartStore is the per-user cart surface.
type CartStore interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Upsert(ctx context.Context, cart *models.Cart) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}
