package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-commerce-api/models"
)

type cartStore struct {
	col *mongo.Collection
}

// NewCartStore creates a CartStore backed by the "carts" collection.
func NewCartStore(db *mongo.Database) CartStore {
	return &cartStore{col: db.Collection("carts")}
}

func (s *cartStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := s.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *cartStore) Upsert(ctx context.Context, cart *models.Cart) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"user_id": cart.UserID},
		bson.M{"$set": bson.M{"items": cart.Items, "user_id": cart.UserID}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *cartStore) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}
