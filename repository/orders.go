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

type orderStore struct {
	col *mongo.Collection
}

// NewOrderStore creates an OrderStore backed by the "orders" collection.
func NewOrderStore(db *mongo.Database) OrderStore {
	return &orderStore{col: db.Collection("orders")}
}

func (s *orderStore) Insert(ctx context.Context, o *models.Order) (primitive.ObjectID, error) {
	result, err := s.col.InsertOne(ctx, o)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (s *orderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var o models.Order
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *orderStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (s *orderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (s *orderStore) ListRecent(ctx context.Context, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	return s.find(ctx, bson.M{}, opts)
}

func (s *orderStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Order, error) {
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *orderStore) SetPaymentIntent(ctx context.Context, id primitive.ObjectID, intentID string) error {
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"payment_intent_id": intentID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *orderStore) SetPaymentStatus(ctx context.Context, id primitive.ObjectID, status string, entry models.StatusEntry) error {
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set":  bson.M{"payment_status": status},
		"$push": bson.M{"status_history": entry},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *orderStore) AppendStatus(ctx context.Context, id primitive.ObjectID, entry models.StatusEntry) error {
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set":  bson.M{"status": entry.Status},
		"$push": bson.M{"status_history": entry},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *orderStore) Count(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{})
}

func (s *orderStore) RevenueTotal(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"payment_status": models.PaymentPaid}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$total_amount"},
		}}},
	}
	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

func (s *orderStore) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return s.countBy(ctx, "$status")
}

func (s *orderStore) CountByPaymentStatus(ctx context.Context) (map[string]int64, error) {
	return s.countBy(ctx, "$payment_status")
}

func (s *orderStore) countBy(ctx context.Context, field string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   field,
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(results))
	for _, r := range results {
		counts[r.ID] = r.Count
	}
	return counts, nil
}
