package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const subscriptionsCollection = "subscriptions"

// SubscriptionRepository reads subscription edges for aggregation. The two
// counts and the existence check are each a single indexed query.
type SubscriptionRepository struct {
	coll *mongo.Collection
}

func NewSubscriptionRepository(db *mongo.Database) *SubscriptionRepository {
	return &SubscriptionRepository{coll: db.Collection(subscriptionsCollection)}
}

func (r *SubscriptionRepository) CountByChannel(ctx context.Context, channelID string) (int64, error) {
	return r.count(ctx, "channel", channelID)
}

func (r *SubscriptionRepository) CountBySubscriber(ctx context.Context, subscriberID string) (int64, error) {
	return r.count(ctx, "subscriber", subscriberID)
}

func (r *SubscriptionRepository) count(ctx context.Context, field, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, fmt.Errorf("invalid %s id %q", field, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{field: oid})
	if err != nil {
		return 0, fmt.Errorf("count subscriptions by %s: %w", field, err)
	}
	return n, nil
}

func (r *SubscriptionRepository) Exists(ctx context.Context, channelID, subscriberID string) (bool, error) {
	channelOID, err := primitive.ObjectIDFromHex(channelID)
	if err != nil {
		return false, nil
	}
	subscriberOID, err := primitive.ObjectIDFromHex(subscriberID)
	if err != nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err = r.coll.FindOne(ctx, bson.M{"channel": channelOID, "subscriber": subscriberOID}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("check subscription: %w", err)
	}
	return true, nil
}

// EnsureIndexes creates the edge indexes backing the aggregation queries.
func (r *SubscriptionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "channel", Value: 1}, {Key: "subscriber", Value: 1}}},
		{Keys: bson.D{{Key: "subscriber", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
