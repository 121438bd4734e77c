package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindpath/internal/model"
)

// FallbackLogRepo handles MongoDB operations for the append-only fallback
// usage log. The pipeline only appends; reads are for operators.
type FallbackLogRepo interface {
	Append(ctx context.Context, entry *model.FallbackLogEntry) error
	ListByTool(ctx context.Context, toolID string, since time.Time, limit int64) ([]*model.FallbackLogEntry, error)
	ListRecent(ctx context.Context, limit int64) ([]*model.FallbackLogEntry, error)
}

type fallbackLogRepo struct {
	events *mongo.Collection
}

// NewFallbackLogRepo creates a new fallback log repository
func NewFallbackLogRepo(db *mongo.Database) FallbackLogRepo {
	return &fallbackLogRepo{
		events: db.Collection("fallback_events"),
	}
}

func (r *fallbackLogRepo) Append(ctx context.Context, entry *model.FallbackLogEntry) error {
	_, err := r.events.InsertOne(ctx, entry)
	return err
}

func (r *fallbackLogRepo) ListByTool(ctx context.Context, toolID string, since time.Time, limit int64) ([]*model.FallbackLogEntry, error) {
	filter := bson.M{
		"toolId":    toolID,
		"timestamp": bson.M{"$gte": since},
	}
	return r.find(ctx, filter, limit)
}

func (r *fallbackLogRepo) ListRecent(ctx context.Context, limit int64) ([]*model.FallbackLogEntry, error) {
	return r.find(ctx, bson.M{}, limit)
}

func (r *fallbackLogRepo) find(ctx context.Context, filter bson.M, limit int64) ([]*model.FallbackLogEntry, error) {
	opts := options.Find().SetSort(bson.M{"timestamp": -1}).SetLimit(limit)
	cursor, err := r.events.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*model.FallbackLogEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
