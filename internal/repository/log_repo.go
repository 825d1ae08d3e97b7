package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hydropoints/internal/model"
)

// LogRepo handles MongoDB operations for intake log entries
type LogRepo interface {
	Create(ctx context.Context, entry *model.DailyLogEntry) error
	GetWindow(ctx context.Context, userID string, windowDays int) ([]model.DailyLogEntry, error)
	ListActiveUserIDs(ctx context.Context, windowDays int) ([]string, error)
}

type logRepo struct {
	collection *mongo.Collection
}

// NewLogRepo creates a new log repository
func NewLogRepo(db *mongo.Database) LogRepo {
	return &logRepo{
		collection: db.Collection("logs"),
	}
}

func (r *logRepo) Create(ctx context.Context, entry *model.DailyLogEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if entry.Source == "" {
		entry.Source = model.SourceManual
	}

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid.Hex()
	}
	return nil
}

// GetWindow returns the trailing window of entries, ascending by date
func (r *logRepo) GetWindow(ctx context.Context, userID string, windowDays int) ([]model.DailyLogEntry, error) {
	cutoff := time.Now().AddDate(0, 0, -windowDays)
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": cutoff},
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []model.DailyLogEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListActiveUserIDs returns the IDs of every user with at least one entry in
// the trailing window. The batch sweep iterates exactly this set.
func (r *logRepo) ListActiveUserIDs(ctx context.Context, windowDays int) ([]string, error) {
	cutoff := time.Now().AddDate(0, 0, -windowDays)
	filter := bson.M{"date": bson.M{"$gte": cutoff}}

	raw, err := r.collection.Distinct(ctx, "userId", filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
