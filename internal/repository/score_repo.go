package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hydropoints/internal/model"
)

// ScoreRepo handles MongoDB operations for persisted trust scores
type ScoreRepo interface {
	Upsert(ctx context.Context, result *model.ScoreResult) error
	GetByUserID(ctx context.Context, userID string) (*model.ScoreResult, error)
}

type scoreRepo struct {
	collection *mongo.Collection
}

// NewScoreRepo creates a new score repository
func NewScoreRepo(db *mongo.Database) ScoreRepo {
	return &scoreRepo{
		collection: db.Collection("trust_scores"),
	}
}

// Upsert writes the result keyed by user with full-replace semantics.
// Last write wins; there is never a partial merge.
func (r *scoreRepo) Upsert(ctx context.Context, result *model.ScoreResult) error {
	filter := bson.M{"_id": result.UserID}
	_, err := r.collection.ReplaceOne(ctx, filter, result, options.Replace().SetUpsert(true))
	return err
}

// GetByUserID returns the persisted result, or nil if none exists yet
func (r *scoreRepo) GetByUserID(ctx context.Context, userID string) (*model.ScoreResult, error) {
	var result model.ScoreResult
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&result)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
