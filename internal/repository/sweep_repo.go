package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"hydropoints/internal/model"
)

// SweepRepo handles MongoDB operations for batch sweep run records
type SweepRepo interface {
	Save(ctx context.Context, result *model.SweepResult) error
	GetByRunID(ctx context.Context, runID string) (*model.SweepResult, error)
}

type sweepRepo struct {
	collection *mongo.Collection
}

// NewSweepRepo creates a new sweep repository
func NewSweepRepo(db *mongo.Database) SweepRepo {
	return &sweepRepo{
		collection: db.Collection("sweep_runs"),
	}
}

func (r *sweepRepo) Save(ctx context.Context, result *model.SweepResult) error {
	_, err := r.collection.InsertOne(ctx, result)
	return err
}

func (r *sweepRepo) GetByRunID(ctx context.Context, runID string) (*model.SweepResult, error) {
	var result model.SweepResult
	err := r.collection.FindOne(ctx, bson.M{"_id": runID}).Decode(&result)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
