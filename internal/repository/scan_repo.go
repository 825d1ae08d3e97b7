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

// ScanRepo handles MongoDB operations for barcode scans
type ScanRepo interface {
	Create(ctx context.Context, scan *model.ExternalScan) error
	GetWindow(ctx context.Context, userID string, windowDays int) ([]model.ExternalScan, error)
}

type scanRepo struct {
	collection *mongo.Collection
}

// NewScanRepo creates a new scan repository
func NewScanRepo(db *mongo.Database) ScanRepo {
	return &scanRepo{
		collection: db.Collection("scans"),
	}
}

func (r *scanRepo) Create(ctx context.Context, scan *model.ExternalScan) error {
	if scan.ScannedAt.IsZero() {
		scan.ScannedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, scan)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		scan.ID = oid.Hex()
	}
	return nil
}

func (r *scanRepo) GetWindow(ctx context.Context, userID string, windowDays int) ([]model.ExternalScan, error) {
	cutoff := time.Now().AddDate(0, 0, -windowDays)
	filter := bson.M{
		"userId":    userID,
		"scannedAt": bson.M{"$gte": cutoff},
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "scannedAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var scans []model.ExternalScan
	if err = cursor.All(ctx, &scans); err != nil {
		return nil, err
	}
	return scans, nil
}
