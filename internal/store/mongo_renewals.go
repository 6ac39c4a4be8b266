// server/internal/store/mongo_renewals.go
package store

import (
	"context"

	"tradeops-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoRenewalStore struct {
	DB *mongo.Database
}

func (s *MongoRenewalStore) Insert(ctx context.Context, renewal *models.Renewal) error {
	result, err := s.DB.Collection("renewals").InsertOne(ctx, renewal)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		renewal.ID = oid
	}
	return nil
}
