// server/internal/store/mongo_shipments.go
package store

import (
	"context"

	"tradeops-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoShipmentStore struct {
	DB *mongo.Database
}

func (s *MongoShipmentStore) collection() *mongo.Collection {
	return s.DB.Collection("shipments")
}

func (s *MongoShipmentStore) Insert(ctx context.Context, shipment *models.Shipment) error {
	result, err := s.collection().InsertOne(ctx, shipment)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		shipment.ID = oid
	}
	return nil
}

func (s *MongoShipmentStore) DeleteByOrder(ctx context.Context, orderID string) (int64, error) {
	result, err := s.collection().DeleteMany(ctx, bson.M{"orderID": orderID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
