// server/internal/store/mongo_orders.go
package store

import (
	"context"
	"time"

	"tradeops-api-server/internal/dispatch"
	"tradeops-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoOrderStore struct {
	DB *mongo.Database
}

func (s *MongoOrderStore) collection() *mongo.Collection {
	return s.DB.Collection("sales_orders")
}

func (s *MongoOrderStore) FindByID(ctx context.Context, orderID string) (*models.SalesOrder, error) {
	var order models.SalesOrder
	err := s.collection().FindOne(ctx, bson.M{"orderID": orderID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, dispatch.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *MongoOrderStore) UpdateStatus(ctx context.Context, orderID string, status string) error {
	_, err := s.collection().UpdateOne(ctx,
		bson.M{"orderID": orderID},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	return err
}
