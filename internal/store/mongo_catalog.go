// server/internal/store/mongo_catalog.go
package store

import (
	"context"

	"tradeops-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoCatalogStore struct {
	DB *mongo.Database
}

// FindByName trả về (nil, nil) khi sản phẩm không có trong catalog;
// resolver sẽ rơi về luật so khớp tên cũ.
func (s *MongoCatalogStore) FindByName(ctx context.Context, name string) (*models.Product, error) {
	var product models.Product
	err := s.DB.Collection("products").FindOne(ctx, bson.M{"name": name}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}
