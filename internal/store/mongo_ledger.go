// server/internal/store/mongo_ledger.go
package store

import (
	"context"
	"time"

	"tradeops-api-server/internal/dispatch"
	"tradeops-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoLedger là cài đặt Mongo của cổng kho (collection "stock_items").
type MongoLedger struct {
	DB *mongo.Database
}

func (l *MongoLedger) collection() *mongo.Collection {
	return l.DB.Collection("stock_items")
}

func (l *MongoLedger) FindBySerial(ctx context.Context, serial string) (*models.StockItem, error) {
	var item models.StockItem
	err := l.collection().FindOne(ctx, bson.M{"serialNumber": serial}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, dispatch.ErrSerialNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (l *MongoLedger) FindAvailableByProduct(ctx context.Context, productName string, limit int) ([]models.StockItem, error) {
	opts := options.Find().SetLimit(int64(limit)).SetSort(bson.M{"createdAt": 1})
	cursor, err := l.collection().Find(ctx, bson.M{
		"productName": productName,
		"status":      models.StatusInStock,
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.StockItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// MarkDispatched chỉ cập nhật khi item còn "In Stock". Không khớp document
// nào nghĩa là một dispatch khác đã lấy item này trước.
func (l *MongoLedger) MarkDispatched(ctx context.Context, serial string, stamp dispatch.DispatchStamp) error {
	result, err := l.collection().UpdateOne(ctx,
		bson.M{"serialNumber": serial, "status": models.StatusInStock},
		bson.M{"$set": bson.M{
			"status":       models.StatusDispatched,
			"orderID":      stamp.OrderID,
			"customerCode": stamp.CustomerCode,
			"customerName": stamp.CustomerName,
			"dispatchDate": stamp.DispatchDate,
			"updatedAt":    time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return dispatch.ErrSerialConflict
	}
	return nil
}

func (l *MongoLedger) ReturnToStock(ctx context.Context, orderID string) (int64, error) {
	result, err := l.collection().UpdateMany(ctx,
		bson.M{"orderID": orderID, "status": models.StatusDispatched},
		bson.M{
			"$set": bson.M{
				"status":    models.StatusInStock,
				"updatedAt": time.Now(),
			},
			"$unset": bson.M{
				"orderID":      "",
				"customerCode": "",
				"customerName": "",
				"dispatchDate": "",
			},
		},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
