// server/internal/models/stock_item.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái của một thiết bị trong kho.
const (
	StatusInStock    = "In Stock"
	StatusDispatched = "Dispatched"
)

// StockItem là một thiết bị vật lý duy nhất, định danh bằng serial number.
// Một item Dispatched luôn có OrderID khác rỗng.
type StockItem struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SerialNumber string             `bson:"serialNumber" json:"serialNumber"` // Unique key, e.g., "CAMX-00123"
	ProductName  string             `bson:"productName" json:"productName"`
	Category     string             `bson:"category,omitempty" json:"category"`
	Status       string             `bson:"status" json:"status"` // "In Stock" or "Dispatched"
	OrderID      string             `bson:"orderID,omitempty" json:"orderID,omitempty"`
	CustomerCode string             `bson:"customerCode,omitempty" json:"customerCode,omitempty"`
	CustomerName string             `bson:"customerName,omitempty" json:"customerName,omitempty"`
	DispatchDate *time.Time         `bson:"dispatchDate,omitempty" json:"dispatchDate,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
