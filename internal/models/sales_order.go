// server/internal/models/sales_order.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusOpen       = "OPEN"
	OrderStatusDispatched = "DISPATCHED"
)

// OrderLine là một dòng sản phẩm trong đơn hàng.
type OrderLine struct {
	ProductName string `bson:"productName" json:"productName"`
	Quantity    int    `bson:"quantity" json:"quantity"`
}

type SalesOrder struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID      string             `bson:"orderID" json:"orderID"` // User-friendly unique ID, e.g., "SO-3F9A21BC"
	CustomerCode string             `bson:"customerCode" json:"customerCode"`
	CustomerName string             `bson:"customerName" json:"customerName"`
	Items        []OrderLine        `bson:"items" json:"items"`
	CourierCost  float64            `bson:"courierCost" json:"courierCost"`
	Status       string             `bson:"status" json:"status"` // OPEN, DISPATCHED
	CreatedBy    string             `bson:"createdBy" json:"createdBy"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
