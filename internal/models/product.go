// server/internal/models/product.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ProductTypePhysical = "physical"
	ProductTypeService  = "service"
)

// Product là một mục trong danh mục sản phẩm. ProductType là nguồn
// phân loại chính thức cho việc xuất hàng (physical cần quét serial,
// service thì không).
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	SKU         string             `bson:"sku,omitempty" json:"sku,omitempty"`
	ProductType string             `bson:"productType" json:"productType"` // physical or service
	Category    string             `bson:"category,omitempty" json:"category"`
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
