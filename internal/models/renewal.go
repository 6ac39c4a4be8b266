// server/internal/models/renewal.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const RenewalStatusActive = "Active"

// RenewalValidityDays là cửa sổ hiệu lực cố định của một chu kỳ dịch vụ.
const RenewalValidityDays = 364

// Renewal theo dõi một chu kỳ dịch vụ định kỳ, tạo ra khi xuất một dòng dịch vụ.
type Renewal struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID          string             `bson:"orderID" json:"orderID"`
	ProductType      string             `bson:"productType" json:"productType"` // e.g., "Cloud Charges"
	CustomerName     string             `bson:"customerName,omitempty" json:"customerName,omitempty"`
	DispatchDate     time.Time          `bson:"dispatchDate" json:"dispatchDate"`
	RenewalStartDate time.Time          `bson:"renewalStartDate" json:"renewalStartDate"`
	RenewalEndDate   time.Time          `bson:"renewalEndDate" json:"renewalEndDate"`
	Status           string             `bson:"status" json:"status"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}
