// server/internal/models/shipment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ShipmentTypeOutbound          = "Outbound"
	ShipmentTypeServiceActivation = "ServiceActivation"
)

// Shipment là một bản ghi cho mỗi lần xác nhận xuất hàng (không phải mỗi item).
type Shipment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID        string             `bson:"orderID" json:"orderID"`
	ShipmentType   string             `bson:"shipmentType" json:"shipmentType"` // Outbound or ServiceActivation
	CourierPartner string             `bson:"courierPartner" json:"courierPartner"`
	ShippingMode   string             `bson:"shippingMode" json:"shippingMode"`
	ShippingCost   float64            `bson:"shippingCost" json:"shippingCost"`
	ProofURL       string             `bson:"proofURL,omitempty" json:"proofURL,omitempty"` // Courier receipt photo on S3
	DispatchedBy   string             `bson:"dispatchedBy" json:"dispatchedBy"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
