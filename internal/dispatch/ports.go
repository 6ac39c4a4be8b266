// server/internal/dispatch/ports.go
package dispatch

import (
	"context"
	"time"

	"tradeops-api-server/internal/models"
)

// DispatchStamp là metadata gắn lên item khi chuyển sang Dispatched.
type DispatchStamp struct {
	OrderID      string
	CustomerCode string
	CustomerName string
	DispatchDate time.Time
}

// Ledger là cổng truy cập kho, key theo serial number.
type Ledger interface {
	// FindBySerial trả về ErrSerialNotFound nếu serial không tồn tại.
	FindBySerial(ctx context.Context, serial string) (*models.StockItem, error)
	// FindAvailableByProduct trả về tối đa limit item "In Stock" của một sản phẩm.
	FindAvailableByProduct(ctx context.Context, productName string, limit int) ([]models.StockItem, error)
	// MarkDispatched cập nhật có điều kiện (chỉ khi status còn "In Stock").
	// Trả về ErrSerialConflict nếu không khớp document nào.
	MarkDispatched(ctx context.Context, serial string, stamp DispatchStamp) error
	// ReturnToStock đưa mọi item Dispatched của một đơn về "In Stock",
	// xóa orderID, thông tin khách và dispatchDate. Trả về số item đã trả.
	ReturnToStock(ctx context.Context, orderID string) (int64, error)
}

// OrderStore đọc và cập nhật trạng thái đơn hàng.
type OrderStore interface {
	// FindByID trả về ErrOrderNotFound nếu đơn không tồn tại.
	FindByID(ctx context.Context, orderID string) (*models.SalesOrder, error)
	UpdateStatus(ctx context.Context, orderID string, status string) error
}

// CatalogStore tra cứu sản phẩm theo tên. Trả về (nil, nil) khi không có.
type CatalogStore interface {
	FindByName(ctx context.Context, name string) (*models.Product, error)
}

type ShipmentStore interface {
	Insert(ctx context.Context, shipment *models.Shipment) error
	DeleteByOrder(ctx context.Context, orderID string) (int64, error)
}

type RenewalStore interface {
	Insert(ctx context.Context, renewal *models.Renewal) error
}

// CompletedEvent là payload thông báo khi một dispatch hoàn tất.
type CompletedEvent struct {
	OrderID           string    `json:"orderID"`
	CustomerName      string    `json:"customerName"`
	ShipmentType      string    `json:"shipmentType"`
	DevicesDispatched int       `json:"devicesDispatched"`
	ServicesActivated int       `json:"servicesActivated"`
	Message           string    `json:"message"`
	DispatchDate      time.Time `json:"dispatchDate"`
}

// Notifier kích hoạt email thông báo cho đơn hàng (best-effort).
type Notifier interface {
	DispatchCompleted(ctx context.Context, event CompletedEvent) error
}

// EventPublisher đẩy sự kiện dispatch lên message broker (best-effort).
type EventPublisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
}
