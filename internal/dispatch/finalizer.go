// server/internal/dispatch/finalizer.go
package dispatch

import (
	"context"
	"fmt"
	"log"

	"tradeops-api-server/internal/models"
)

// CourierInfo là thông tin vận chuyển người dùng nhập khi xác nhận.
type CourierInfo struct {
	Partner string
	Mode    string
}

// Result tóm tắt một dispatch đã hoàn tất.
type Result struct {
	OrderID           string `json:"orderID"`
	ShipmentType      string `json:"shipmentType"`
	DevicesDispatched int    `json:"devicesDispatched"`
	ServicesActivated int    `json:"servicesActivated"`
	Message           string `json:"message"`
}

// Finalize xác nhận phiên quét: đánh dấu item Dispatched (cập nhật có điều
// kiện), tạo Shipment, tạo Renewal cho các dòng dịch vụ và phát thông báo.
//
// Chuỗi bước chạy tuần tự, không có transaction bao ngoài. Bước 1 và 2 là
// primary: lỗi ở đó hủy phần còn lại và StepError cho biết bao nhiêu item
// đã commit (không rollback). Renewal, email và event là best-effort.
func (s *Service) Finalize(ctx context.Context, sess *Session, courier CourierInfo, dispatchedBy string) (*Result, error) {
	if !sess.Complete() {
		return nil, ErrSessionIncomplete
	}

	now := s.now()
	stamp := DispatchStamp{
		OrderID:      sess.OrderID,
		CustomerCode: sess.CustomerCode,
		CustomerName: sess.CustomerName,
		DispatchDate: now,
	}

	// 1. Chuyển các item đã quét sang Dispatched. Filter theo status
	// "In Stock" nên serial bị phiên khác lấy mất sẽ nổi lên thành
	// ErrSerialConflict thay vì ghi đè.
	committed := 0
	for _, item := range sess.ScannedItems() {
		if err := s.Ledger.MarkDispatched(ctx, item.SerialNumber, stamp); err != nil {
			return nil, &StepError{
				Step:      "inventory",
				Committed: committed,
				Err:       fmt.Errorf("serial %s: %w", item.SerialNumber, err),
			}
		}
		committed++
	}

	// 2. Một Shipment cho cả lần xuất.
	serviceOnly := sess.ServiceOnly()
	shipment := &models.Shipment{
		OrderID:      sess.OrderID,
		DispatchedBy: dispatchedBy,
		CreatedAt:    now,
	}
	if serviceOnly {
		shipment.ShipmentType = models.ShipmentTypeServiceActivation
		shipment.CourierPartner = "N/A"
		shipment.ShippingMode = "Digital"
		shipment.ShippingCost = 0
	} else {
		shipment.ShipmentType = models.ShipmentTypeOutbound
		shipment.CourierPartner = courier.Partner
		shipment.ShippingMode = courier.Mode
		shipment.ShippingCost = sess.CourierCost
	}
	if err := s.Shipments.Insert(ctx, shipment); err != nil {
		return nil, &StepError{Step: "shipment", Committed: committed, Err: err}
	}

	// 3. Renewal cho mỗi dòng dịch vụ, hiệu lực 364 ngày từ ngày xuất.
	// Lỗi insert chỉ được log; dispatch vẫn tính là thành công.
	serviceLines := sess.ServiceLines()
	for _, line := range serviceLines {
		renewal := &models.Renewal{
			OrderID:          sess.OrderID,
			ProductType:      line.ProductName,
			CustomerName:     sess.CustomerName,
			DispatchDate:     now,
			RenewalStartDate: now,
			RenewalEndDate:   now.AddDate(0, 0, models.RenewalValidityDays),
			Status:           models.RenewalStatusActive,
			CreatedAt:        now,
		}
		if err := s.Renewals.Insert(ctx, renewal); err != nil {
			log.Printf("Order %s: failed to create renewal for %q: %v", sess.OrderID, line.ProductName, err)
		}
	}

	if err := s.Orders.UpdateStatus(ctx, sess.OrderID, models.OrderStatusDispatched); err != nil {
		log.Printf("Order %s: failed to update status: %v", sess.OrderID, err)
	}

	result := &Result{
		OrderID:           sess.OrderID,
		ShipmentType:      shipment.ShipmentType,
		DevicesDispatched: committed,
		ServicesActivated: len(serviceLines),
		Message:           completionMessage(sess.OrderID, committed, len(serviceLines)),
	}

	// 4+5. Thông báo: event nội bộ và email đều là fire-and-forget.
	event := CompletedEvent{
		OrderID:           sess.OrderID,
		CustomerName:      sess.CustomerName,
		ShipmentType:      shipment.ShipmentType,
		DevicesDispatched: result.DevicesDispatched,
		ServicesActivated: result.ServicesActivated,
		Message:           result.Message,
		DispatchDate:      now,
	}
	if s.Events != nil {
		if err := s.Events.Publish(ctx, sess.OrderID, event); err != nil {
			log.Printf("Order %s: failed to publish dispatch event: %v", sess.OrderID, err)
		}
	}
	if s.Notifier != nil {
		if err := s.Notifier.DispatchCompleted(ctx, event); err != nil {
			log.Printf("Order %s: notification email trigger failed: %v", sess.OrderID, err)
		}
	}

	return result, nil
}

func completionMessage(orderID string, devices, services int) string {
	switch {
	case devices > 0 && services > 0:
		return fmt.Sprintf("%d device(s) dispatched and %d service(s) activated for order %s", devices, services, orderID)
	case devices > 0:
		return fmt.Sprintf("%d device(s) dispatched for order %s", devices, orderID)
	default:
		return fmt.Sprintf("%d service(s) activated for order %s", services, orderID)
	}
}
