// server/internal/dispatch/reversal.go
package dispatch

import (
	"context"
	"log"

	"tradeops-api-server/internal/models"
)

// ReversalResult là số bản ghi đã khôi phục khi xóa một dispatch.
type ReversalResult struct {
	ItemsReturned    int64 `json:"itemsReturned"`
	ShipmentsDeleted int64 `json:"shipmentsDeleted"`
}

// Reverse hoàn tác một dispatch: item về "In Stock", Shipment bị xóa.
// Renewal được giữ nguyên có chủ đích — chu kỳ dịch vụ được tính phí độc
// lập với việc thu hồi hàng vật lý (xem DESIGN.md).
func (s *Service) Reverse(ctx context.Context, orderID string) (*ReversalResult, error) {
	returned, err := s.Ledger.ReturnToStock(ctx, orderID)
	if err != nil {
		return nil, &StepError{Step: "inventory", Committed: 0, Err: err}
	}

	deleted, err := s.Shipments.DeleteByOrder(ctx, orderID)
	if err != nil {
		return nil, &StepError{Step: "shipment", Committed: int(returned), Err: err}
	}

	if err := s.Orders.UpdateStatus(ctx, orderID, models.OrderStatusOpen); err != nil {
		log.Printf("Order %s: failed to reopen after reversal: %v", orderID, err)
	}

	return &ReversalResult{ItemsReturned: returned, ShipmentsDeleted: deleted}, nil
}
