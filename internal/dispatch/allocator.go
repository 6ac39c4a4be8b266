// server/internal/dispatch/allocator.go
package dispatch

import (
	"context"
	"fmt"
)

// BulkResult là kết quả của một lần cấp phát hàng loạt.
type BulkResult struct {
	Added   int      `json:"added"`
	Serials []string `json:"serials"`
}

// BulkAllocate lấy tối đa số lượng còn thiếu các item "In Stock" của một
// sản phẩm và đưa vào phiên, bỏ qua serial đã quét lẻ trước đó. Giới hạn
// truy vấn đảm bảo không bao giờ vượt requiredQty.
func (s *Service) BulkAllocate(ctx context.Context, sess *Session, productName string) (*BulkResult, error) {
	if !sess.HasLineFor(productName) {
		return nil, ErrProductNotInOrder
	}
	remaining := sess.RemainingFor(productName)
	if remaining <= 0 {
		return nil, ErrLineSatisfied
	}

	items, err := s.Ledger.FindAvailableByProduct(ctx, productName, remaining)
	if err != nil {
		return nil, fmt.Errorf("query available stock: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNoAvailableStock
	}

	result := &BulkResult{}
	for _, item := range items {
		if sess.Has(item.SerialNumber) {
			// Đã được quét lẻ ngay trước khi bấm bulk.
			continue
		}
		if err := sess.Allocate(item); err != nil {
			break
		}
		result.Added++
		result.Serials = append(result.Serials, item.SerialNumber)
	}

	if result.Added == 0 {
		return nil, ErrAllCandidatesScanned
	}
	return result, nil
}
