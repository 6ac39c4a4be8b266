// server/internal/dispatch/service.go
package dispatch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"tradeops-api-server/internal/catalog"
	"tradeops-api-server/internal/models"

	"github.com/google/uuid"
)

// Service điều phối toàn bộ luồng xuất hàng: mở phiên, quét, cấp phát
// hàng loạt, xác nhận và hoàn tác.
type Service struct {
	Ledger    Ledger
	Orders    OrderStore
	Catalog   CatalogStore
	Shipments ShipmentStore
	Renewals  RenewalStore
	Notifier  Notifier
	Events    EventPublisher

	// Now cho phép test cố định thời gian; mặc định là time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Open tạo một phiên quét mới cho một đơn hàng đang mở.
func (s *Service) Open(ctx context.Context, orderID string) (*Session, error) {
	order, err := s.Orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == models.OrderStatusDispatched {
		return nil, ErrOrderDispatched
	}

	lines := s.Resolve(ctx, order)
	sessionID := fmt.Sprintf("DS-%s", strings.ToUpper(uuid.New().String()[:8]))
	return NewSession(sessionID, order, lines), nil
}

// Resolve chuyển các dòng của đơn hàng thành các dòng yêu cầu đã phân loại.
// Dòng dịch vụ được thỏa mãn sẵn. Tra cứu catalog để làm giàu category là
// best-effort: lỗi tra cứu không chặn việc mở phiên.
func (s *Service) Resolve(ctx context.Context, order *models.SalesOrder) []RequirementLine {
	lines := make([]RequirementLine, 0, len(order.Items))
	for _, item := range order.Items {
		product, err := s.Catalog.FindByName(ctx, item.ProductName)
		if err != nil {
			log.Printf("Catalog lookup failed for %q: %v", item.ProductName, err)
			product = nil
		}

		isService := catalog.IsServiceProduct(item.ProductName, product)

		category := ""
		if product != nil {
			category = product.Category
		}
		if isService && category == "" {
			category = catalog.DefaultServiceCategory
		}

		line := RequirementLine{
			ProductName: item.ProductName,
			RequiredQty: item.Quantity,
			IsService:   isService,
			Category:    category,
		}
		if isService {
			// Dòng dịch vụ không cần quét serial.
			line.ScannedQty = line.RequiredQty
		}
		lines = append(lines, line)
	}
	return lines
}

// Scan xử lý một lần nhập serial (bàn phím hoặc máy quét barcode).
// Các điều kiện được kiểm tra theo thứ tự, lỗi đầu tiên thắng.
func (s *Service) Scan(ctx context.Context, sess *Session, input string) (*models.StockItem, error) {
	serial := strings.TrimSpace(input)
	if serial == "" {
		return nil, ErrEmptySerial
	}
	if sess.Has(serial) {
		return nil, ErrAlreadyScanned
	}

	item, err := s.Ledger.FindBySerial(ctx, serial)
	if err != nil {
		return nil, err
	}
	if item.Status == models.StatusDispatched {
		return nil, ErrAlreadyDispatched
	}

	if err := sess.Allocate(*item); err != nil {
		return nil, err
	}
	return item, nil
}
