// server/internal/dispatch/session.go
package dispatch

import (
	"strings"
	"sync"
	"time"

	"tradeops-api-server/internal/models"
)

// RequirementLine là một dòng yêu cầu của đơn hàng trong phiên quét.
// Dòng dịch vụ được thỏa mãn sẵn từ lúc mở phiên (không cần quét serial).
type RequirementLine struct {
	ProductName    string   `json:"productName"`
	RequiredQty    int      `json:"requiredQty"`
	IsService      bool     `json:"isService"`
	Category       string   `json:"category"`
	ScannedQty     int      `json:"scannedQty"`
	ScannedSerials []string `json:"scannedSerials"`
}

// Remaining trả về số lượng còn phải quét cho dòng này.
func (l *RequirementLine) Remaining() int {
	r := l.RequiredQty - l.ScannedQty
	if r < 0 {
		return 0
	}
	return r
}

// Session là trạng thái tạm thời của một lần xuất hàng, chỉ tồn tại trong
// bộ nhớ và bị hủy khi xác nhận hoặc hủy bỏ. Mọi serial trong scanned đều
// nằm trong đúng một dòng ScannedSerials.
type Session struct {
	ID           string
	OrderID      string
	CustomerCode string
	CustomerName string
	CourierCost  float64
	CreatedAt    time.Time

	mu        sync.Mutex
	lines     []RequirementLine
	scanned   map[string]models.StockItem
	scanOrder []string
}

func NewSession(id string, order *models.SalesOrder, lines []RequirementLine) *Session {
	return &Session{
		ID:           id,
		OrderID:      order.OrderID,
		CustomerCode: order.CustomerCode,
		CustomerName: order.CustomerName,
		CourierCost:  order.CourierCost,
		CreatedAt:    time.Now(),
		lines:        lines,
		scanned:      make(map[string]models.StockItem),
	}
}

// Has kiểm tra serial đã có trong phiên chưa.
func (s *Session) Has(serial string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.scanned[serial]
	return ok
}

// Allocate gắn một item đã được ledger xác nhận vào dòng yêu cầu phù hợp.
// Không ghi gì xuống storage; chỉ là bookkeeping trong phiên.
// Nếu nhiều dòng trùng tên sản phẩm, dòng đầu tiên còn chỗ được chọn.
func (s *Session) Allocate(item models.StockItem) error {
	serial := strings.TrimSpace(item.SerialNumber)
	if serial == "" {
		return ErrEmptySerial
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.scanned[serial]; ok {
		return ErrAlreadyScanned
	}

	productInOrder := false
	for i := range s.lines {
		line := &s.lines[i]
		if line.ProductName != item.ProductName {
			continue
		}
		productInOrder = true
		if line.ScannedQty >= line.RequiredQty {
			continue
		}
		line.ScannedQty++
		line.ScannedSerials = append(line.ScannedSerials, serial)
		s.scanned[serial] = item
		s.scanOrder = append(s.scanOrder, serial)
		return nil
	}

	if productInOrder {
		return ErrLineSatisfied
	}
	return ErrProductNotInOrder
}

// Remove gỡ một serial khỏi phiên, trả về false nếu serial không có.
func (s *Session) Remove(serial string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.scanned[serial]
	if !ok {
		return false
	}
	delete(s.scanned, serial)

	for i, sn := range s.scanOrder {
		if sn == serial {
			s.scanOrder = append(s.scanOrder[:i], s.scanOrder[i+1:]...)
			break
		}
	}

	for i := range s.lines {
		line := &s.lines[i]
		if line.ProductName != item.ProductName {
			continue
		}
		for j, sn := range line.ScannedSerials {
			if sn == serial {
				line.ScannedSerials = append(line.ScannedSerials[:j], line.ScannedSerials[j+1:]...)
				if line.ScannedQty > 0 {
					line.ScannedQty--
				}
				return true
			}
		}
	}
	return true
}

// Complete báo phiên đã sẵn sàng xác nhận: mọi dòng đều đủ số lượng.
func (s *Session) Complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].ScannedQty < s.lines[i].RequiredQty {
			return false
		}
	}
	return true
}

// Lines trả về bản sao các dòng yêu cầu (an toàn để serialize).
func (s *Session) Lines() []RequirementLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RequirementLine, len(s.lines))
	for i, line := range s.lines {
		out[i] = line
		out[i].ScannedSerials = append([]string(nil), line.ScannedSerials...)
	}
	return out
}

// ScannedItems trả về các item đã quét theo thứ tự quét.
func (s *Session) ScannedItems() []models.StockItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.StockItem, 0, len(s.scanOrder))
	for _, serial := range s.scanOrder {
		out = append(out, s.scanned[serial])
	}
	return out
}

// RemainingFor trả về tổng số lượng còn thiếu của một sản phẩm.
func (s *Session) RemainingFor(productName string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for i := range s.lines {
		if s.lines[i].ProductName == productName {
			total += s.lines[i].Remaining()
		}
	}
	return total
}

// HasLineFor kiểm tra sản phẩm có trong đơn hàng không.
func (s *Session) HasLineFor(productName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].ProductName == productName {
			return true
		}
	}
	return false
}

// ServiceOnly báo đơn hàng chỉ gồm các dòng dịch vụ.
func (s *Session) ServiceOnly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if !s.lines[i].IsService {
			return false
		}
	}
	return len(s.lines) > 0
}

// ServiceLines trả về các dòng dịch vụ của phiên.
func (s *Session) ServiceLines() []RequirementLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []RequirementLine
	for i := range s.lines {
		if s.lines[i].IsService {
			out = append(out, s.lines[i])
		}
	}
	return out
}
