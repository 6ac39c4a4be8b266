package dispatch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tradeops-api-server/internal/models"
)

func TestOpen(t *testing.T) {
	svc, deps := newTestService(newFakeLedger())
	deps.orders.orders["SO-1001"] = testOrder("SO-1001",
		models.OrderLine{ProductName: "Camera X", Quantity: 2},
	)
	dispatched := testOrder("SO-2002", models.OrderLine{ProductName: "Camera X", Quantity: 1})
	dispatched.Status = models.OrderStatusDispatched
	deps.orders.orders["SO-2002"] = dispatched

	sess, err := svc.Open(context.Background(), "SO-1001")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !strings.HasPrefix(sess.ID, "DS-") {
		t.Errorf("session ID = %q, want DS- prefix", sess.ID)
	}
	if sess.OrderID != "SO-1001" || sess.CustomerCode != "CUST-01" {
		t.Errorf("session order fields not copied: %+v", sess)
	}

	if _, err := svc.Open(context.Background(), "SO-9999"); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("Open(unknown order) error = %v, want ErrOrderNotFound", err)
	}
	if _, err := svc.Open(context.Background(), "SO-2002"); !errors.Is(err, ErrOrderDispatched) {
		t.Errorf("Open(dispatched order) error = %v, want ErrOrderDispatched", err)
	}
}

func TestResolve(t *testing.T) {
	svc, deps := newTestService(newFakeLedger())
	deps.catalog.products = map[string]*models.Product{
		"Camera X":       {Name: "Camera X", ProductType: models.ProductTypePhysical, Category: "CCTV"},
		"Backup Service": {Name: "Backup Service", ProductType: models.ProductTypeService, Category: "Managed IT"},
	}

	order := testOrder("SO-1001",
		models.OrderLine{ProductName: "Camera X", Quantity: 2},
		models.OrderLine{ProductName: "Backup Service", Quantity: 1},
		models.OrderLine{ProductName: "Cloud Charges", Quantity: 3}, // không có trong catalog
	)

	lines := svc.Resolve(context.Background(), order)
	if len(lines) != 3 {
		t.Fatalf("Resolve returned %d lines, want 3", len(lines))
	}

	device := lines[0]
	if device.IsService || device.ScannedQty != 0 || device.Category != "CCTV" {
		t.Errorf("device line = %+v, want physical, unscanned, category CCTV", device)
	}

	// Catalog nói service: thỏa mãn sẵn, giữ category từ catalog.
	catalogService := lines[1]
	if !catalogService.IsService || catalogService.ScannedQty != 1 || catalogService.Category != "Managed IT" {
		t.Errorf("catalog service line = %+v, want service pre-satisfied with category Managed IT", catalogService)
	}

	// Không có trong catalog nhưng khớp danh sách tên dịch vụ: fallback
	// sang category mặc định.
	nameService := lines[2]
	if !nameService.IsService || nameService.ScannedQty != 3 {
		t.Errorf("name-matched service line = %+v, want pre-satisfied qty 3", nameService)
	}
	if nameService.Category != "Digital Service" {
		t.Errorf("name-matched service category = %q, want Digital Service", nameService.Category)
	}
}

func TestResolveCatalogErrorIsNonFatal(t *testing.T) {
	svc, deps := newTestService(newFakeLedger())
	deps.catalog.err = errors.New("mongo down")

	order := testOrder("SO-1001",
		models.OrderLine{ProductName: "Camera X", Quantity: 1},
		models.OrderLine{ProductName: "Server Charges", Quantity: 1},
	)

	lines := svc.Resolve(context.Background(), order)
	if len(lines) != 2 {
		t.Fatalf("Resolve returned %d lines, want 2", len(lines))
	}
	if lines[0].IsService {
		t.Error("Camera X classified as service without catalog")
	}
	// Danh sách tên vẫn hoạt động khi catalog chết.
	if !lines[1].IsService {
		t.Error("Server Charges not classified as service by name fallback")
	}
}

func TestScanPreconditionOrder(t *testing.T) {
	ledger := newFakeLedger(
		inStockItem("SN-001", "Camera X"),
		inStockItem("SN-002", "Camera X"),
		inStockItem("SN-EXTRA", "Router Z"),
		models.StockItem{SerialNumber: "SN-GONE", ProductName: "Camera X", Status: models.StatusDispatched},
	)
	svc, _ := newTestService(ledger)

	sess := newTestSession(RequirementLine{ProductName: "Camera X", RequiredQty: 1})
	if _, err := svc.Scan(context.Background(), sess, " SN-001 "); err != nil {
		t.Fatalf("Scan with surrounding spaces: %v", err)
	}

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty input", "   ", ErrEmptySerial},
		{"duplicate beats ledger lookup", "SN-001", ErrAlreadyScanned},
		{"unknown serial", "SN-404", ErrSerialNotFound},
		{"already dispatched item", "SN-GONE", ErrAlreadyDispatched},
		{"product not in order", "SN-EXTRA", ErrProductNotInOrder},
		{"line already satisfied", "SN-002", ErrLineSatisfied},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Scan(context.Background(), sess, tc.input); !errors.Is(err, tc.wantErr) {
				t.Errorf("Scan(%q) error = %v, want %v", tc.input, err, tc.wantErr)
			}
		})
	}
}

func TestScanDuplicateCheckedBeforeLedger(t *testing.T) {
	// Ledger lỗi cũng không được che mất lỗi trùng serial.
	ledger := newFakeLedger(inStockItem("SN-001", "Camera X"))
	svc, _ := newTestService(ledger)

	sess := newTestSession(RequirementLine{ProductName: "Camera X", RequiredQty: 2})
	if _, err := svc.Scan(context.Background(), sess, "SN-001"); err != nil {
		t.Fatalf("first Scan: %v", err)
	}

	ledger.findErr = errors.New("mongo down")
	if _, err := svc.Scan(context.Background(), sess, "SN-001"); !errors.Is(err, ErrAlreadyScanned) {
		t.Errorf("Scan(duplicate) error = %v, want ErrAlreadyScanned before ledger lookup", err)
	}
}
