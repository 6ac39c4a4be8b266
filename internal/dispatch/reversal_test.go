package dispatch

import (
	"context"
	"errors"
	"testing"

	"tradeops-api-server/internal/models"
)

func TestReverseRestoresDispatch(t *testing.T) {
	ledger := newFakeLedger(
		inStockItem("SN-001", "Camera X"),
		inStockItem("SN-002", "Camera X"),
	)
	svc, deps := newTestService(ledger)

	sess := NewSession("DS-REV00001", testOrder("SO-1001"), []RequirementLine{
		{ProductName: "Camera X", RequiredQty: 2},
		{ProductName: "Cloud Charges", RequiredQty: 1, IsService: true, ScannedQty: 1},
	})
	for _, serial := range []string{"SN-001", "SN-002"} {
		if _, err := svc.Scan(context.Background(), sess, serial); err != nil {
			t.Fatalf("Scan %s: %v", serial, err)
		}
	}
	if _, err := svc.Finalize(context.Background(), sess, testCourier, "ops@example.com"); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	result, err := svc.Reverse(context.Background(), "SO-1001")
	if err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	if result.ItemsReturned != 2 || result.ShipmentsDeleted != 1 {
		t.Errorf("result = %+v, want 2 items / 1 shipment", result)
	}

	// Item trở lại kho sạch sẽ, không còn dấu vết đơn hàng.
	for _, serial := range []string{"SN-001", "SN-002"} {
		item := deps.ledger.items[serial]
		if item.Status != models.StatusInStock {
			t.Errorf("item %s status = %q, want In Stock", serial, item.Status)
		}
		if item.OrderID != "" || item.CustomerCode != "" || item.DispatchDate != nil {
			t.Errorf("item %s still carries dispatch stamp: %+v", serial, item)
		}
	}

	if len(deps.shipments.inserted) != 0 {
		t.Errorf("shipments remaining = %d, want 0", len(deps.shipments.inserted))
	}
	if got := deps.orders.statuses["SO-1001"]; got != models.OrderStatusOpen {
		t.Errorf("order status = %q, want OPEN", got)
	}

	// Renewal được giữ nguyên sau reversal — chu kỳ dịch vụ tính phí
	// độc lập với việc thu hồi hàng.
	if len(deps.renewals.inserted) != 1 {
		t.Errorf("renewals remaining = %d, want 1", len(deps.renewals.inserted))
	}
	if got := deps.renewals.inserted[0].Status; got != models.RenewalStatusActive {
		t.Errorf("renewal status = %q, want Active", got)
	}
}

func TestReverseNothingToReverse(t *testing.T) {
	svc, _ := newTestService(newFakeLedger())

	result, err := svc.Reverse(context.Background(), "SO-9999")
	if err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	if result.ItemsReturned != 0 || result.ShipmentsDeleted != 0 {
		t.Errorf("result = %+v, want all zero", result)
	}
}

func TestReverseShipmentDeleteFailure(t *testing.T) {
	ledger := newFakeLedger(models.StockItem{
		SerialNumber: "SN-001",
		ProductName:  "Camera X",
		Status:       models.StatusDispatched,
		OrderID:      "SO-1001",
	})
	svc, deps := newTestService(ledger)
	deps.shipments.deleteErr = errors.New("mongo down")

	_, err := svc.Reverse(context.Background(), "SO-1001")
	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("Reverse error %T, want *StepError", err)
	}
	if stepErr.Step != "shipment" || stepErr.Committed != 1 {
		t.Errorf("StepError = %+v, want step shipment committed 1", stepErr)
	}
}
