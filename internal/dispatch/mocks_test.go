package dispatch

import (
	"context"
	"sort"
	"time"

	"tradeops-api-server/internal/models"
)

// --- MOCKS ---
// Fake stores dùng chung cho các test trong package. Chúng mô phỏng cả
// ràng buộc conditional-update của Mongo (chỉ cập nhật khi status còn
// "In Stock").

type fakeLedger struct {
	items   map[string]*models.StockItem
	findErr error
	listErr error
	markErr error
}

func newFakeLedger(items ...models.StockItem) *fakeLedger {
	l := &fakeLedger{items: make(map[string]*models.StockItem)}
	for i := range items {
		item := items[i]
		l.items[item.SerialNumber] = &item
	}
	return l
}

func (l *fakeLedger) FindBySerial(ctx context.Context, serial string) (*models.StockItem, error) {
	if l.findErr != nil {
		return nil, l.findErr
	}
	item, ok := l.items[serial]
	if !ok {
		return nil, ErrSerialNotFound
	}
	copy := *item
	return &copy, nil
}

func (l *fakeLedger) FindAvailableByProduct(ctx context.Context, productName string, limit int) ([]models.StockItem, error) {
	if l.listErr != nil {
		return nil, l.listErr
	}
	serials := make([]string, 0, len(l.items))
	for serial := range l.items {
		serials = append(serials, serial)
	}
	sort.Strings(serials)

	var out []models.StockItem
	for _, serial := range serials {
		item := l.items[serial]
		if item.ProductName != productName || item.Status != models.StatusInStock {
			continue
		}
		out = append(out, *item)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (l *fakeLedger) MarkDispatched(ctx context.Context, serial string, stamp DispatchStamp) error {
	if l.markErr != nil {
		return l.markErr
	}
	item, ok := l.items[serial]
	if !ok || item.Status != models.StatusInStock {
		// Giống filter {status: "In Stock"} không khớp document nào.
		return ErrSerialConflict
	}
	item.Status = models.StatusDispatched
	item.OrderID = stamp.OrderID
	item.CustomerCode = stamp.CustomerCode
	item.CustomerName = stamp.CustomerName
	d := stamp.DispatchDate
	item.DispatchDate = &d
	return nil
}

func (l *fakeLedger) ReturnToStock(ctx context.Context, orderID string) (int64, error) {
	var count int64
	for _, item := range l.items {
		if item.OrderID == orderID && item.Status == models.StatusDispatched {
			item.Status = models.StatusInStock
			item.OrderID = ""
			item.CustomerCode = ""
			item.CustomerName = ""
			item.DispatchDate = nil
			count++
		}
	}
	return count, nil
}

type fakeOrderStore struct {
	orders   map[string]*models.SalesOrder
	statuses map[string]string
}

func newFakeOrderStore(orders ...*models.SalesOrder) *fakeOrderStore {
	s := &fakeOrderStore{
		orders:   make(map[string]*models.SalesOrder),
		statuses: make(map[string]string),
	}
	for _, order := range orders {
		s.orders[order.OrderID] = order
	}
	return s
}

func (s *fakeOrderStore) FindByID(ctx context.Context, orderID string) (*models.SalesOrder, error) {
	order, ok := s.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *fakeOrderStore) UpdateStatus(ctx context.Context, orderID string, status string) error {
	s.statuses[orderID] = status
	return nil
}

type fakeCatalog struct {
	products map[string]*models.Product
	err      error
}

func (c *fakeCatalog) FindByName(ctx context.Context, name string) (*models.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.products[name], nil
}

type fakeShipmentStore struct {
	inserted  []*models.Shipment
	insertErr error
	deleteErr error
}

func (s *fakeShipmentStore) Insert(ctx context.Context, shipment *models.Shipment) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, shipment)
	return nil
}

func (s *fakeShipmentStore) DeleteByOrder(ctx context.Context, orderID string) (int64, error) {
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	var remaining []*models.Shipment
	var deleted int64
	for _, shipment := range s.inserted {
		if shipment.OrderID == orderID {
			deleted++
			continue
		}
		remaining = append(remaining, shipment)
	}
	s.inserted = remaining
	return deleted, nil
}

type fakeRenewalStore struct {
	inserted  []*models.Renewal
	insertErr error
}

func (s *fakeRenewalStore) Insert(ctx context.Context, renewal *models.Renewal) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, renewal)
	return nil
}

type fakeNotifier struct {
	events []CompletedEvent
	err    error
}

func (n *fakeNotifier) DispatchCompleted(ctx context.Context, event CompletedEvent) error {
	if n.err != nil {
		return n.err
	}
	n.events = append(n.events, event)
	return nil
}

type fakePublisher struct {
	keys []string
	err  error
}

func (p *fakePublisher) Publish(ctx context.Context, key string, value interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, key)
	return nil
}

// --- HELPERS ---

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

type testDeps struct {
	ledger    *fakeLedger
	orders    *fakeOrderStore
	catalog   *fakeCatalog
	shipments *fakeShipmentStore
	renewals  *fakeRenewalStore
	notifier  *fakeNotifier
	publisher *fakePublisher
}

func newTestService(ledger *fakeLedger) (*Service, *testDeps) {
	deps := &testDeps{
		ledger:    ledger,
		orders:    newFakeOrderStore(),
		catalog:   &fakeCatalog{products: make(map[string]*models.Product)},
		shipments: &fakeShipmentStore{},
		renewals:  &fakeRenewalStore{},
		notifier:  &fakeNotifier{},
		publisher: &fakePublisher{},
	}
	svc := &Service{
		Ledger:    deps.ledger,
		Orders:    deps.orders,
		Catalog:   deps.catalog,
		Shipments: deps.shipments,
		Renewals:  deps.renewals,
		Notifier:  deps.notifier,
		Events:    deps.publisher,
		Now:       func() time.Time { return testNow },
	}
	return svc, deps
}

func inStockItem(serial, productName string) models.StockItem {
	return models.StockItem{
		SerialNumber: serial,
		ProductName:  productName,
		Status:       models.StatusInStock,
	}
}

func testOrder(orderID string, items ...models.OrderLine) *models.SalesOrder {
	return &models.SalesOrder{
		OrderID:      orderID,
		CustomerCode: "CUST-01",
		CustomerName: "Acme Trading",
		Items:        items,
		CourierCost:  250,
		Status:       models.OrderStatusOpen,
	}
}
