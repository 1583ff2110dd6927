package service

import (
	"sync"
	"testing"
	"time"

	"go-inventory-pos/internal/repository"
	"go-inventory-pos/internal/testdb"
	"go-inventory-pos/internal/ws"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	owner    = "user_owner"
	stranger = "user_stranger"
)

type recordedEvent struct {
	ownerID string
	event   ws.Event
}

type recorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recorder) Publish(ownerID string, event ws.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{ownerID: ownerID, event: event})
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.event.Type)
	}
	return types
}

type fixture struct {
	db        *gorm.DB
	events    *recorder
	products  ProductService
	sales     SaleService
	users     UserService
	dashboard DashboardService
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testdb.New(t)
	testdb.SeedUser(t, db, owner)
	testdb.SeedUser(t, db, stranger)

	events := &recorder{}
	log := zap.NewNop()
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	now := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

	sales := NewSaleService(db, productRepo, repository.NewCustomerRepo(db), saleRepo, events, log).(*saleService)
	sales.now = func() time.Time { return now }

	dash := NewDashboardService(productRepo, saleRepo).(*dashboardService)
	dash.now = func() time.Time { return now }

	return &fixture{
		db:        db,
		events:    events,
		products:  NewProductService(productRepo, events, log),
		sales:     sales,
		users:     NewUserService(repository.NewUserRepo(db), log),
		dashboard: dash,
		now:       now,
	}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
