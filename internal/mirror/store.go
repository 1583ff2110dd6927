// Package mirror holds a client-side copy of one owner's products and sales.
// The copy is patched after each successful server call instead of being
// re-fetched, and is discarded whenever a different owner binds to it.
package mirror

import (
	"sync"
	"time"

	"go-inventory-pos/internal/dashboard"
	"go-inventory-pos/internal/model"

	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	ownerID  string
	products []model.Product
	sales    []model.Sale
}

func NewStore() *Store {
	return &Store{}
}

// Bind scopes the store to ownerID. It reports true when existing contents
// belonged to someone else and were discarded.
func (s *Store) Bind(ownerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ownerID == ownerID {
		return false
	}
	hadData := s.ownerID != "" || len(s.products) > 0 || len(s.sales) > 0
	s.ownerID = ownerID
	s.products = nil
	s.sales = nil
	return hadData
}

// Reset empties the store and forgets the owner, as on sign-out
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ownerID = ""
	s.products = nil
	s.sales = nil
}

func (s *Store) Owner() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ownerID
}

func (s *Store) Products() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Product{}, s.products...)
}

func (s *Store) Product(id uuid.UUID) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

func (s *Store) SetProducts(products []model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append([]model.Product{}, products...)
}

// AddProduct appends a new product, or replaces the stored one with the same
// id (a merged add returns an existing product)
func (s *Store) AddProduct(product model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == product.ID {
			s.products[i] = product
			return
		}
	}
	s.products = append(s.products, product)
}

// UpdateProduct replaces the product with the same id; unknown ids are ignored
func (s *Store) UpdateProduct(product model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == product.ID {
			s.products[i] = product
			return
		}
	}
}

func (s *Store) DeleteProduct(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
}

// UpdateProductQuantity adds change to the product's stock, never going below zero
func (s *Store) UpdateProductQuantity(id uuid.UUID, change int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		qty := s.products[i].StockQuantity + change
		if qty < 0 {
			qty = 0
		}
		s.products[i].StockQuantity = qty
		return
	}
}

// Sales returns sales in insertion order
func (s *Store) Sales() []model.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Sale{}, s.sales...)
}

func (s *Store) SetSales(sales []model.Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = append([]model.Sale{}, sales...)
}

func (s *Store) AddSale(sale model.Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = append(s.sales, sale)
}

func (s *Store) UpdateSale(sale model.Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sales {
		if s.sales[i].ID == sale.ID {
			s.sales[i] = sale
			return
		}
	}
}

func (s *Store) DeleteSale(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.sales[:0]
	for _, sale := range s.sales {
		if sale.ID != id {
			kept = append(kept, sale)
		}
	}
	s.sales = kept
}

// Dashboard summarizes the mirrored collections with today taken from now
func (s *Store) Dashboard(now time.Time) dashboard.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return dashboard.Summarize(s.products, s.sales, now)
}
