package service

import (
	"context"
	"math"
	"strings"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductService interface {
	AddProduct(ctx context.Context, ownerID string, req *AddProductRequest) (*model.Product, bool, error)
	UpdateProduct(ctx context.Context, ownerID string, req *UpdateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, ownerID string, req *DeleteProductRequest) (*model.Product, error)
	ListProducts(ctx context.Context, ownerID string) ([]model.Product, error)
}

type AddProductRequest struct {
	Name          string           `json:"name" validate:"required"`
	Description   string           `json:"description" validate:"required"`
	Price         *decimal.Decimal `json:"price" validate:"required,gte=0"`
	StockQuantity *int             `json:"stockQuantity" validate:"required,gte=0"`
	ReorderLevel  *int             `json:"reorderLevel" validate:"required,gte=0"`
}

// ProductPatch holds only the fields the caller wants to change
type ProductPatch struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	Description   *string          `json:"description,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gte=0"`
	StockQuantity *int             `json:"stockQuantity,omitempty" validate:"omitempty,gte=0"`
	ReorderLevel  *int             `json:"reorderLevel,omitempty" validate:"omitempty,gte=0"`
}

type UpdateProductRequest struct {
	ID   uuid.UUID     `json:"id" validate:"uuid_required"`
	Data *ProductPatch `json:"data" validate:"required"`
}

type DeleteProductRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"uuid_required"`
}

func (r *AddProductRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

// columns maps the present fields onto column names
func (p *ProductPatch) columns() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		p.Name = &name
		fields["name"] = name
	}
	if p.Description != nil {
		fields["description"] = strings.TrimSpace(*p.Description)
	}
	if p.Price != nil {
		fields["price"] = *p.Price
	}
	if p.StockQuantity != nil {
		fields["stock_quantity"] = *p.StockQuantity
	}
	if p.ReorderLevel != nil {
		fields["reorder_level"] = *p.ReorderLevel
	}
	return fields
}

type productService struct {
	productRepo repository.ProductRepository
	events      EventPublisher
	log         *zap.Logger
}

func NewProductService(productRepo repository.ProductRepository, events EventPublisher, log *zap.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		events:      publisherOrNoop(events),
		log:         log,
	}
}

// AddProduct creates a product, or merges the incoming stock into an existing
// product of the same owner with identical name, description and price.
// The returned bool is true for a merge.
func (s *productService) AddProduct(ctx context.Context, ownerID string, req *AddProductRequest) (*model.Product, bool, error) {
	req.normalize()
	if err := validate(req, "Required fields are missing or invalid"); err != nil {
		return nil, false, err
	}
	if err := requireCents("price", req.Price); err != nil {
		return nil, false, err
	}

	candidates, err := s.productRepo.FindByName(ctx, ownerID, req.Name, req.Description)
	if err != nil {
		return nil, false, err
	}
	for i := range candidates {
		existing := &candidates[i]
		if !existing.SameIdentity(req.Name, req.Description, *req.Price) {
			continue
		}
		if existing.StockQuantity > math.MaxInt-*req.StockQuantity {
			return nil, false, &ValidationError{Message: "Merged stock quantity is too large"}
		}

		if err := s.productRepo.AddStock(ctx, existing.ID, *req.StockQuantity); err != nil {
			return nil, false, err
		}
		merged, err := s.productRepo.FindOwned(ctx, ownerID, existing.ID)
		if err != nil {
			return nil, false, err
		}

		s.log.Info("merged product stock",
			zap.String("owner_id", ownerID),
			zap.String("product_id", merged.ID.String()),
			zap.Int("added", *req.StockQuantity),
		)
		s.events.Publish(ownerID, ws.Event{Type: ws.EventProductUpdated, Data: merged})
		return merged, true, nil
	}

	product := &model.Product{
		UserID:        ownerID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         *req.Price,
		StockQuantity: *req.StockQuantity,
		ReorderLevel:  *req.ReorderLevel,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, false, err
	}

	s.events.Publish(ownerID, ws.Event{Type: ws.EventProductCreated, Data: product})
	return product, false, nil
}

func (s *productService) UpdateProduct(ctx context.Context, ownerID string, req *UpdateProductRequest) (*model.Product, error) {
	if err := validate(req, "Missing required data (id, data)"); err != nil {
		return nil, err
	}
	if err := requireCents("price", req.Data.Price); err != nil {
		return nil, err
	}

	fields := req.Data.columns()
	if len(fields) == 0 {
		return nil, &ValidationError{Message: ErrEmptyPatch.Error()}
	}
	if name, ok := fields["name"]; ok && name == "" {
		return nil, &ValidationError{Message: "name cannot be blank"}
	}

	existing, err := s.productRepo.FindOwned(ctx, ownerID, req.ID)
	if err != nil {
		return nil, notFound(err, "Product", req.ID)
	}

	if err := s.productRepo.Updates(ctx, existing, fields); err != nil {
		return nil, err
	}

	updated, err := s.productRepo.FindOwned(ctx, ownerID, req.ID)
	if err != nil {
		return nil, notFound(err, "Product", req.ID)
	}

	s.events.Publish(ownerID, ws.Event{Type: ws.EventProductUpdated, Data: updated})
	return updated, nil
}

// DeleteProduct removes one of the caller's products from listings.
// Historical sale items keep pointing at the soft-deleted row.
func (s *productService) DeleteProduct(ctx context.Context, ownerID string, req *DeleteProductRequest) (*model.Product, error) {
	if err := validate(req, "productId is required"); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindOwned(ctx, ownerID, req.ProductID)
	if err != nil {
		return nil, notFound(err, "Product", req.ProductID)
	}

	if err := s.productRepo.SoftDelete(ctx, existing, ownerID); err != nil {
		return nil, err
	}

	s.events.Publish(ownerID, ws.Event{Type: ws.EventProductDeleted, Data: map[string]interface{}{"id": existing.ID}})
	return existing, nil
}

func (s *productService) ListProducts(ctx context.Context, ownerID string) ([]model.Product, error) {
	return s.productRepo.FindByOwner(ctx, ownerID)
}
