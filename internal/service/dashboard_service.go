package service

import (
	"context"
	"time"

	"go-inventory-pos/internal/dashboard"
	"go-inventory-pos/internal/repository"
)

type DashboardService interface {
	GetStats(ctx context.Context, ownerID string, loc *time.Location) (*dashboard.Summary, error)
}

type dashboardService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	now         func() time.Time
}

func NewDashboardService(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) DashboardService {
	return &dashboardService{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		now:         time.Now,
	}
}

// GetStats summarizes the owner's products and sales with "today" taken in loc
func (s *dashboardService) GetStats(ctx context.Context, ownerID string, loc *time.Location) (*dashboard.Summary, error) {
	if loc == nil {
		loc = time.UTC
	}

	products, err := s.productRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summary := dashboard.Summarize(products, sales, s.now().In(loc))
	return &summary, nil
}
