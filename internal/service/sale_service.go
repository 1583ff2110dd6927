package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SaleService interface {
	CreateSale(ctx context.Context, ownerID string, req *CreateSaleRequest) (*model.Sale, error)
	UpdatePayment(ctx context.Context, ownerID string, req *UpdatePaymentRequest) (*model.Sale, error)
	DeleteSale(ctx context.Context, ownerID string, req *DeleteSaleRequest) (*model.Sale, error)
	GetSale(ctx context.Context, ownerID string, id uuid.UUID) (*model.Sale, error)
	ListSales(ctx context.Context, ownerID string) ([]model.Sale, error)
}

type SaleLineRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"gt=0"`
}

type CustomerRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

type CreateSaleRequest struct {
	Products      []SaleLineRequest   `json:"products" validate:"required,min=1,dive"`
	Customer      *CustomerRequest    `json:"customer" validate:"required"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod" validate:"required,oneof=CASH ONLINE"`
	PaymentStatus model.PaymentStatus `json:"paymentStatus" validate:"required,oneof=PENDING PAID"`
	AmountPaid    *decimal.Decimal    `json:"amountPaid" validate:"required,gte=0"`
}

type UpdatePaymentRequest struct {
	ID            uuid.UUID           `json:"id" validate:"uuid_required"`
	NewPaidAmount *decimal.Decimal    `json:"newPaidAmount" validate:"required,gte=0"`
	PaymentStatus model.PaymentStatus `json:"paymentStatus" validate:"required,oneof=PENDING PAID"`
}

type DeleteSaleRequest struct {
	ID uuid.UUID `json:"id" validate:"uuid_required"`
}

// saleLine is one product of a validated sale command
type saleLine struct {
	productID uuid.UUID
	quantity  int
}

// createSaleCommand is the fully-populated form of a CreateSaleRequest
type createSaleCommand struct {
	ownerID       string
	lines         []saleLine
	customerName  string
	customerPhone string
	paymentMethod model.PaymentMethod
	paymentStatus model.PaymentStatus
	amountPaid    decimal.Decimal
}

// command validates the request and merges repeated products into one line,
// keeping first-seen order
func (r *CreateSaleRequest) command(ownerID string) (*createSaleCommand, error) {
	if r.Customer != nil {
		r.Customer.Name = strings.TrimSpace(r.Customer.Name)
		r.Customer.Phone = strings.TrimSpace(r.Customer.Phone)
	}
	if err := validate(r, "Required fields are missing or invalid (products, customer, paymentMethod, paymentStatus, amountPaid)"); err != nil {
		return nil, err
	}
	if err := requireCents("amountPaid", r.AmountPaid); err != nil {
		return nil, err
	}

	cmd := &createSaleCommand{
		ownerID:       ownerID,
		customerName:  r.Customer.Name,
		customerPhone: r.Customer.Phone,
		paymentMethod: r.PaymentMethod,
		paymentStatus: r.PaymentStatus,
		amountPaid:    *r.AmountPaid,
	}
	index := make(map[uuid.UUID]int, len(r.Products))
	for _, p := range r.Products {
		if i, ok := index[p.ProductID]; ok {
			if cmd.lines[i].quantity > math.MaxInt-p.Quantity {
				return nil, &ValidationError{Message: fmt.Sprintf("Total quantity for product %s is too large", p.ProductID)}
			}
			cmd.lines[i].quantity += p.Quantity
			continue
		}
		index[p.ProductID] = len(cmd.lines)
		cmd.lines = append(cmd.lines, saleLine{productID: p.ProductID, quantity: p.Quantity})
	}
	return cmd, nil
}

func (c *createSaleCommand) productIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(c.lines))
	for i, line := range c.lines {
		ids[i] = line.productID
	}
	return ids
}

type saleService struct {
	db           *gorm.DB
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	events       EventPublisher
	log          *zap.Logger
	now          func() time.Time
}

func NewSaleService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	events EventPublisher,
	log *zap.Logger,
) SaleService {
	return &saleService{
		db:           db,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		events:       publisherOrNoop(events),
		log:          log,
		now:          time.Now,
	}
}

// CreateSale records a sale atomically: customer find-or-create, stock check,
// conditional stock decrement and the sale with its items either all commit or
// none do. Prices are captured from the rows read inside the transaction.
func (s *saleService) CreateSale(ctx context.Context, ownerID string, req *CreateSaleRequest) (*model.Sale, error) {
	cmd, err := req.command(ownerID)
	if err != nil {
		return nil, err
	}

	var (
		saleID  = uuid.New()
		touched []model.Product
	)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, created, err := s.customerRepo.FindOrCreate(tx, cmd.ownerID, cmd.customerName, cmd.customerPhone)
		if err != nil {
			return err
		}
		if created {
			s.log.Debug("created customer", zap.String("owner_id", cmd.ownerID), zap.String("customer_id", customer.ID.String()))
		}

		products, err := s.productRepo.FindOwnedForUpdate(tx, cmd.ownerID, cmd.productIDs())
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]model.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		total := decimal.Zero
		items := make([]model.SaleItem, 0, len(cmd.lines))
		for _, line := range cmd.lines {
			product, ok := byID[line.productID]
			if !ok {
				return &NotFoundError{Resource: "Product", ID: line.productID.String()}
			}
			if product.StockQuantity < line.quantity {
				return &InsufficientStockError{
					ProductID:   product.ID.String(),
					ProductName: product.Name,
					Available:   product.StockQuantity,
					Requested:   line.quantity,
				}
			}

			item := model.SaleItem{
				ID:        uuid.New(),
				SaleID:    saleID,
				ProductID: product.ID,
				Quantity:  line.quantity,
				Price:     product.Price,
			}
			total = total.Add(item.Subtotal())
			items = append(items, item)
		}

		for _, line := range cmd.lines {
			ok, err := s.productRepo.DecrementStock(tx, cmd.ownerID, line.productID, line.quantity)
			if err != nil {
				return err
			}
			if !ok {
				product := byID[line.productID]
				return &InsufficientStockError{
					ProductID:   product.ID.String(),
					ProductName: product.Name,
					Available:   product.StockQuantity,
					Requested:   line.quantity,
				}
			}
			product := byID[line.productID]
			product.StockQuantity -= line.quantity
			touched = append(touched, product)
		}

		sale := &model.Sale{
			BaseModel:     model.BaseModel{ID: saleID},
			UserID:        cmd.ownerID,
			CustomerID:    customer.ID,
			TotalAmount:   total,
			AmountPaid:    cmd.amountPaid,
			PaymentMethod: cmd.paymentMethod,
			PaymentStatus: cmd.paymentStatus,
			SalesDate:     s.now(),
			Items:         items,
		}
		return s.saleRepo.Create(tx, sale)
	})
	if err != nil {
		return nil, err
	}

	sale, err := s.saleRepo.FindOwned(ctx, ownerID, saleID)
	if err != nil {
		return nil, err
	}

	s.log.Info("sale recorded",
		zap.String("owner_id", ownerID),
		zap.String("sale_id", sale.ID.String()),
		zap.String("total", sale.TotalAmount.String()),
		zap.Int("items", len(sale.Items)),
	)
	s.events.Publish(ownerID, ws.Event{Type: ws.EventSaleCreated, Data: sale})
	for i := range touched {
		s.events.Publish(ownerID, ws.Event{Type: ws.EventProductUpdated, Data: &touched[i]})
	}
	return sale, nil
}

// UpdatePayment overwrites amountPaid and paymentStatus as given; the status
// is not re-derived from the amount.
func (s *saleService) UpdatePayment(ctx context.Context, ownerID string, req *UpdatePaymentRequest) (*model.Sale, error) {
	if err := validate(req, "Required fields are missing (id, newPaidAmount, paymentStatus)"); err != nil {
		return nil, err
	}
	if err := requireCents("newPaidAmount", req.NewPaidAmount); err != nil {
		return nil, err
	}

	ok, err := s.saleRepo.UpdatePayment(ctx, ownerID, req.ID, *req.NewPaidAmount, req.PaymentStatus)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &NotFoundError{Resource: "Sale", ID: req.ID.String()}
	}

	sale, err := s.saleRepo.FindOwned(ctx, ownerID, req.ID)
	if err != nil {
		return nil, notFound(err, "Sale", req.ID)
	}

	s.events.Publish(ownerID, ws.Event{Type: ws.EventSaleUpdated, Data: sale})
	return sale, nil
}

// DeleteSale removes the sale from the owner's history. Stock taken by the
// sale is not returned to the products.
func (s *saleService) DeleteSale(ctx context.Context, ownerID string, req *DeleteSaleRequest) (*model.Sale, error) {
	if err := validate(req, "Sale ID is required"); err != nil {
		return nil, err
	}

	sale, err := s.saleRepo.FindOwned(ctx, ownerID, req.ID)
	if err != nil {
		return nil, notFound(err, "Sale", req.ID)
	}

	if err := s.saleRepo.SoftDelete(ctx, sale, ownerID); err != nil {
		return nil, err
	}

	s.events.Publish(ownerID, ws.Event{Type: ws.EventSaleDeleted, Data: map[string]interface{}{"id": sale.ID}})
	return sale, nil
}

func (s *saleService) GetSale(ctx context.Context, ownerID string, id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindOwned(ctx, ownerID, id)
	if err != nil {
		return nil, notFound(err, "Sale", id)
	}
	return sale, nil
}

func (s *saleService) ListSales(ctx context.Context, ownerID string) ([]model.Sale, error) {
	return s.saleRepo.FindByOwner(ctx, ownerID)
}
