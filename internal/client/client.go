// Package client calls the inventory API and keeps a mirror.Store in step with
// every successful mutation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go-inventory-pos/internal/mirror"
	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Doer is satisfied by *http.Client
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a non-2xx answer from the server. The store is left untouched.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Merged  bool            `json:"merged"`
	Error   string          `json:"error"`
}

type Client struct {
	baseURL string
	token   string
	http    Doer
	store   *mirror.Store
}

func New(baseURL, token string, doer Doer, store *mirror.Store) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	if store == nil {
		store = mirror.NewStore()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    doer,
		store:   store,
	}
}

func (c *Client) Store() *mirror.Store {
	return c.store
}

// Hydrate loads the caller's products and sales. If the store held another
// owner's data it is discarded first.
func (c *Client) Hydrate(ctx context.Context) error {
	var me model.User
	if _, err := c.call(ctx, http.MethodGet, "/api/me", nil, &me); err != nil {
		return err
	}

	var products []model.Product
	if _, err := c.call(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return err
	}
	var sales []model.Sale
	if _, err := c.call(ctx, http.MethodGet, "/api/sales", nil, &sales); err != nil {
		return err
	}

	c.store.Bind(me.ID)
	c.store.SetProducts(products)
	c.store.SetSales(sales)
	return nil
}

// AddProduct returns the stored product and whether it was merged into an existing one
func (c *Client) AddProduct(ctx context.Context, req *service.AddProductRequest) (*model.Product, bool, error) {
	var product model.Product
	env, err := c.call(ctx, http.MethodPost, "/api/products/add", req, &product)
	if err != nil {
		return nil, false, err
	}
	c.store.AddProduct(product)
	return &product, env.Merged, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id uuid.UUID, patch *service.ProductPatch) (*model.Product, error) {
	var product model.Product
	body := &service.UpdateProductRequest{ID: id, Data: patch}
	if _, err := c.call(ctx, http.MethodPost, "/api/products/update", body, &product); err != nil {
		return nil, err
	}
	c.store.UpdateProduct(product)
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	body := &service.DeleteProductRequest{ProductID: id}
	if _, err := c.call(ctx, http.MethodDelete, "/api/products/delete", body, nil); err != nil {
		return err
	}
	c.store.DeleteProduct(id)
	return nil
}

// CreateSale records the sale and lowers the mirrored stock of every sold product
func (c *Client) CreateSale(ctx context.Context, req *service.CreateSaleRequest) (*model.Sale, error) {
	var sale model.Sale
	if _, err := c.call(ctx, http.MethodPost, "/api/sale/add", req, &sale); err != nil {
		return nil, err
	}
	c.store.AddSale(sale)
	for _, item := range sale.Items {
		c.store.UpdateProductQuantity(item.ProductID, -item.Quantity)
	}
	return &sale, nil
}

// UpdateSalePayment sets the amount paid; the status is PAID once the amount
// covers the sale total. A sale missing from the mirror is fetched first.
func (c *Client) UpdateSalePayment(ctx context.Context, id uuid.UUID, amountPaid decimal.Decimal) (*model.Sale, error) {
	total, err := c.saleTotal(ctx, id)
	if err != nil {
		return nil, err
	}
	status := model.StatusFor(amountPaid, total)

	var sale model.Sale
	body := &service.UpdatePaymentRequest{ID: id, NewPaidAmount: &amountPaid, PaymentStatus: status}
	if _, err := c.call(ctx, http.MethodPatch, "/api/sale/update", body, &sale); err != nil {
		return nil, err
	}
	c.store.UpdateSale(sale)
	return &sale, nil
}

func (c *Client) saleTotal(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	for _, s := range c.store.Sales() {
		if s.ID == id {
			return s.TotalAmount, nil
		}
	}

	var sale model.Sale
	if _, err := c.call(ctx, http.MethodGet, "/api/sales/"+id.String(), nil, &sale); err != nil {
		return decimal.Zero, err
	}
	return sale.TotalAmount, nil
}

func (c *Client) DeleteSale(ctx context.Context, id uuid.UUID) error {
	body := &service.DeleteSaleRequest{ID: id}
	if _, err := c.call(ctx, http.MethodPost, "/api/sale/delete", body, nil); err != nil {
		return err
	}
	c.store.DeleteSale(id)
	return nil
}

// SignOut drops the token and the mirrored data
func (c *Client) SignOut() {
	c.token = ""
	c.store.Reset()
}

func (c *Client) call(ctx context.Context, method, path string, body, out interface{}) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && err != io.EOF {
		return nil, &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode %s data: %w", path, err)
		}
	}
	return &env, nil
}
