package service

import (
	"context"

	"copyshop/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for browsing the catalogue.
type ProductService interface {
	// GetAll retrieves active products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// OrderService defines operations for checkout and order lifecycle.
type OrderService interface {
	// Checkout freezes a cart into a persisted order. The customer's tier
	// resolves the order-wide discount; tier lookup failure degrades to 0%.
	Checkout(ctx context.Context, cart model.Cart, customerID uuid.UUID, tierID, note string) (*model.Order, error)

	// GetByID retrieves an order with its lines and history.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByCustomer retrieves a customer's orders, newest first.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error)

	// ChangeState applies a staff lifecycle transition. A concurrent
	// change to the same order surfaces as model.ErrConflict.
	ChangeState(ctx context.Context, id uuid.UUID, target model.OrderState, reason string) (*model.Order, error)
}

// UploadResult describes a stored print document.
type UploadResult struct {
	FileRef   string `json:"fileRef"`
	FileName  string `json:"fileName"`
	PageCount int    `json:"pageCount"`
}

// PrintService defines operations for print document uploads.
type PrintService interface {
	// Upload stores the document bytes and estimates its billable pages.
	Upload(ctx context.Context, name, mediaType string, data []byte) (*UploadResult, error)
}
