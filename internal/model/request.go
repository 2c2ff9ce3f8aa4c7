package model

import "github.com/google/uuid"

// AddProductRequest asks the composer to add a catalog product to a cart.
type AddProductRequest struct {
	Cart      Cart   `json:"cart"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddPrintRequest asks the composer to add a print job to a cart. The
// fileRef and pageCount come from a prior upload.
type AddPrintRequest struct {
	Cart      Cart        `json:"cart"`
	FileRef   string      `json:"fileRef"`
	FileName  string      `json:"fileName"`
	PageCount int         `json:"pageCount"`
	Format    PrintFormat `json:"format"`
	Color     bool        `json:"color"`
	Copies    int         `json:"copies"`
}

// RemoveLineRequest asks the composer to drop a line from a cart.
type RemoveLineRequest struct {
	Cart   Cart      `json:"cart"`
	LineID uuid.UUID `json:"lineId"`
}

// CheckoutRequest turns a cart into an order.
type CheckoutRequest struct {
	Cart   Cart   `json:"cart"`
	TierID string `json:"tierId,omitempty"`
	Note   string `json:"note,omitempty"`
}

// StateChangeRequest moves an order to a new lifecycle state. Reason is
// mandatory when the target state is Requiere Corrección.
type StateChangeRequest struct {
	State  OrderState `json:"state"`
	Reason string     `json:"reason,omitempty"`
}
