package handler

import (
	"encoding/json"
	"net/http"

	"copyshop/internal/cart"
	"copyshop/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CartHandler handles cart composition requests. The cart travels in the
// request body and comes back updated; the server holds no cart state.
type CartHandler struct {
	composer *cart.Composer
	logger   zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(composer *cart.Composer, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		composer: composer,
		logger:   logger.With().Str("handler", "cart").Logger(),
	}
}

// CartResponse is an updated cart plus its running subtotal.
type CartResponse struct {
	Cart     model.Cart      `json:"cart"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// AddProduct handles POST /api/cart/products requests.
func (h *CartHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.AddProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.composer.AddProduct(r.Context(), &req.Cart, req.ProductID, req.Quantity); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.writeCart(w, req.Cart)
}

// AddPrint handles POST /api/cart/prints requests.
func (h *CartHandler) AddPrint(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.AddPrintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	job := cart.PrintJob{
		FileRef:   req.FileRef,
		FileName:  req.FileName,
		PageCount: req.PageCount,
		Format:    req.Format,
		Color:     req.Color,
		Copies:    req.Copies,
	}
	if err := h.composer.AddPrintJob(r.Context(), &req.Cart, job); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.writeCart(w, req.Cart)
}

// Remove handles POST /api/cart/remove requests. Removing a line that is
// not in the cart is a no-op, not an error.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.RemoveLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	h.composer.RemoveLine(&req.Cart, req.LineID)

	h.writeCart(w, req.Cart)
}

func (h *CartHandler) writeCart(w http.ResponseWriter, crt model.Cart) {
	writeJSON(w, http.StatusOK, CartResponse{
		Cart:     crt,
		Subtotal: h.composer.Subtotal(&crt),
	})
}
