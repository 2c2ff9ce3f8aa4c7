package model

import (
	"encoding/json"
	"strings"
	"time"

	"copyshop/internal/discount"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderState is a lifecycle state of an order. The values are the names the
// shop staff use, so they travel unchanged through the API and the store.
type OrderState string

const (
	StatePending    OrderState = "Pendiente"
	StateInProgress OrderState = "En proceso"
	StateReady      OrderState = "Preparado"
	StatePickedUp   OrderState = "Retirado"
	StateCancelled  OrderState = "Cancelado"
	StateCorrection OrderState = "Requiere Corrección"
)

// ValidState reports whether s is one of the known lifecycle states.
func ValidState(s OrderState) bool {
	switch s {
	case StatePending, StateInProgress, StateReady, StatePickedUp, StateCancelled, StateCorrection:
		return true
	default:
		return false
	}
}

// StateChange is one history record. Reason is set only for transitions
// into the correction state.
type StateChange struct {
	At     time.Time  `json:"at"`
	State  OrderState `json:"state"`
	Reason string     `json:"reason,omitempty"`
}

// Order is an immutable-lines snapshot of a cart plus a mutable lifecycle
// state. Lines and the discount are frozen at creation; totals are always
// derived from them, never stored.
type Order struct {
	ID               uuid.UUID     `json:"id"`
	CustomerID       uuid.UUID     `json:"customerId"`
	CreatedAt        time.Time     `json:"createdAt"`
	Lines            []LineItem    `json:"lines"`
	DiscountPercent  int           `json:"discountPercent"`
	State            OrderState    `json:"state"`
	History          []StateChange `json:"history"`
	CorrectionReason string        `json:"correctionReason,omitempty"`
	Note             string        `json:"note,omitempty"`

	// Version guards concurrent staff actions against the same order.
	// The store rejects a write whose version does not match.
	Version int64 `json:"version"`
}

// NewOrder freezes a cart into an order with the given discount percent and
// records the initial Pendiente history entry. An empty cart is rejected.
func NewOrder(cart Cart, customerID uuid.UUID, discountPercent int, now time.Time) (*Order, error) {
	if len(cart.Lines) == 0 {
		return nil, ErrInvalidCart
	}

	lines := make([]LineItem, len(cart.Lines))
	copy(lines, cart.Lines)

	return &Order{
		ID:              uuid.New(),
		CustomerID:      customerID,
		CreatedAt:       now,
		Lines:           lines,
		DiscountPercent: discountPercent,
		State:           StatePending,
		History: []StateChange{
			{At: now, State: StatePending},
		},
		Version: 1,
	}, nil
}

// Transition moves the order to target, appending exactly one history
// record. Any listed state may move to any other; the business treats
// Retirado and Cancelado as terminal but the engine does not enforce it,
// so staff can undo a mistaken state change. Entering the correction state
// requires a non-blank reason, which becomes visible to the customer;
// leaving it clears the current reason while history keeps the old one.
func (o *Order) Transition(target OrderState, reason string, now time.Time) error {
	if !ValidState(target) {
		return ErrUnknownState
	}

	change := StateChange{At: now, State: target}

	if target == StateCorrection {
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return ErrMissingReason
		}
		change.Reason = reason
		o.CorrectionReason = reason
	} else {
		o.CorrectionReason = ""
	}

	o.State = target
	o.History = append(o.History, change)
	return nil
}

// Subtotal sums the frozen line subtotals.
func (o *Order) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Total applies the order-wide discount to the subtotal.
func (o *Order) Total() decimal.Decimal {
	total, _ := discount.Apply(o.Subtotal(), o.DiscountPercent)
	return total
}

// Savings is the amount the discount took off the subtotal.
func (o *Order) Savings() decimal.Decimal {
	_, savings := discount.Apply(o.Subtotal(), o.DiscountPercent)
	return savings
}

// MarshalJSON includes the derived money fields so API consumers see the
// order's subtotal, total, and savings without recomputing the lines.
func (o Order) MarshalJSON() ([]byte, error) {
	type alias Order
	total, savings := discount.Apply(o.Subtotal(), o.DiscountPercent)
	return json.Marshal(struct {
		alias
		Subtotal decimal.Decimal `json:"subtotal"`
		Total    decimal.Decimal `json:"total"`
		Savings  decimal.Decimal `json:"savings"`
	}{
		alias:    alias(o),
		Subtotal: o.Subtotal(),
		Total:    total,
		Savings:  savings,
	})
}
