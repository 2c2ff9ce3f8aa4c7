package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a stocked good in the shop catalogue.
type Product struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	UnitPrice   decimal.Decimal `json:"unitPrice" db:"unit_price"`
	Active      bool            `json:"active" db:"active"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}
