package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold umbral fijo de stock bajo para el dashboard.
const LowStockThreshold = 10

// Product representa un producto del catálogo de una tienda.
// Price y Cost son decimales (dinero); Stock es entero y se descuenta al vender.
type Product struct {
	ID          string          `json:"id"`
	StoreID     string          `json:"storeId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	SKU         string          `json:"sku"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// IsLowStock indica si el producto activo está bajo el umbral.
func (p *Product) IsLowStock() bool {
	return p.Active && p.Stock < LowStockThreshold
}
