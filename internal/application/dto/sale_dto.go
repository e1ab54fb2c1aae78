package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta entrante: el precio se toma del producto al
// momento de crear la venta, nunca del cliente HTTP.
type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	Discount  decimal.Decimal `json:"discount"`
}

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	Items         []SaleItemRequest `json:"items" validate:"required,min=1"`
	CustomerID    string            `json:"customer_id"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash credit debit pix"`
	Discount      decimal.Decimal   `json:"discount"` // descuento global, además del de cada línea
	Notes         string            `json:"notes"`
}

// SaleItemResponse línea de venta con el snapshot de producto.
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            string             `json:"id"`
	StoreID       string             `json:"store_id"`
	ReceiptCode   string             `json:"receipt_code"`
	CustomerID    string             `json:"customer_id,omitempty"`
	CustomerName  string             `json:"customer_name,omitempty"`
	Items         []SaleItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	Status        string             `json:"status"`
	SellerID      string             `json:"seller_id"`
	SellerName    string             `json:"seller_name"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ReceiptLookupResponse resultado de validar un código de recibo.
type ReceiptLookupResponse struct {
	Valid     bool          `json:"valid"`
	Formatted string        `json:"formatted,omitempty"`
	Sale      *SaleResponse `json:"sale,omitempty"`
}
