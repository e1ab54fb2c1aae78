package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DaySalesResponse ventas agregadas de un día calendario (formato YYYY-MM-DD).
type DaySalesResponse struct {
	Date    string          `json:"date"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopProductResponse producto rankeado por ingresos en ventas completadas.
type TopProductResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// PaymentMethodTotalResponse total vendido por método de pago.
type PaymentMethodTotalResponse struct {
	Method  string          `json:"method"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DashboardStatsResponse métricas del panel de una tienda. Solo cuentan las
// ventas completadas; las canceladas y pendientes quedan fuera.
type DashboardStatsResponse struct {
	TotalSales      int                          `json:"total_sales"`
	TotalRevenue    decimal.Decimal              `json:"total_revenue"`
	TotalProfit     decimal.Decimal              `json:"total_profit"`
	TotalCustomers  int                          `json:"total_customers"`
	TotalProducts   int                          `json:"total_products"`
	LowStock        []ProductResponse            `json:"low_stock"`
	SalesByDay      []DaySalesResponse           `json:"sales_by_day"`
	TopProducts     []TopProductResponse         `json:"top_products"`
	ByPaymentMethod []PaymentMethodTotalResponse `json:"by_payment_method"`
}

// StoreStatsResponse métricas de una tienda para la vista del super admin.
type StoreStatsResponse struct {
	StoreID        string          `json:"store_id"`
	Revenue        decimal.Decimal `json:"revenue"`
	SalesCount     int             `json:"sales_count"`
	ActiveProducts int             `json:"active_products"`
	Customers      int             `json:"customers"`
	LastSaleAt     *time.Time      `json:"last_sale_at,omitempty"`
}

// AllStoresStatsResponse métricas por tienda del listado global.
type AllStoresStatsResponse struct {
	Items []StoreStatsResponse `json:"items"`
}
