// Package analytics calcula las métricas del dashboard y las estadísticas por
// tienda. Todo el cálculo es determinista dados los datos y el instante `now`,
// y nunca muta las colecciones de entrada. Solo cuentan las ventas completadas.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/nova-pos/internal/application/dto"
	"github.com/jhoicas/nova-pos/internal/domain"
	"github.com/jhoicas/nova-pos/internal/domain/access"
	"github.com/jhoicas/nova-pos/internal/domain/entity"
	"github.com/jhoicas/nova-pos/internal/domain/repository"
)

// salesByDayWindow días calendario del gráfico del dashboard, incluido hoy.
const salesByDayWindow = 7

// topProductsLimit tamaño del ranking de productos por ingresos.
const topProductsLimit = 5

// UseCase agrega las colecciones de una tienda en métricas de lectura.
type UseCase struct {
	sales     repository.SaleRepository
	products  repository.ProductRepository
	customers repository.CustomerRepository
	stores    repository.StoreRepository
}

// NewUseCase construye el caso de uso con sus puertos de persistencia.
func NewUseCase(sales repository.SaleRepository, products repository.ProductRepository, customers repository.CustomerRepository, stores repository.StoreRepository) *UseCase {
	return &UseCase{sales: sales, products: products, customers: customers, stores: stores}
}

// Dashboard calcula las métricas del panel de la tienda activa.
func (uc *UseCase) Dashboard(ctx access.Context) (*dto.DashboardStatsResponse, error) {
	return uc.DashboardAt(ctx, time.Now())
}

// DashboardAt es Dashboard con reloj explícito.
func (uc *UseCase) DashboardAt(ctx access.Context, now time.Time) (*dto.DashboardStatsResponse, error) {
	storeID, err := activeStoreID(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := uc.sales.ListByStore(storeID)
	if err != nil {
		return nil, err
	}
	products, err := uc.products.ListByStore(storeID)
	if err != nil {
		return nil, err
	}
	customers, err := uc.customers.ListByStore(storeID)
	if err != nil {
		return nil, err
	}
	return buildDashboard(sales, products, customers, now), nil
}

// StoreStats calcula las métricas resumidas de una tienda (vista super admin).
func (uc *UseCase) StoreStats(ctx access.Context, storeID string) (*dto.StoreStatsResponse, error) {
	if !access.IsAdmin(ctx.User) {
		return nil, domain.ErrForbidden
	}
	return uc.storeStats(storeID)
}

// AllStoresStats calcula las métricas de todas las tiendas para el listado
// global de administración.
func (uc *UseCase) AllStoresStats(ctx access.Context) (*dto.AllStoresStatsResponse, error) {
	if !access.IsAdmin(ctx.User) {
		return nil, domain.ErrForbidden
	}
	stores, err := uc.stores.List()
	if err != nil {
		return nil, err
	}
	out := &dto.AllStoresStatsResponse{Items: make([]dto.StoreStatsResponse, 0, len(stores))}
	for i := range stores {
		stats, err := uc.storeStats(stores[i].ID)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, *stats)
	}
	return out, nil
}

func (uc *UseCase) storeStats(storeID string) (*dto.StoreStatsResponse, error) {
	sales, err := uc.sales.ListByStore(storeID)
	if err != nil {
		return nil, err
	}
	products, err := uc.products.ListByStore(storeID)
	if err != nil {
		return nil, err
	}
	customers, err := uc.customers.ListByStore(storeID)
	if err != nil {
		return nil, err
	}

	stats := &dto.StoreStatsResponse{StoreID: storeID, Revenue: decimal.Zero, Customers: len(customers)}
	for i := range products {
		if products[i].Active {
			stats.ActiveProducts++
		}
	}
	for i := range sales {
		s := &sales[i]
		if s.Status != entity.SaleCompleted {
			continue
		}
		stats.SalesCount++
		stats.Revenue = stats.Revenue.Add(s.Total)
		if stats.LastSaleAt == nil || s.CreatedAt.After(*stats.LastSaleAt) {
			ts := s.CreatedAt
			stats.LastSaleAt = &ts
		}
	}
	return stats, nil
}

// buildDashboard agrega las colecciones ya scoped en las métricas del panel.
func buildDashboard(sales []entity.Sale, products []entity.Product, customers []entity.Customer, now time.Time) *dto.DashboardStatsResponse {
	out := &dto.DashboardStatsResponse{
		TotalRevenue:   decimal.Zero,
		TotalProfit:    decimal.Zero,
		TotalCustomers: len(customers),
	}

	// Costo por producto para el cálculo de ganancia. Un producto eliminado
	// después de la venta agrega costo cero: la línea cuenta completa como
	// ganancia en lugar de perder la venta del reporte.
	costByID := make(map[string]decimal.Decimal, len(products))
	for i := range products {
		p := &products[i]
		costByID[p.ID] = p.Cost
		if p.Active {
			out.TotalProducts++
			if p.IsLowStock() {
				out.LowStock = append(out.LowStock, productToResponse(p))
			}
		}
	}

	type dayBucket struct {
		count   int
		revenue decimal.Decimal
	}
	days := make(map[string]*dayBucket, salesByDayWindow)
	type productBucket struct {
		name     string
		quantity int
		revenue  decimal.Decimal
	}
	byProduct := make(map[string]*productBucket)
	type methodBucket struct {
		count   int
		revenue decimal.Decimal
	}
	byMethod := make(map[entity.PaymentMethod]*methodBucket)

	for i := range sales {
		s := &sales[i]
		if s.Status != entity.SaleCompleted {
			continue
		}
		out.TotalSales++
		out.TotalRevenue = out.TotalRevenue.Add(s.Total)

		for _, item := range s.Items {
			cost := costByID[item.ProductID] // cero si el producto ya no existe
			lineCost := cost.Mul(decimal.NewFromInt(int64(item.Quantity)))
			out.TotalProfit = out.TotalProfit.Add(item.Total.Sub(lineCost))

			pb, ok := byProduct[item.ProductID]
			if !ok {
				pb = &productBucket{name: item.ProductName, revenue: decimal.Zero}
				byProduct[item.ProductID] = pb
			}
			pb.quantity += item.Quantity
			pb.revenue = pb.revenue.Add(item.Total)
		}

		day := s.CreatedAt.Format("2006-01-02")
		db, ok := days[day]
		if !ok {
			db = &dayBucket{revenue: decimal.Zero}
			days[day] = db
		}
		db.count++
		db.revenue = db.revenue.Add(s.Total)

		mb, ok := byMethod[s.PaymentMethod]
		if !ok {
			mb = &methodBucket{revenue: decimal.Zero}
			byMethod[s.PaymentMethod] = mb
		}
		mb.count++
		mb.revenue = mb.revenue.Add(s.Total)
	}

	// Últimos 7 días calendario, el más antiguo primero, con ceros explícitos
	// para los días sin ventas.
	out.SalesByDay = make([]dto.DaySalesResponse, 0, salesByDayWindow)
	for i := salesByDayWindow - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		entry := dto.DaySalesResponse{Date: day, Revenue: decimal.Zero}
		if db, ok := days[day]; ok {
			entry.Count = db.count
			entry.Revenue = db.revenue
		}
		out.SalesByDay = append(out.SalesByDay, entry)
	}

	out.TopProducts = make([]dto.TopProductResponse, 0, len(byProduct))
	for id, pb := range byProduct {
		out.TopProducts = append(out.TopProducts, dto.TopProductResponse{
			ProductID:   id,
			ProductName: pb.name,
			Quantity:    pb.quantity,
			Revenue:     pb.revenue,
		})
	}
	sort.Slice(out.TopProducts, func(i, j int) bool {
		if !out.TopProducts[i].Revenue.Equal(out.TopProducts[j].Revenue) {
			return out.TopProducts[i].Revenue.GreaterThan(out.TopProducts[j].Revenue)
		}
		return out.TopProducts[i].ProductID < out.TopProducts[j].ProductID
	})
	if len(out.TopProducts) > topProductsLimit {
		out.TopProducts = out.TopProducts[:topProductsLimit]
	}

	// Orden fijo de métodos de pago, con ceros explícitos.
	out.ByPaymentMethod = make([]dto.PaymentMethodTotalResponse, 0, 4)
	for _, m := range []entity.PaymentMethod{entity.PaymentCash, entity.PaymentCredit, entity.PaymentDebit, entity.PaymentPix} {
		entry := dto.PaymentMethodTotalResponse{Method: string(m), Revenue: decimal.Zero}
		if mb, ok := byMethod[m]; ok {
			entry.Count = mb.count
			entry.Revenue = mb.revenue
		}
		out.ByPaymentMethod = append(out.ByPaymentMethod, entry)
	}

	return out
}

func activeStoreID(ctx access.Context) (string, error) {
	if ctx.User == nil {
		return "", domain.ErrUnauthenticated
	}
	if ctx.ActiveStore == nil {
		return "", domain.ErrNoActiveStore
	}
	return ctx.ActiveStore.ID, nil
}

func productToResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		StoreID:     p.StoreID,
		Name:        p.Name,
		Description: p.Description,
		SKU:         p.SKU,
		Price:       p.Price,
		Cost:        p.Cost,
		Stock:       p.Stock,
		Category:    p.Category,
		Active:      p.Active,
		LowStock:    p.IsLowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
