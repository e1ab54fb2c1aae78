// Package sales implementa la creación y consulta de ventas: snapshot de
// precios por línea, descuento de stock y código de recibo legible.
package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/nova-pos/internal/application/dto"
	"github.com/jhoicas/nova-pos/internal/domain"
	"github.com/jhoicas/nova-pos/internal/domain/access"
	"github.com/jhoicas/nova-pos/internal/domain/entity"
	"github.com/jhoicas/nova-pos/internal/domain/repository"
	"github.com/jhoicas/nova-pos/pkg/logger"
	"github.com/jhoicas/nova-pos/pkg/receipt"
)

// UseCase aplica las reglas de negocio de las ventas de una tienda.
type UseCase struct {
	sales     repository.SaleRepository
	products  repository.ProductRepository
	customers repository.CustomerRepository
	log       *logger.Logger
}

// NewUseCase construye el caso de uso con sus puertos de persistencia.
func NewUseCase(sales repository.SaleRepository, products repository.ProductRepository, customers repository.CustomerRepository, log *logger.Logger) *UseCase {
	return &UseCase{sales: sales, products: products, customers: customers, log: log}
}

// Create registra una venta en la tienda activa. Cada línea copia nombre y
// precio del producto al momento de la venta (snapshot: nunca cambian después)
// y descuenta stock. Cantidades que exceden el stock se rechazan.
func (uc *UseCase) Create(ctx access.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	storeID, err := access.EnforceStoreID("", ctx)
	if err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	method := entity.PaymentMethod(in.PaymentMethod)
	if !method.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if in.Discount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// Todos los productos de la colección de la tienda: las líneas se resuelven
	// contra esta vista y el descuento de stock se escribe en bloque.
	products, err := uc.products.ListByStore(storeID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	now := time.Now()
	items := make([]entity.SaleItem, 0, len(in.Items))
	subtotal := decimal.Zero
	itemDiscounts := decimal.Zero
	for _, line := range in.Items {
		if line.Quantity <= 0 || line.Discount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		if !product.Active || product.Stock < line.Quantity {
			return nil, domain.ErrInvalidInput
		}

		lineSubtotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		lineTotal := lineSubtotal.Sub(line.Discount)
		if lineTotal.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, entity.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
			Discount:    line.Discount,
			Total:       lineTotal,
		})
		subtotal = subtotal.Add(lineSubtotal)
		itemDiscounts = itemDiscounts.Add(line.Discount)

		product.Stock -= line.Quantity
		product.UpdatedAt = now
	}

	totalDiscount := itemDiscounts.Add(in.Discount)
	total := subtotal.Sub(totalDiscount)
	if total.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var customerName string
	if in.CustomerID != "" {
		customer, err := uc.customers.GetByIDInStore(in.CustomerID, storeID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
		customerName = customer.Name
	}

	sale := &entity.Sale{
		ID:            uuid.New().String(),
		StoreID:       storeID,
		ReceiptCode:   receipt.Generate(),
		CustomerID:    in.CustomerID,
		CustomerName:  customerName,
		Items:         items,
		Subtotal:      subtotal,
		Discount:      totalDiscount,
		Total:         total,
		PaymentMethod: method,
		Status:        entity.SaleCompleted,
		SellerID:      ctx.User.ID,
		SellerName:    ctx.User.Name,
		Notes:         in.Notes,
		CreatedAt:     now,
	}
	if err := uc.sales.Create(sale); err != nil {
		return nil, err
	}
	// Descuento de stock en bloque, después de persistir la venta. Si esta
	// escritura falla la venta queda registrada con stock sin descontar; se
	// loguea porque requiere corrección manual.
	if err := uc.products.ReplaceAll(uc.mergeStocks(products, storeID)); err != nil {
		uc.log.Error().Err(err).Str("sale_id", sale.ID).Msg("venta creada pero el stock no se descontó")
		return nil, err
	}

	uc.log.Info().Str("sale_id", sale.ID).Str("receipt", sale.ReceiptCode).Msg("venta registrada")
	resp := saleToResponse(sale)
	return &resp, nil
}

// mergeStocks reconstruye la colección global de productos con los stocks ya
// descontados de la tienda, preservando intactos los productos ajenos.
func (uc *UseCase) mergeStocks(updated []entity.Product, storeID string) []entity.Product {
	all, err := uc.products.List()
	if err != nil {
		// Si la lectura global falla se reemplaza solo con lo conocido; el
		// ReplaceAll posterior devolverá el error real si el almacén está roto.
		return updated
	}
	byID := make(map[string]*entity.Product, len(updated))
	for i := range updated {
		byID[updated[i].ID] = &updated[i]
	}
	out := make([]entity.Product, 0, len(all))
	for i := range all {
		if p, ok := byID[all[i].ID]; ok && all[i].StoreID == storeID {
			out = append(out, *p)
			continue
		}
		out = append(out, all[i])
	}
	return out
}

// Cancel marca una venta como cancelada. No repone stock: la cancelación es un
// ajuste contable, el inventario se corrige aparte si corresponde.
func (uc *UseCase) Cancel(ctx access.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanModifyRecord(sale.StoreID, ctx) {
		return nil, domain.ErrCrossTenantAccess
	}
	if sale.Status == entity.SaleCancelled {
		return nil, domain.ErrInvalidInput
	}
	sale.Status = entity.SaleCancelled
	if err := uc.sales.Update(sale); err != nil {
		return nil, err
	}
	resp := saleToResponse(sale)
	return &resp, nil
}

// GetByID obtiene una venta de la tienda activa.
func (uc *UseCase) GetByID(ctx access.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := saleToResponse(sale)
	return &resp, nil
}

// List lista las ventas de la tienda activa, más reciente primero.
func (uc *UseCase) List(ctx access.Context, page dto.PageRequest) (*dto.SaleListResponse, error) {
	storeID, err := activeStoreID(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := uc.sales.ListByStore(storeID)
	if err != nil {
		return nil, err
	}
	// Más reciente primero.
	for i, j := 0, len(sales)-1; i < j; i, j = i+1, j-1 {
		sales[i], sales[j] = sales[j], sales[i]
	}

	page.DefaultPage()
	out := &dto.SaleListResponse{
		Items: make([]dto.SaleResponse, 0, page.Limit),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(sales)},
	}
	for i := page.Offset; i < len(sales) && i < page.Offset+page.Limit; i++ {
		out.Items = append(out.Items, saleToResponse(&sales[i]))
	}
	return out, nil
}

// LookupReceipt valida un código de recibo contra las ventas de la tienda
// activa. Un código bien formado pero inexistente devuelve Valid=false, no
// error: es la consulta que hace el mostrador delante del cliente.
func (uc *UseCase) LookupReceipt(ctx access.Context, code string) (*dto.ReceiptLookupResponse, error) {
	storeID, err := activeStoreID(ctx)
	if err != nil {
		return nil, err
	}
	if !receipt.Valid(code) {
		return &dto.ReceiptLookupResponse{Valid: false}, nil
	}
	sale, err := uc.sales.GetByReceiptCodeInStore(code, storeID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return &dto.ReceiptLookupResponse{Valid: false, Formatted: receipt.Format(code)}, nil
	}
	resp := saleToResponse(sale)
	return &dto.ReceiptLookupResponse{Valid: true, Formatted: receipt.Format(code), Sale: &resp}, nil
}

func (uc *UseCase) get(ctx access.Context, id string) (*entity.Sale, error) {
	storeID, err := activeStoreID(ctx)
	if err != nil {
		return nil, err
	}
	sale, err := uc.sales.GetByIDInStore(id, storeID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
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

func saleToResponse(s *entity.Sale) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Discount:    it.Discount,
			Total:       it.Total,
		})
	}
	return dto.SaleResponse{
		ID:            s.ID,
		StoreID:       s.StoreID,
		ReceiptCode:   s.ReceiptCode,
		CustomerID:    s.CustomerID,
		CustomerName:  s.CustomerName,
		Items:         items,
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Total:         s.Total,
		PaymentMethod: string(s.PaymentMethod),
		Status:        string(s.Status),
		SellerID:      s.SellerID,
		SellerName:    s.SellerName,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
	}
}
