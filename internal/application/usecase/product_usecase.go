package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/nova-pos/internal/application/dto"
	"github.com/jhoicas/nova-pos/internal/domain"
	"github.com/jhoicas/nova-pos/internal/domain/access"
	"github.com/jhoicas/nova-pos/internal/domain/entity"
	"github.com/jhoicas/nova-pos/internal/domain/repository"
)

// ProductUseCase aplica reglas de negocio del catálogo de productos. Toda
// escritura pasa por access.EnforceStoreID; toda lectura es scoped a la tienda
// activa, incluso para el super admin.
type ProductUseCase struct {
	products repository.ProductRepository
}

// NewProductUseCase construye el caso de uso con el puerto de persistencia.
func NewProductUseCase(products repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{products: products}
}

// Create crea un producto en la tienda activa. El StoreID lo estampa la capa
// de acceso, nunca el cliente.
func (uc *ProductUseCase) Create(ctx access.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	storeID, err := access.EnforceStoreID("", ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.SKU != "" {
		existing, err := uc.products.ListByStore(storeID)
		if err != nil {
			return nil, err
		}
		for i := range existing {
			if existing[i].SKU == in.SKU {
				return nil, domain.ErrDuplicate
			}
		}
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		StoreID:     storeID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		SKU:         in.SKU,
		Price:       in.Price,
		Cost:        in.Cost,
		Stock:       in.Stock,
		Category:    in.Category,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}
	resp := productToResponse(product)
	return &resp, nil
}

// Update actualiza un producto de la tienda activa.
func (uc *ProductUseCase) Update(ctx access.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := access.EnforceStoreID(product.StoreID, ctx); err != nil {
		return nil, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.SKU != nil {
		product.SKU = *in.SKU
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Cost = *in.Cost
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Stock = *in.Stock
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()

	if err := uc.products.Update(product); err != nil {
		return nil, err
	}
	resp := productToResponse(product)
	return &resp, nil
}

// Delete elimina un producto de la tienda activa.
func (uc *ProductUseCase) Delete(ctx access.Context, id string) error {
	product, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanDeleteRecord(product.StoreID, ctx) {
		return domain.ErrCrossTenantAccess
	}
	return uc.products.Delete(id)
}

// GetByID obtiene un producto de la tienda activa.
func (uc *ProductUseCase) GetByID(ctx access.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := productToResponse(product)
	return &resp, nil
}

// List lista los productos de la tienda activa, con búsqueda insensible a
// acentos sobre nombre, SKU y categoría.
func (uc *ProductUseCase) List(ctx access.Context, query string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	storeID, err := activeStoreID(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.products.ListByStore(storeID)
	if err != nil {
		return nil, err
	}

	q := normalizeQuery(query)
	filtered := make([]entity.Product, 0, len(products))
	for i := range products {
		p := &products[i]
		if matchesQuery(q, p.Name, p.SKU, p.Category) {
			filtered = append(filtered, *p)
		}
	}

	page.DefaultPage()
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, page.Limit),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(filtered)},
	}
	for i := page.Offset; i < len(filtered) && i < page.Offset+page.Limit; i++ {
		out.Items = append(out.Items, productToResponse(&filtered[i]))
	}
	return out, nil
}

// get lee scoped: un ID de otra tienda devuelve ErrNotFound, no el registro.
func (uc *ProductUseCase) get(ctx access.Context, id string) (*entity.Product, error) {
	storeID, err := activeStoreID(ctx)
	if err != nil {
		return nil, err
	}
	product, err := uc.products.GetByIDInStore(id, storeID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// activeStoreID resuelve la tienda sobre la que operan las lecturas scoped.
// También el super admin lee a través de su tienda activa: sin tenant
// seleccionado no hay colección que listar.
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
