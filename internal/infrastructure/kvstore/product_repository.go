package kvstore

import (
	"github.com/jhoicas/nova-pos/internal/domain"
	"github.com/jhoicas/nova-pos/internal/domain/entity"
	"github.com/jhoicas/nova-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre el key-value store.
type ProductRepo struct {
	kv KV
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(kv KV) *ProductRepo {
	return &ProductRepo{kv: kv}
}

// List devuelve todos los productos sin filtrar (ruta gated / super admin).
func (r *ProductRepo) List() ([]entity.Product, error) {
	products := []entity.Product{}
	if err := getCollection(r.kv, KeyProducts, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListByStore devuelve los productos de la tienda. El filtro es igualdad
// simple: aplica también para super admin (la lectura scoped siempre filtra).
func (r *ProductRepo) ListByStore(storeID string) ([]entity.Product, error) {
	products, err := r.List()
	if err != nil {
		return nil, err
	}
	out := []entity.Product{}
	for _, p := range products {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetByIDInStore obtiene un producto validando su tienda; nil ante mismatch.
func (r *ProductRepo) GetByIDInStore(id, storeID string) (*entity.Product, error) {
	products, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id && products[i].StoreID == storeID {
			p := products[i]
			return &p, nil
		}
	}
	return nil, nil
}

// Create agrega un producto; ErrDuplicate si el ID ya existe.
func (r *ProductRepo) Create(product *entity.Product) error {
	products, err := r.List()
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == product.ID {
			return domain.ErrDuplicate
		}
	}
	products = append(products, *product)
	return setCollection(r.kv, KeyProducts, products)
}

// Update reemplaza un producto existente; ErrNotFound si no existe.
func (r *ProductRepo) Update(product *entity.Product) error {
	products, err := r.List()
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == product.ID {
			products[i] = *product
			return setCollection(r.kv, KeyProducts, products)
		}
	}
	return domain.ErrNotFound
}

// ReplaceAll reemplaza la colección completa (descuento de stock en bloque).
func (r *ProductRepo) ReplaceAll(products []entity.Product) error {
	return setCollection(r.kv, KeyProducts, products)
}

// Delete elimina un producto por ID; ErrNotFound si no existe.
func (r *ProductRepo) Delete(id string) error {
	products, err := r.List()
	if err != nil {
		return err
	}
	kept := products[:0]
	found := false
	for _, p := range products {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return domain.ErrNotFound
	}
	return setCollection(r.kv, KeyProducts, kept)
}
