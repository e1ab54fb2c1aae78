package repository

import "github.com/jhoicas/nova-pos/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
// Las lecturas scoped filtran por StoreID y devuelven vacío/nil ante un
// mismatch; nunca error. El filtrado de tenant NO ocurre aquí abajo: la capa
// de acceso decide, este puerto solo compara igualdad.
type ProductRepository interface {
	List() ([]entity.Product, error)
	ListByStore(storeID string) ([]entity.Product, error)
	GetByIDInStore(id, storeID string) (*entity.Product, error)
	Create(product *entity.Product) error
	Update(product *entity.Product) error
	// ReplaceAll reemplaza la colección completa (last-write-wins, ruta gated
	// usada por la venta para descontar stock en bloque).
	ReplaceAll(products []entity.Product) error
	Delete(id string) error
}
