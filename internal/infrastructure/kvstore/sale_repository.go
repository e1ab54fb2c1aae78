package kvstore

import (
	"github.com/jhoicas/nova-pos/internal/domain"
	"github.com/jhoicas/nova-pos/internal/domain/entity"
	"github.com/jhoicas/nova-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre el key-value store.
type SaleRepo struct {
	kv KV
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(kv KV) *SaleRepo {
	return &SaleRepo{kv: kv}
}

// List devuelve todas las ventas sin filtrar.
func (r *SaleRepo) List() ([]entity.Sale, error) {
	sales := []entity.Sale{}
	if err := getCollection(r.kv, KeySales, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// ListByStore devuelve las ventas de la tienda.
func (r *SaleRepo) ListByStore(storeID string) ([]entity.Sale, error) {
	sales, err := r.List()
	if err != nil {
		return nil, err
	}
	out := []entity.Sale{}
	for _, s := range sales {
		if s.StoreID == storeID {
			out = append(out, s)
		}
	}
	return out, nil
}

// GetByIDInStore obtiene una venta validando su tienda; nil ante mismatch.
func (r *SaleRepo) GetByIDInStore(id, storeID string) (*entity.Sale, error) {
	sales, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range sales {
		if sales[i].ID == id && sales[i].StoreID == storeID {
			s := sales[i]
			return &s, nil
		}
	}
	return nil, nil
}

// GetByReceiptCodeInStore busca una venta por su código de recibo dentro de la
// tienda; nil si no existe. El código es para consulta humana, no es clave.
func (r *SaleRepo) GetByReceiptCodeInStore(code, storeID string) (*entity.Sale, error) {
	sales, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range sales {
		if sales[i].ReceiptCode == code && sales[i].StoreID == storeID {
			s := sales[i]
			return &s, nil
		}
	}
	return nil, nil
}

// Create agrega una venta; ErrDuplicate si el ID ya existe.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	sales, err := r.List()
	if err != nil {
		return err
	}
	for i := range sales {
		if sales[i].ID == sale.ID {
			return domain.ErrDuplicate
		}
	}
	sales = append(sales, *sale)
	return setCollection(r.kv, KeySales, sales)
}

// Update reemplaza una venta existente (cambio de estado); ErrNotFound si no existe.
func (r *SaleRepo) Update(sale *entity.Sale) error {
	sales, err := r.List()
	if err != nil {
		return err
	}
	for i := range sales {
		if sales[i].ID == sale.ID {
			sales[i] = *sale
			return setCollection(r.kv, KeySales, sales)
		}
	}
	return domain.ErrNotFound
}
