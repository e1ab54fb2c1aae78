package repository

import "github.com/jhoicas/nova-pos/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale.
type SaleRepository interface {
	List() ([]entity.Sale, error)
	ListByStore(storeID string) ([]entity.Sale, error)
	GetByIDInStore(id, storeID string) (*entity.Sale, error)
	GetByReceiptCodeInStore(code, storeID string) (*entity.Sale, error)
	Create(sale *entity.Sale) error
	Update(sale *entity.Sale) error
}
