package repository

import "github.com/jhoicas/nova-pos/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	List() ([]entity.Customer, error)
	ListByStore(storeID string) ([]entity.Customer, error)
	GetByIDInStore(id, storeID string) (*entity.Customer, error)
	Create(customer *entity.Customer) error
	Update(customer *entity.Customer) error
	Delete(id string) error
}
