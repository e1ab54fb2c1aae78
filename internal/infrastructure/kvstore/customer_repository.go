package kvstore

import (
	"github.com/jhoicas/nova-pos/internal/domain"
	"github.com/jhoicas/nova-pos/internal/domain/entity"
	"github.com/jhoicas/nova-pos/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre el key-value store.
type CustomerRepo struct {
	kv KV
}

// NewCustomerRepository construye el adaptador de persistencia para clientes.
func NewCustomerRepository(kv KV) *CustomerRepo {
	return &CustomerRepo{kv: kv}
}

// List devuelve todos los clientes sin filtrar.
func (r *CustomerRepo) List() ([]entity.Customer, error) {
	customers := []entity.Customer{}
	if err := getCollection(r.kv, KeyCustomers, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// ListByStore devuelve los clientes de la tienda.
func (r *CustomerRepo) ListByStore(storeID string) ([]entity.Customer, error) {
	customers, err := r.List()
	if err != nil {
		return nil, err
	}
	out := []entity.Customer{}
	for _, c := range customers {
		if c.StoreID == storeID {
			out = append(out, c)
		}
	}
	return out, nil
}

// GetByIDInStore obtiene un cliente validando su tienda; nil ante mismatch.
func (r *CustomerRepo) GetByIDInStore(id, storeID string) (*entity.Customer, error) {
	customers, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].ID == id && customers[i].StoreID == storeID {
			c := customers[i]
			return &c, nil
		}
	}
	return nil, nil
}

// Create agrega un cliente; ErrDuplicate si el ID ya existe.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	customers, err := r.List()
	if err != nil {
		return err
	}
	for i := range customers {
		if customers[i].ID == customer.ID {
			return domain.ErrDuplicate
		}
	}
	customers = append(customers, *customer)
	return setCollection(r.kv, KeyCustomers, customers)
}

// Update reemplaza un cliente existente; ErrNotFound si no existe.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	customers, err := r.List()
	if err != nil {
		return err
	}
	for i := range customers {
		if customers[i].ID == customer.ID {
			customers[i] = *customer
			return setCollection(r.kv, KeyCustomers, customers)
		}
	}
	return domain.ErrNotFound
}

// Delete elimina un cliente por ID; ErrNotFound si no existe.
func (r *CustomerRepo) Delete(id string) error {
	customers, err := r.List()
	if err != nil {
		return err
	}
	kept := customers[:0]
	found := false
	for _, c := range customers {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return domain.ErrNotFound
	}
	return setCollection(r.kv, KeyCustomers, kept)
}
