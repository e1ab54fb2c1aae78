package kvstore

import (
	"github.com/jhoicas/nova-pos/internal/domain"
	"github.com/jhoicas/nova-pos/internal/domain/entity"
	"github.com/jhoicas/nova-pos/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación del puerto StoreRepository sobre el key-value store.
type StoreRepo struct {
	kv KV
}

// NewStoreRepository construye el adaptador de persistencia para tiendas.
func NewStoreRepository(kv KV) *StoreRepo {
	return &StoreRepo{kv: kv}
}

// List devuelve todas las tiendas (vista de super admin).
func (r *StoreRepo) List() ([]entity.Store, error) {
	stores := []entity.Store{}
	if err := getCollection(r.kv, KeyStores, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

// GetByID obtiene una tienda por ID; nil si no existe.
func (r *StoreRepo) GetByID(id string) (*entity.Store, error) {
	stores, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range stores {
		if stores[i].ID == id {
			s := stores[i]
			return &s, nil
		}
	}
	return nil, nil
}

// Create agrega una tienda; ErrDuplicate si el ID ya existe.
func (r *StoreRepo) Create(store *entity.Store) error {
	stores, err := r.List()
	if err != nil {
		return err
	}
	for i := range stores {
		if stores[i].ID == store.ID {
			return domain.ErrDuplicate
		}
	}
	stores = append(stores, *store)
	return setCollection(r.kv, KeyStores, stores)
}

// Update reemplaza una tienda existente; ErrNotFound si no existe.
func (r *StoreRepo) Update(store *entity.Store) error {
	stores, err := r.List()
	if err != nil {
		return err
	}
	for i := range stores {
		if stores[i].ID == store.ID {
			stores[i] = *store
			return setCollection(r.kv, KeyStores, stores)
		}
	}
	return domain.ErrNotFound
}

// Delete elimina una tienda; ErrNotFound si no existe.
func (r *StoreRepo) Delete(id string) error {
	stores, err := r.List()
	if err != nil {
		return err
	}
	kept := stores[:0]
	found := false
	for _, s := range stores {
		if s.ID == id {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		return domain.ErrNotFound
	}
	return setCollection(r.kv, KeyStores, kept)
}
