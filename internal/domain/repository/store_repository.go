package repository

import "github.com/jhoicas/nova-pos/internal/domain/entity"

// StoreRepository define el puerto de persistencia para Store (DIP).
// La colección de tiendas no es scoped: solo la consulta el super admin y el
// login/restore de sesión.
type StoreRepository interface {
	List() ([]entity.Store, error)
	GetByID(id string) (*entity.Store, error)
	Create(store *entity.Store) error
	Update(store *entity.Store) error
	Delete(id string) error
}
