package repository

import "github.com/jhoicas/nova-pos/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	List() ([]entity.User, error)
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	ListByStore(storeID string) ([]entity.User, error)
	Create(user *entity.User) error
	Update(user *entity.User) error
	// DeleteByStore elimina todos los usuarios ligados a la tienda (cascada al
	// borrar la tienda). Devuelve cuántos eliminó.
	DeleteByStore(storeID string) (int, error)
	Delete(id string) error
}
