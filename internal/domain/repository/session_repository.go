package repository

import "github.com/jhoicas/nova-pos/internal/domain/entity"

// SessionRepository define el puerto de los dos slots de sesión persistidos:
// el usuario autenticado y la tienda activa. Un slot ausente devuelve nil sin
// error; un slot corrupto devuelve ErrCorruptData.
type SessionRepository interface {
	GetUser() (*entity.User, error)
	SetUser(user *entity.User) error
	ClearUser() error

	GetActiveStore() (*entity.Store, error)
	SetActiveStore(store *entity.Store) error
	ClearActiveStore() error
}
