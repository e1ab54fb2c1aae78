package kvstore

import (
	"github.com/jhoicas/nova-pos/internal/domain/entity"
	"github.com/jhoicas/nova-pos/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo persiste los dos slots de sesión: usuario autenticado y tienda
// activa. Sobreviven reinicios del proceso, igual que el localStorage original.
type SessionRepo struct {
	kv KV
}

// NewSessionRepository construye el adaptador de los slots de sesión.
func NewSessionRepository(kv KV) *SessionRepo {
	return &SessionRepo{kv: kv}
}

// GetUser devuelve el usuario persistido de la sesión; nil si no hay.
func (r *SessionRepo) GetUser() (*entity.User, error) {
	var u entity.User
	ok, err := getSlot(r.kv, KeySessionUser, &u)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// SetUser persiste el usuario de la sesión.
func (r *SessionRepo) SetUser(user *entity.User) error {
	return setSlot(r.kv, KeySessionUser, user)
}

// ClearUser limpia el slot del usuario.
func (r *SessionRepo) ClearUser() error {
	return r.kv.Delete(KeySessionUser)
}

// GetActiveStore devuelve la tienda activa persistida; nil si no hay.
func (r *SessionRepo) GetActiveStore() (*entity.Store, error) {
	var s entity.Store
	ok, err := getSlot(r.kv, KeyActiveStore, &s)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// SetActiveStore persiste la tienda activa.
func (r *SessionRepo) SetActiveStore(store *entity.Store) error {
	return setSlot(r.kv, KeyActiveStore, store)
}

// ClearActiveStore limpia el slot de la tienda activa.
func (r *SessionRepo) ClearActiveStore() error {
	return r.kv.Delete(KeyActiveStore)
}
