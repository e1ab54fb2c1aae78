package kvstore

import (
	"strings"

	"github.com/jhoicas/nova-pos/internal/domain"
	"github.com/jhoicas/nova-pos/internal/domain/entity"
	"github.com/jhoicas/nova-pos/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre el key-value store.
type UserRepo struct {
	kv KV
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(kv KV) *UserRepo {
	return &UserRepo{kv: kv}
}

// List devuelve todos los usuarios.
func (r *UserRepo) List() ([]entity.User, error) {
	users := []entity.User{}
	if err := getCollection(r.kv, KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID obtiene un usuario por ID; nil si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	users, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// GetByEmail obtiene un usuario por email (comparación sin mayúsculas); nil si no existe.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	users, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			u := users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// ListByStore devuelve los usuarios ligados a la tienda.
func (r *UserRepo) ListByStore(storeID string) ([]entity.User, error) {
	users, err := r.List()
	if err != nil {
		return nil, err
	}
	out := []entity.User{}
	for _, u := range users {
		if u.StoreID == storeID {
			out = append(out, u)
		}
	}
	return out, nil
}

// Create agrega un usuario; ErrDuplicate si el ID o el email ya existen.
func (r *UserRepo) Create(user *entity.User) error {
	users, err := r.List()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == user.ID || strings.EqualFold(users[i].Email, user.Email) {
			return domain.ErrDuplicate
		}
	}
	users = append(users, *user)
	return setCollection(r.kv, KeyUsers, users)
}

// Update reemplaza un usuario existente; ErrNotFound si no existe.
func (r *UserRepo) Update(user *entity.User) error {
	users, err := r.List()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = *user
			return setCollection(r.kv, KeyUsers, users)
		}
	}
	return domain.ErrNotFound
}

// DeleteByStore elimina todos los usuarios ligados a la tienda (cascada del
// borrado de tienda). Devuelve cuántos eliminó.
func (r *UserRepo) DeleteByStore(storeID string) (int, error) {
	users, err := r.List()
	if err != nil {
		return 0, err
	}
	kept := users[:0]
	removed := 0
	for _, u := range users {
		if u.StoreID == storeID {
			removed++
			continue
		}
		kept = append(kept, u)
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, setCollection(r.kv, KeyUsers, kept)
}

// Delete elimina un usuario por ID; ErrNotFound si no existe.
func (r *UserRepo) Delete(id string) error {
	users, err := r.List()
	if err != nil {
		return err
	}
	kept := users[:0]
	found := false
	for _, u := range users {
		if u.ID == id {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	if !found {
		return domain.ErrNotFound
	}
	return setCollection(r.kv, KeyUsers, kept)
}
