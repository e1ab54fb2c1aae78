package entity

import (
	"time"

	"github.com/jhoicas/nova-pos/internal/domain"
)

// Role es el conjunto cerrado de roles del sistema.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleStoreOwner Role = "store_owner"
	RoleManager    Role = "manager"
	RoleSeller     Role = "seller"
)

// Valid indica si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleStoreOwner, RoleManager, RoleSeller:
		return true
	}
	return false
}

// RequiresStore indica si el rol debe estar ligado a una tienda.
// Solo super_admin opera sin tienda; el invariante vive en el tipo, no en
// campos opcionales dispersos.
func (r Role) RequiresStore() bool {
	return r != RoleSuperAdmin
}

// User representa un usuario del sistema. StoreID es vacío únicamente para
// super_admin; para el resto de roles es obligatorio e inmutable en intención.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"` // bcrypt, nunca texto plano persistido
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	StoreID      string    `json:"storeId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsSuperAdmin indica si el usuario es el rol cross-tenant.
func (u *User) IsSuperAdmin() bool {
	return u != nil && u.Role == RoleSuperAdmin
}

// Validate verifica el invariante rol/tienda: exactamente uno de
// {rol super_admin} o {StoreID presente} debe cumplirse.
func (u *User) Validate() error {
	if !u.Role.Valid() {
		return domain.ErrInvalidInput
	}
	if u.Role.RequiresStore() && u.StoreID == "" {
		return domain.ErrInvalidInput
	}
	if !u.Role.RequiresStore() && u.StoreID != "" {
		return domain.ErrInvalidInput
	}
	return nil
}
