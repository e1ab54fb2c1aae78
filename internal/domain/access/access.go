// Package access implementa el aislamiento de datos entre tiendas: la única
// autoridad que decide si un triple {usuario, tienda activa, registro} permite
// leer, escribir o borrar. Todas las funciones son puras y sin efectos.
//
// Regla de diseño: el aislamiento se aplica en el borde de escritura, no en la
// capa de almacenamiento. Toda mutación de colección debe pasar por
// EnforceStoreID antes de persistir; toda lectura scoped filtra por StoreID.
// Cualquier escritura directa al key-value store que salte esta puerta es un
// bug de aislamiento por construcción.
package access

import (
	"github.com/jhoicas/nova-pos/internal/domain"
	"github.com/jhoicas/nova-pos/internal/domain/entity"
)

// Context es el contexto de sesión explícito que acompaña cada decisión.
// Se pasa por valor a cada llamada; no hay estado ambiente ni singletons.
type Context struct {
	User        *entity.User
	ActiveStore *entity.Store
}

// CanAccessStore indica si el usuario puede acceder a la tienda indicada.
// Super admin accede a todas; el resto solo a su tienda ligada.
func CanAccessStore(user *entity.User, storeID string) bool {
	if user == nil {
		return false
	}
	if user.IsSuperAdmin() {
		return true
	}
	return user.StoreID == storeID
}

// IsAdmin indica si el usuario puede ejecutar operaciones de administración.
func IsAdmin(user *entity.User) bool {
	return user.IsSuperAdmin()
}

// ValidateStoreAccess valida que un StoreID de registro coincida con la tienda
// activa del contexto. Devuelve nil si el acceso es permitido.
func ValidateStoreAccess(recordStoreID string, ctx Context) error {
	if ctx.User == nil {
		return domain.ErrUnauthenticated
	}
	if ctx.ActiveStore == nil {
		return domain.ErrNoActiveStore
	}
	if ctx.User.IsSuperAdmin() {
		return nil
	}
	if recordStoreID != ctx.ActiveStore.ID {
		return domain.ErrCrossTenantAccess
	}
	return nil
}

// EnforceStoreID decide el StoreID con el que un registro nuevo o actualizado
// debe persistirse.
//
// Super admin puede apuntar a cualquier tienda, pero debe indicarla explícita:
// sin tienda activa ni StoreID en el registro no hay destino válido. Para el
// resto de roles el StoreID devuelto se estampa siempre desde la tienda
// activa; un StoreID explícito que no coincida se rechaza, nunca se corrige
// en silencio.
func EnforceStoreID(recordStoreID string, ctx Context) (string, error) {
	if ctx.User == nil {
		return "", domain.ErrInvalidContext
	}
	if ctx.User.IsSuperAdmin() {
		if recordStoreID != "" {
			return recordStoreID, nil
		}
		if ctx.ActiveStore != nil {
			return ctx.ActiveStore.ID, nil
		}
		return "", domain.ErrInvalidInput
	}
	if ctx.ActiveStore == nil {
		return "", domain.ErrInvalidContext
	}
	if recordStoreID != "" && recordStoreID != ctx.ActiveStore.ID {
		return "", domain.ErrCrossTenantWrite
	}
	return ctx.ActiveStore.ID, nil
}

// CanModifyRecord indica si el contexto permite modificar un registro de la
// tienda indicada.
func CanModifyRecord(recordStoreID string, ctx Context) bool {
	if ctx.User == nil {
		return false
	}
	if ctx.User.IsSuperAdmin() {
		return true
	}
	return ctx.ActiveStore != nil && ctx.ActiveStore.ID == recordStoreID
}

// CanDeleteRecord usa hoy la misma política que CanModifyRecord.
// Simplificación deliberada, no una política distinta.
func CanDeleteRecord(recordStoreID string, ctx Context) bool {
	return CanModifyRecord(recordStoreID, ctx)
}

// HasRole indica si el usuario tiene alguno de los roles permitidos.
func HasRole(user *entity.User, roles ...entity.Role) bool {
	if user == nil {
		return false
	}
	for _, r := range roles {
		if user.Role == r {
			return true
		}
	}
	return false
}
