package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Todas las fallas de acceso y sesión se devuelven como valores, nunca como panics.
var (
	// Control de acceso multi-tenant.
	ErrUnauthenticated   = errors.New("usuario no autenticado")
	ErrNoActiveStore     = errors.New("ninguna tienda activa seleccionada")
	ErrInvalidContext    = errors.New("contexto de autenticación inválido")
	ErrCrossTenantAccess = errors.New("acceso denegado: no tiene permiso para acceder a datos de esta tienda")
	ErrCrossTenantWrite  = errors.New("acceso denegado: solo puede crear o modificar datos de su tienda")

	// Login y estado de la tienda.
	ErrInvalidCredentials = errors.New("email o contraseña inválidos")
	ErrStoreNotFound      = errors.New("tienda no encontrada")
	ErrStoreBlocked       = errors.New("esta tienda está bloqueada; contacte al administrador")
	ErrStoreExpired       = errors.New("el acceso de esta tienda expiró; contacte al administrador")

	// Genéricos de persistencia y entrada.
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrForbidden    = errors.New("acceso denegado")

	// Datos persistidos que no decodifican: falla ambiental, se reporta alto y claro.
	ErrCorruptData = errors.New("datos persistidos corruptos")
)
