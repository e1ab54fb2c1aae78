package entity

import "time"

// Store representa una tienda/tenant del sistema. Todos los datos de dominio
// (productos, clientes, ventas, usuarios no-admin) se particionan por su ID.
type Store struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Address   string     `json:"address,omitempty"`
	IsActive  bool       `json:"isActive"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"` // nil = acceso sin vencimiento
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Estados de expiración para la vista de administración.
const (
	ExpirationActive       = "active"
	ExpirationExpiringSoon = "expiring_soon"
	ExpirationExpired      = "expired"
	ExpirationUnlimited    = "unlimited"
)

// expiringSoonDays ventana de aviso antes del vencimiento.
const expiringSoonDays = 7

// IsAccessibleAt indica si la tienda es accesible en el instante dado:
// activa Y (sin vencimiento O now <= ExpiresAt).
func (s *Store) IsAccessibleAt(now time.Time) bool {
	if !s.IsActive {
		return false
	}
	if s.ExpiresAt != nil && now.After(*s.ExpiresAt) {
		return false
	}
	return true
}

// IsAccessible es IsAccessibleAt con el reloj del sistema.
func (s *Store) IsAccessible() bool {
	return s.IsAccessibleAt(time.Now())
}

// DaysUntilExpirationAt devuelve los días hasta el vencimiento (redondeo hacia
// arriba, negativo si ya venció). El segundo valor es false si no hay vencimiento.
func (s *Store) DaysUntilExpirationAt(now time.Time) (int, bool) {
	if s.ExpiresAt == nil {
		return 0, false
	}
	diff := s.ExpiresAt.Sub(now)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days, true
}

// ExpirationStatusAt clasifica la tienda para el panel de administración:
// unlimited, expired, expiring_soon (<= 7 días) o active.
func (s *Store) ExpirationStatusAt(now time.Time) string {
	days, ok := s.DaysUntilExpirationAt(now)
	if !ok {
		return ExpirationUnlimited
	}
	switch {
	case days < 0:
		return ExpirationExpired
	case days <= expiringSoonDays:
		return ExpirationExpiringSoon
	default:
		return ExpirationActive
	}
}
