package dto

import "time"

// CreateStoreRequest entrada para aprovisionar una tienda con su dueño.
// La tienda y el usuario store_owner se crean juntos, o ninguno.
type CreateStoreRequest struct {
	Name      string     `json:"name" validate:"required,min=1,max=200"`
	Email     string     `json:"email" validate:"required,email"`
	Phone     string     `json:"phone"`
	Address   string     `json:"address"`
	ExpiresAt *time.Time `json:"expires_at"` // nil = sin vencimiento

	OwnerName     string `json:"owner_name" validate:"required,min=1,max=200"`
	OwnerEmail    string `json:"owner_email" validate:"required,email"`
	OwnerPassword string `json:"owner_password" validate:"required,min=6"`
}

// UpdateStoreRequest entrada para editar una tienda (campos opcionales).
// Nunca toca al dueño. Unlimited=true limpia el vencimiento.
type UpdateStoreRequest struct {
	Name      *string    `json:"name" validate:"omitempty,min=1,max=200"`
	Email     *string    `json:"email" validate:"omitempty,email"`
	Phone     *string    `json:"phone"`
	Address   *string    `json:"address"`
	IsActive  *bool      `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at"`
	Unlimited *bool      `json:"unlimited"`
}

// StoreResponse salida de una tienda con su estado de vencimiento calculado.
type StoreResponse struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone,omitempty"`
	Address             string     `json:"address,omitempty"`
	IsActive            bool       `json:"is_active"`
	ExpiresAt           *time.Time `json:"expires_at,omitempty"`
	ExpirationStatus    string     `json:"expiration_status"`
	DaysUntilExpiration *int       `json:"days_until_expiration,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// StoreAdminResponse tienda enriquecida para la vista del super admin.
type StoreAdminResponse struct {
	StoreResponse
	Owner *UserResponse `json:"owner,omitempty"`
}

// StoreListSummary contadores agregados del listado de tiendas.
type StoreListSummary struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Blocked      int `json:"blocked"`
	Expired      int `json:"expired"`
	ExpiringSoon int `json:"expiring_soon"`
}

// StoreListResponse lista de tiendas para el panel de administración.
type StoreListResponse struct {
	Items   []StoreAdminResponse `json:"items"`
	Summary StoreListSummary     `json:"summary"`
}
