package dto

// LoginRequest entrada para iniciar sesión.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y el estado de sesión resultante.
type LoginResponse struct {
	Token       string         `json:"token"`
	User        UserResponse   `json:"user"`
	ActiveStore *StoreResponse `json:"active_store,omitempty"`
}

// SessionResponse estado actual de la sesión (GET /auth/session).
type SessionResponse struct {
	Authenticated bool           `json:"authenticated"`
	User          *UserResponse  `json:"user,omitempty"`
	ActiveStore   *StoreResponse `json:"active_store,omitempty"`
}

// SelectStoreRequest entrada para que el super admin cambie de tienda activa.
// StoreID vacío vuelve a la vista global (sin tenant).
type SelectStoreRequest struct {
	StoreID string `json:"store_id"`
}
