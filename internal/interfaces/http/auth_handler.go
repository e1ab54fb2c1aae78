package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nova-pos/internal/application/dto"
	"github.com/jhoicas/nova-pos/internal/application/session"
	"github.com/jhoicas/nova-pos/internal/domain"
	"github.com/jhoicas/nova-pos/internal/domain/repository"
	"github.com/jhoicas/nova-pos/pkg/jwt"
)

// JWTConfig parámetros de emisión de tokens del borde HTTP.
type JWTConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// AuthHandler maneja login, logout, estado de sesión y cambio de tienda
// activa. La autoridad de sesión es el Manager; el JWT solo transporta la
// identidad entre peticiones.
type AuthHandler struct {
	sessions *session.Manager
	stores   repository.StoreRepository
	jwtCfg   JWTConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(sessions *session.Manager, stores repository.StoreRepository, jwtCfg JWTConfig) *AuthHandler {
	return &AuthHandler{sessions: sessions, stores: stores, jwtCfg: jwtCfg}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	if err := h.sessions.Login(in.Email, in.Password); err != nil {
		return errorResponse(c, err)
	}
	return h.respondSession(c)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Security     Bearer
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Logout()
	return c.SendStatus(fiber.StatusNoContent)
}

// Session godoc
// @Summary      Estado de la sesión vigente
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	user, store := h.sessions.Current()
	return c.JSON(dto.SessionResponse{
		Authenticated: user != nil,
		User:          toUserResponse(user),
		ActiveStore:   toStoreResponse(store),
	})
}

// SelectStore godoc
// @Summary      Cambiar la tienda activa (impersonación del super admin)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectStoreRequest  true  "store_id, vacío para vista global"
// @Success      200   {object}  dto.LoginResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/store [post]
func (h *AuthHandler) SelectStore(c *fiber.Ctx) error {
	var in dto.SelectStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.StoreID == "" {
		if err := h.sessions.SetActiveStore(nil); err != nil {
			return errorResponse(c, err)
		}
		return h.respondSession(c)
	}
	store, err := h.stores.GetByID(in.StoreID)
	if err != nil {
		return errorResponse(c, err)
	}
	if store == nil {
		return errorResponse(c, domain.ErrStoreNotFound)
	}
	if err := h.sessions.SetActiveStore(store); err != nil {
		return errorResponse(c, err)
	}
	return h.respondSession(c)
}

// respondSession emite un token fresco para el estado de sesión vigente. El
// StoreID viaja en el token: después de cambiar de tienda el token anterior
// queda desactualizado.
func (h *AuthHandler) respondSession(c *fiber.Ctx) error {
	user, store := h.sessions.Current()
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sin sesión activa"})
	}
	storeID := ""
	if store != nil {
		storeID = store.ID
	}
	token, err := jwt.Generate(h.jwtCfg.Secret, user.ID, storeID, string(user.Role), h.jwtCfg.Issuer, h.jwtCfg.ExpMinutes)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.LoginResponse{
		Token:       token,
		User:        *toUserResponse(user),
		ActiveStore: toStoreResponse(store),
	})
}
