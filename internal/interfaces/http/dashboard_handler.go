package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nova-pos/internal/application/analytics"
	"github.com/jhoicas/nova-pos/internal/application/session"
)

// DashboardHandler maneja las métricas agregadas de lectura.
type DashboardHandler struct {
	uc       *analytics.UseCase
	sessions *session.Manager
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.UseCase, sessions *session.Manager) *DashboardHandler {
	return &DashboardHandler{uc: uc, sessions: sessions}
}

// Stats godoc
// @Summary      Métricas del panel de la tienda activa
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(h.sessions.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// AllStoresStats godoc
// @Summary      Métricas por tienda para el panel del super admin
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AllStoresStatsResponse
// @Router       /api/admin/stores/stats [get]
func (h *DashboardHandler) AllStoresStats(c *fiber.Ctx) error {
	out, err := h.uc.AllStoresStats(h.sessions.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// StoreStats godoc
// @Summary      Métricas de una tienda puntual
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tienda"
// @Success      200  {object}  dto.StoreStatsResponse
// @Router       /api/admin/stores/{id}/stats [get]
func (h *DashboardHandler) StoreStats(c *fiber.Ctx) error {
	out, err := h.uc.StoreStats(h.sessions.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}
