package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nova-pos/internal/application/analytics"
	"github.com/jhoicas/nova-pos/internal/application/sales"
	"github.com/jhoicas/nova-pos/internal/application/session"
	"github.com/jhoicas/nova-pos/internal/application/usecase"
	"github.com/jhoicas/nova-pos/internal/domain/entity"
	"github.com/jhoicas/nova-pos/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions    *session.Manager
	Stores      repository.StoreRepository
	StoreUC     *usecase.StoreUseCase
	ProductUC   *usecase.ProductUseCase
	CustomerUC  *usecase.CustomerUseCase
	UserUC      *usecase.UserUseCase
	SalesUC     *sales.UseCase
	AnalyticsUC *analytics.UseCase
	JWT         JWTConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	superAdmin := string(entity.RoleSuperAdmin)
	storeOwner := string(entity.RoleStoreOwner)
	manager := string(entity.RoleManager)

	api := app.Group("/api")

	// Auth: login público; el resto requiere token y sesión vigente.
	authHandler := NewAuthHandler(deps.Sessions, deps.Stores, deps.JWT)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", AuthMiddleware(deps.JWT.Secret), SessionGuard(deps.Sessions), authHandler.Logout)
	authGroup.Get("/session", AuthMiddleware(deps.JWT.Secret), SessionGuard(deps.Sessions), authHandler.Session)
	authGroup.Post("/store", AuthMiddleware(deps.JWT.Secret), SessionGuard(deps.Sessions), RequireRole(superAdmin), authHandler.SelectStore)

	// Rutas protegidas: token válido Y sesión vigente.
	protected := api.Group("/", AuthMiddleware(deps.JWT.Secret), SessionGuard(deps.Sessions))

	// Administración de tiendas (solo super admin).
	admin := protected.Group("/admin", RequireRole(superAdmin))
	storeHandler := NewStoreHandler(deps.StoreUC, deps.Sessions)
	dashboardHandler := NewDashboardHandler(deps.AnalyticsUC, deps.Sessions)
	admin.Post("/stores", storeHandler.Create)
	admin.Get("/stores", storeHandler.List)
	// /stores/stats antes que /stores/:id para que no lo capture el parámetro.
	admin.Get("/stores/stats", dashboardHandler.AllStoresStats)
	admin.Get("/stores/:id/stats", dashboardHandler.StoreStats)
	admin.Get("/stores/:id", storeHandler.GetByID)
	admin.Put("/stores/:id", storeHandler.Update)
	admin.Delete("/stores/:id", storeHandler.Delete)

	// Equipo de la tienda.
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, deps.Sessions)
	users.Post("/", RequireRole(superAdmin, storeOwner), userHandler.Register)
	users.Get("/", RequireRole(superAdmin, storeOwner, manager), userHandler.List)
	users.Delete("/:id", RequireRole(superAdmin, storeOwner), userHandler.Remove)

	// Catálogo de productos.
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Sessions)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Clientes.
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.Sessions)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Ventas.
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SalesUC, deps.Sessions)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/receipt/:code", saleHandler.LookupReceipt)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/cancel", saleHandler.Cancel)

	// Dashboard de la tienda activa.
	protected.Get("/dashboard", dashboardHandler.Stats)
}
