package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/nova-pos/internal/application/analytics"
	"github.com/jhoicas/nova-pos/internal/application/sales"
	"github.com/jhoicas/nova-pos/internal/application/seed"
	"github.com/jhoicas/nova-pos/internal/application/session"
	"github.com/jhoicas/nova-pos/internal/application/usecase"
	"github.com/jhoicas/nova-pos/internal/infrastructure/kvstore"
	httpRouter "github.com/jhoicas/nova-pos/internal/interfaces/http"
	"github.com/jhoicas/nova-pos/pkg/config"
	"github.com/jhoicas/nova-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Almacén clave-valor: archivo JSON si hay path, memoria si no.
	var kv kvstore.KV
	if cfg.Storage.Path != "" {
		fileKV, err := kvstore.OpenFileKV(cfg.Storage.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Storage.Path).Msg("abrir almacén de datos")
		}
		kv = fileKV
		log.Info().Str("path", cfg.Storage.Path).Msg("almacén en archivo")
	} else {
		kv = kvstore.NewMemoryKV()
		log.Warn().Msg("almacén en memoria: los datos se pierden al apagar")
	}

	userRepo := kvstore.NewUserRepository(kv)
	storeRepo := kvstore.NewStoreRepository(kv)
	productRepo := kvstore.NewProductRepository(kv)
	customerRepo := kvstore.NewCustomerRepository(kv)
	saleRepo := kvstore.NewSaleRepository(kv)
	sessionRepo := kvstore.NewSessionRepository(kv)

	// Cuenta fija de super admin y datos demo opcionales.
	seeder := seed.New(userRepo, productRepo, customerRepo, log)
	if err := seeder.EnsureSuperAdmin(cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name); err != nil {
		log.Fatal().Err(err).Msg("sembrar super admin")
	}
	if cfg.Storage.SeedDemo {
		seedDemo(seeder, storeRepo, log)
	}

	// La sesión persistida sobrevive reinicios si la tienda sigue accesible.
	sessions := session.NewManager(userRepo, storeRepo, sessionRepo, log)
	sessions.Restore()

	storeUC := usecase.NewStoreUseCase(storeRepo, userRepo, log)
	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	salesUC := sales.NewUseCase(saleRepo, productRepo, customerRepo, log)
	analyticsUC := analytics.NewUseCase(saleRepo, productRepo, customerRepo, storeRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Nova POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sessions:    sessions,
		Stores:      storeRepo,
		StoreUC:     storeUC,
		ProductUC:   productUC,
		CustomerUC:  customerUC,
		UserUC:      userUC,
		SalesUC:     salesUC,
		AnalyticsUC: analyticsUC,
		JWT: httpRouter.JWTConfig{
			Secret:     cfg.JWT.Secret,
			Issuer:     cfg.JWT.Issuer,
			ExpMinutes: cfg.JWT.Expiration,
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// seedDemo carga el catálogo demo en la primera tienda existente. Si todavía
// no hay tiendas solo avisa: el super admin debe aprovisionar una primero.
func seedDemo(seeder *seed.Seeder, stores *kvstore.StoreRepo, log *logger.Logger) {
	list, err := stores.List()
	if err != nil {
		log.Error().Err(err).Msg("listar tiendas para datos demo")
		return
	}
	if len(list) == 0 {
		log.Warn().Msg("STORAGE_SEED_DEMO activo pero no hay tiendas aprovisionadas")
		return
	}
	if err := seeder.SeedDemo(list[0].ID); err != nil {
		log.Error().Err(err).Str("store_id", list[0].ID).Msg("sembrar datos demo")
	}
}
