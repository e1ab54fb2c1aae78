// Package seed inicializa los datos mínimos del sistema al arrancar: la
// cuenta fija de super admin y, opcionalmente, un catálogo de demostración
// para una tienda vacía.
package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/nova-pos/internal/domain/entity"
	"github.com/jhoicas/nova-pos/internal/domain/repository"
	"github.com/jhoicas/nova-pos/pkg/logger"
)

// Seeder siembra datos de arranque. Todas las operaciones son idempotentes:
// lo que ya existe no se toca.
type Seeder struct {
	users     repository.UserRepository
	products  repository.ProductRepository
	customers repository.CustomerRepository
	log       *logger.Logger
}

// New construye el seeder con sus puertos de persistencia.
func New(users repository.UserRepository, products repository.ProductRepository, customers repository.CustomerRepository, log *logger.Logger) *Seeder {
	return &Seeder{users: users, products: products, customers: customers, log: log}
}

// EnsureSuperAdmin garantiza que exista la cuenta de super admin. Si el email
// ya está registrado no cambia nada, ni siquiera la contraseña.
func (s *Seeder) EnsureSuperAdmin(email, password, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return fmt.Errorf("credenciales de super admin incompletas")
	}
	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleSuperAdmin,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(admin); err != nil {
		return err
	}
	s.log.Info().Str("email", email).Msg("super admin creado")
	return nil
}

// SeedDemo carga el catálogo de demostración en la tienda si sus colecciones
// de productos y clientes están vacías.
func (s *Seeder) SeedDemo(storeID string) error {
	if storeID == "" {
		return fmt.Errorf("seed demo: falta la tienda destino")
	}

	products, err := s.products.ListByStore(storeID)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		for _, p := range demoProducts(storeID) {
			if err := s.products.Create(&p); err != nil {
				return err
			}
		}
		s.log.Info().Str("store_id", storeID).Msg("productos de demostración cargados")
	}

	customers, err := s.customers.ListByStore(storeID)
	if err != nil {
		return err
	}
	if len(customers) == 0 {
		for _, c := range demoCustomers(storeID) {
			if err := s.customers.Create(&c); err != nil {
				return err
			}
		}
		s.log.Info().Str("store_id", storeID).Msg("clientes de demostración cargados")
	}
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func demoProducts(storeID string) []entity.Product {
	now := time.Now()
	mk := func(name, description, sku, price, cost string, stock int, category string) entity.Product {
		return entity.Product{
			ID: uuid.New().String(), StoreID: storeID,
			Name: name, Description: description, SKU: sku,
			Price: dec(price), Cost: dec(cost), Stock: stock,
			Category: category, Active: true, CreatedAt: now, UpdatedAt: now,
		}
	}
	return []entity.Product{
		mk("Notebook Dell Inspiron", "Notebook Dell Inspiron 15, Intel Core i5, 8GB RAM, 256GB SSD", "NB-DELL-001", "3499.90", "2800.00", 15, "Eletrônicos"),
		mk("Mouse Logitech MX Master", "Mouse sem fio Logitech MX Master 3, ergonômico", "MS-LOG-001", "449.90", "320.00", 45, "Periféricos"),
		mk("Teclado Mecânico Keychron", "Teclado mecânico Keychron K2, switches brown", "KB-KEY-001", "599.90", "420.00", 8, "Periféricos"),
		mk("Monitor LG UltraWide 29\"", "Monitor LG 29\" UltraWide Full HD IPS", "MN-LG-001", "1299.90", "950.00", 3, "Monitores"),
		mk("Webcam Logitech C920", "Webcam Full HD 1080p com microfone", "WC-LOG-001", "399.90", "280.00", 22, "Periféricos"),
	}
}

func demoCustomers(storeID string) []entity.Customer {
	now := time.Now()
	return []entity.Customer{
		{
			ID: uuid.New().String(), StoreID: storeID, Name: "João Silva",
			Email: "joao.silva@email.com", Phone: "(11) 98765-4321", Document: "123.456.789-00",
			Address: "Rua das Flores, 123", City: "São Paulo", State: "SP", ZipCode: "01234-567",
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.New().String(), StoreID: storeID, Name: "Maria Santos",
			Email: "maria.santos@email.com", Phone: "(11) 91234-5678", Document: "987.654.321-00",
			Address: "Av. Paulista, 1000", City: "São Paulo", State: "SP", ZipCode: "01310-100",
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.New().String(), StoreID: storeID, Name: "Pedro Oliveira",
			Email: "pedro.oliveira@email.com", Phone: "(21) 99876-5432",
			City: "Rio de Janeiro", State: "RJ",
			CreatedAt: now, UpdatedAt: now,
		},
	}
}
