package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nova-pos/internal/application/dto"
	"github.com/jhoicas/nova-pos/internal/application/usecase"
	"github.com/jhoicas/nova-pos/internal/domain"
	"github.com/jhoicas/nova-pos/internal/domain/access"
	"github.com/jhoicas/nova-pos/internal/domain/entity"
	"github.com/jhoicas/nova-pos/internal/infrastructure/kvstore"
	"github.com/jhoicas/nova-pos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func adminCtx() access.Context {
	return access.Context{User: &entity.User{ID: "admin", Role: entity.RoleSuperAdmin}}
}

func ownerCtx(storeID string) access.Context {
	return access.Context{
		User:        &entity.User{ID: "owner-" + storeID, Role: entity.RoleStoreOwner, StoreID: storeID},
		ActiveStore: &entity.Store{ID: storeID, IsActive: true},
	}
}

func sellerCtx(storeID string) access.Context {
	return access.Context{
		User:        &entity.User{ID: "seller-" + storeID, Role: entity.RoleSeller, StoreID: storeID},
		ActiveStore: &entity.Store{ID: storeID, IsActive: true},
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Aprovisionamiento de tiendas
// ──────────────────────────────────────────────────────────────────────────────

func TestStoreCreate_AprovisionaTiendaConDueno(t *testing.T) {
	kv := kvstore.NewMemoryKV()
	users := kvstore.NewUserRepository(kv)
	uc := usecase.NewStoreUseCase(kvstore.NewStoreRepository(kv), users, logger.Nop())

	resp, err := uc.Create(adminCtx(), dto.CreateStoreRequest{
		Name: "Tienda Central", Email: "central@nova.com",
		OwnerName: "Ana", OwnerEmail: "Ana@Central.com", OwnerPassword: "secreto",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Owner)
	assert.Equal(t, "store_owner", resp.Owner.Role)
	assert.Equal(t, resp.ID, resp.Owner.StoreID)
	assert.Equal(t, "ana@central.com", resp.Owner.Email, "el email se normaliza a minúsculas")
	assert.True(t, resp.IsActive)
	assert.Equal(t, entity.ExpirationUnlimited, resp.ExpirationStatus)

	// El dueño puede autenticarse: el hash quedó persistido.
	saved, err := users.GetByEmail("ana@central.com")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.NotEmpty(t, saved.PasswordHash)
	assert.NotEqual(t, "secreto", saved.PasswordHash)
}

func TestStoreCreate_SoloSuperAdmin(t *testing.T) {
	kv := kvstore.NewMemoryKV()
	uc := usecase.NewStoreUseCase(kvstore.NewStoreRepository(kv), kvstore.NewUserRepository(kv), logger.Nop())

	_, err := uc.Create(ownerCtx("s1"), dto.CreateStoreRequest{
		Name: "Otra", OwnerName: "X", OwnerEmail: "x@x.com", OwnerPassword: "secreto",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestStoreCreate_EmailDeDuenoDuplicado(t *testing.T) {
	kv := kvstore.NewMemoryKV()
	uc := usecase.NewStoreUseCase(kvstore.NewStoreRepository(kv), kvstore.NewUserRepository(kv), logger.Nop())

	_, err := uc.Create(adminCtx(), dto.CreateStoreRequest{
		Name: "Uno", OwnerName: "A", OwnerEmail: "dueno@nova.com", OwnerPassword: "secreto",
	})
	require.NoError(t, err)

	_, err = uc.Create(adminCtx(), dto.CreateStoreRequest{
		Name: "Dos", OwnerName: "B", OwnerEmail: "dueno@nova.com", OwnerPassword: "secreto",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestStoreUpdate_NoTocaAlDueno(t *testing.T) {
	kv := kvstore.NewMemoryKV()
	users := kvstore.NewUserRepository(kv)
	uc := usecase.NewStoreUseCase(kvstore.NewStoreRepository(kv), users, logger.Nop())

	created, err := uc.Create(adminCtx(), dto.CreateStoreRequest{
		Name: "Tienda", OwnerName: "Ana", OwnerEmail: "ana@nova.com", OwnerPassword: "secreto",
	})
	require.NoError(t, err)

	nuevoNombre := "Tienda Renombrada"
	bloqueada := false
	updated, err := uc.Update(adminCtx(), created.ID, dto.UpdateStoreRequest{
		Name: &nuevoNombre, IsActive: &bloqueada,
	})
	require.NoError(t, err)
	assert.Equal(t, "Tienda Renombrada", updated.Name)
	assert.False(t, updated.IsActive)
	require.NotNil(t, updated.Owner)
	assert.Equal(t, "ana@nova.com", updated.Owner.Email)
}

func TestStoreUpdate_VencimientoYSinLimite(t *testing.T) {
	kv := kvstore.NewMemoryKV()
	uc := usecase.NewStoreUseCase(kvstore.NewStoreRepository(kv), kvstore.NewUserRepository(kv), logger.Nop())

	created, err := uc.Create(adminCtx(), dto.CreateStoreRequest{
		Name: "Tienda", OwnerName: "A", OwnerEmail: "a@a.com", OwnerPassword: "secreto",
	})
	require.NoError(t, err)

	vence := time.Now().Add(3 * 24 * time.Hour)
	updated, err := uc.Update(adminCtx(), created.ID, dto.UpdateStoreRequest{ExpiresAt: &vence})
	require.NoError(t, err)
	assert.Equal(t, entity.ExpirationExpiringSoon, updated.ExpirationStatus)
	require.NotNil(t, updated.DaysUntilExpiration)
	assert.Equal(t, 3, *updated.DaysUntilExpiration)

	sinLimite := true
	updated, err = uc.Update(adminCtx(), created.ID, dto.UpdateStoreRequest{Unlimited: &sinLimite})
	require.NoError(t, err)
	assert.Equal(t, entity.ExpirationUnlimited, updated.ExpirationStatus)
	assert.Nil(t, updated.ExpiresAt)
}

func TestStoreDelete_CascadaDeUsuariosYHuerfanos(t *testing.T) {
	kv := kvstore.NewMemoryKV()
	users := kvstore.NewUserRepository(kv)
	products := kvstore.NewProductRepository(kv)
	uc := usecase.NewStoreUseCase(kvstore.NewStoreRepository(kv), users, logger.Nop())

	created, err := uc.Create(adminCtx(), dto.CreateStoreRequest{
		Name: "Tienda", OwnerName: "A", OwnerEmail: "a@a.com", OwnerPassword: "secreto",
	})
	require.NoError(t, err)
	require.NoError(t, products.Create(&entity.Product{ID: "p1", StoreID: created.ID, Name: "Café", Active: true}))

	require.NoError(t, uc.Delete(adminCtx(), created.ID))

	// Los usuarios de la tienda desaparecen en cascada.
	remaining, err := users.ListByStore(created.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	// Los productos quedan huérfanos pero se conservan como historial.
	orphans, err := products.ListByStore(created.ID)
	require.NoError(t, err)
	assert.Len(t, orphans, 1)

	assert.ErrorIs(t, uc.Delete(adminCtx(), created.ID), domain.ErrStoreNotFound)
}

func TestStoreList_ContadoresDelPanel(t *testing.T) {
	kv := kvstore.NewMemoryKV()
	stores := kvstore.NewStoreRepository(kv)
	uc := usecase.NewStoreUseCase(stores, kvstore.NewUserRepository(kv), logger.Nop())

	ayer := time.Now().Add(-24 * time.Hour)
	pronto := time.Now().Add(2 * 24 * time.Hour)
	require.NoError(t, stores.Create(&entity.Store{ID: "s1", Name: "Activa", IsActive: true}))
	require.NoError(t, stores.Create(&entity.Store{ID: "s2", Name: "Bloqueada", IsActive: false}))
	require.NoError(t, stores.Create(&entity.Store{ID: "s3", Name: "Vencida", IsActive: true, ExpiresAt: &ayer}))
	require.NoError(t, stores.Create(&entity.Store{ID: "s4", Name: "Por vencer", IsActive: true, ExpiresAt: &pronto}))

	resp, err := uc.List(adminCtx())
	require.NoError(t, err)
	assert.Len(t, resp.Items, 4)
	assert.Equal(t, 4, resp.Summary.Total)
	assert.Equal(t, 2, resp.Summary.Active)
	assert.Equal(t, 1, resp.Summary.Blocked)
	assert.Equal(t, 1, resp.Summary.Expired)
	assert.Equal(t, 1, resp.Summary.ExpiringSoon)

	_, err = uc.List(ownerCtx("s1"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_EstampaLaTiendaActiva(t *testing.T) {
	uc := usecase.NewProductUseCase(kvstore.NewProductRepository(kvstore.NewMemoryKV()))

	resp, err := uc.Create(ownerCtx("s1"), dto.CreateProductRequest{
		Name: "Café", Price: dec("12.50"), Cost: dec("7.00"), Stock: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", resp.StoreID)
	assert.True(t, resp.Active)
	assert.False(t, resp.LowStock)
}

func TestProductCreate_ValidaEntrada(t *testing.T) {
	uc := usecase.NewProductUseCase(kvstore.NewProductRepository(kvstore.NewMemoryKV()))

	_, err := uc.Create(ownerCtx("s1"), dto.CreateProductRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ownerCtx("s1"), dto.CreateProductRequest{Name: "Café", Price: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductCreate_SKUDuplicadoEnLaMismaTienda(t *testing.T) {
	uc := usecase.NewProductUseCase(kvstore.NewProductRepository(kvstore.NewMemoryKV()))

	_, err := uc.Create(ownerCtx("s1"), dto.CreateProductRequest{Name: "Café", SKU: "CAF-1"})
	require.NoError(t, err)
	_, err = uc.Create(ownerCtx("s1"), dto.CreateProductRequest{Name: "Otro café", SKU: "CAF-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// El mismo SKU en otra tienda no colisiona.
	_, err = uc.Create(ownerCtx("s2"), dto.CreateProductRequest{Name: "Café", SKU: "CAF-1"})
	assert.NoError(t, err)
}

func TestProductGet_OtraTiendaEsNotFound(t *testing.T) {
	products := kvstore.NewProductRepository(kvstore.NewMemoryKV())
	uc := usecase.NewProductUseCase(products)

	created, err := uc.Create(ownerCtx("s1"), dto.CreateProductRequest{Name: "Café"})
	require.NoError(t, err)

	// El ID existe, pero pertenece a otra tienda: el registro no se revela.
	_, err = uc.GetByID(ownerCtx("s2"), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.Delete(ownerCtx("s2"), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductList_BusquedaInsensibleAAcentos(t *testing.T) {
	uc := usecase.NewProductUseCase(kvstore.NewProductRepository(kvstore.NewMemoryKV()))
	ctx := ownerCtx("s1")

	for _, name := range []string{"Açúcar refinado", "Café molido", "Harina"} {
		_, err := uc.Create(ctx, dto.CreateProductRequest{Name: name})
		require.NoError(t, err)
	}

	resp, err := uc.List(ctx, "acucar", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Açúcar refinado", resp.Items[0].Name)

	resp, err = uc.List(ctx, "CAFÉ", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Café molido", resp.Items[0].Name)

	resp, err = uc.List(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 3)
	assert.Equal(t, 3, resp.Page.Total)
}

func TestProductList_SinTiendaActiva(t *testing.T) {
	uc := usecase.NewProductUseCase(kvstore.NewProductRepository(kvstore.NewMemoryKV()))

	_, err := uc.List(adminCtx(), "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNoActiveStore)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerCRUD_ScopedALaTienda(t *testing.T) {
	uc := usecase.NewCustomerUseCase(kvstore.NewCustomerRepository(kvstore.NewMemoryKV()))
	ctx := ownerCtx("s1")

	created, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "José Pérez", Document: "123.456.789-00"})
	require.NoError(t, err)
	assert.Equal(t, "s1", created.StoreID)

	nuevoTel := "555-0101"
	updated, err := uc.Update(ctx, created.ID, dto.UpdateCustomerRequest{Phone: &nuevoTel})
	require.NoError(t, err)
	assert.Equal(t, "555-0101", updated.Phone)

	// Búsqueda sin acentos por nombre y por documento.
	resp, err := uc.List(ctx, "jose", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
	resp, err = uc.List(ctx, "456", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)

	// Desde otra tienda el cliente no existe.
	_, err = uc.GetByID(ownerCtx("s2"), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Equipo de la tienda
// ──────────────────────────────────────────────────────────────────────────────

func TestUserRegister_DuenoRegistraVendedor(t *testing.T) {
	users := kvstore.NewUserRepository(kvstore.NewMemoryKV())
	uc := usecase.NewUserUseCase(users)

	resp, err := uc.Register(ownerCtx("s1"), dto.CreateUserRequest{
		Email: "vendedor@s1.com", Password: "secreto", Name: "Vendedor", Role: "seller",
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", resp.StoreID)
	assert.Equal(t, "seller", resp.Role)
}

func TestUserRegister_VendedorNoGestionaUsuarios(t *testing.T) {
	uc := usecase.NewUserUseCase(kvstore.NewUserRepository(kvstore.NewMemoryKV()))

	_, err := uc.Register(sellerCtx("s1"), dto.CreateUserRequest{
		Email: "otro@s1.com", Password: "secreto", Name: "Otro", Role: "seller",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserRegister_RolesFueraDelEquipoRechazados(t *testing.T) {
	uc := usecase.NewUserUseCase(kvstore.NewUserRepository(kvstore.NewMemoryKV()))

	for _, role := range []string{"super_admin", "store_owner", "inventado"} {
		_, err := uc.Register(ownerCtx("s1"), dto.CreateUserRequest{
			Email: "x@s1.com", Password: "secreto", Name: "X", Role: role,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, role)
	}
}

func TestUserRemove_NuncaAlDueno(t *testing.T) {
	users := kvstore.NewUserRepository(kvstore.NewMemoryKV())
	uc := usecase.NewUserUseCase(users)
	ctx := ownerCtx("s1")

	require.NoError(t, users.Create(&entity.User{
		ID: "dueno", Email: "dueno@s1.com", Role: entity.RoleStoreOwner, StoreID: "s1",
	}))
	vendedor, err := uc.Register(ctx, dto.CreateUserRequest{
		Email: "v@s1.com", Password: "secreto", Name: "V", Role: "seller",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Remove(ctx, "dueno"), domain.ErrForbidden)
	require.NoError(t, uc.Remove(ctx, vendedor.ID))

	// Un usuario de otra tienda no es alcanzable por esta ruta.
	require.NoError(t, users.Create(&entity.User{
		ID: "ajeno", Email: "a@s2.com", Role: entity.RoleSeller, StoreID: "s2",
	}))
	assert.ErrorIs(t, uc.Remove(ctx, "ajeno"), domain.ErrNotFound)
}
