package kvstore_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nova-pos/internal/domain"
	"github.com/jhoicas/nova-pos/internal/domain/entity"
	"github.com/jhoicas/nova-pos/internal/infrastructure/kvstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func productoDe(storeID, id, nombre string) *entity.Product {
	now := time.Now()
	return &entity.Product{
		ID:        id,
		StoreID:   storeID,
		Name:      nombre,
		SKU:       "SKU-" + id,
		Price:     decimal.NewFromInt(100),
		Cost:      decimal.NewFromInt(60),
		Stock:     10,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas scoped
// ──────────────────────────────────────────────────────────────────────────────

// La lectura scoped filtra por tienda siempre,
// incluso cuando quien consulta es super admin (el repo no conoce al usuario).
func TestProductRepo_ListByStore_FiltraPorTienda(t *testing.T) {
	repo := kvstore.NewProductRepository(kvstore.NewMemoryKV())
	require.NoError(t, repo.Create(productoDe("s1", "p1", "Café")))
	require.NoError(t, repo.Create(productoDe("s1", "p2", "Azúcar")))
	require.NoError(t, repo.Create(productoDe("s2", "p3", "Sal")))

	s1, err := repo.ListByStore("s1")
	require.NoError(t, err)
	assert.Len(t, s1, 2, "solo los productos de s1")
	for _, p := range s1 {
		assert.Equal(t, "s1", p.StoreID)
	}

	vacia, err := repo.ListByStore("s9")
	require.NoError(t, err)
	assert.Empty(t, vacia, "tienda sin registros devuelve vacío, no error")
}

// Idempotencia: dos lecturas scoped sin escrituras intermedias son iguales.
func TestProductRepo_ListByStore_Idempotente(t *testing.T) {
	repo := kvstore.NewProductRepository(kvstore.NewMemoryKV())
	require.NoError(t, repo.Create(productoDe("s1", "p1", "Café")))

	primera, err := repo.ListByStore("s1")
	require.NoError(t, err)
	segunda, err := repo.ListByStore("s1")
	require.NoError(t, err)
	assert.Equal(t, primera, segunda)
}

// La lectura por ID valida la tienda: mismatch devuelve nil, no error.
func TestProductRepo_GetByIDInStore_MismatchDevuelveNil(t *testing.T) {
	repo := kvstore.NewProductRepository(kvstore.NewMemoryKV())
	require.NoError(t, repo.Create(productoDe("s1", "p1", "Café")))

	p, err := repo.GetByIDInStore("p1", "s1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Café", p.Name)

	otro, err := repo.GetByIDInStore("p1", "s2")
	require.NoError(t, err)
	assert.Nil(t, otro, "producto de s1 no es visible desde s2")
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRepo_CreateDuplicado(t *testing.T) {
	repo := kvstore.NewProductRepository(kvstore.NewMemoryKV())
	require.NoError(t, repo.Create(productoDe("s1", "p1", "Café")))
	assert.ErrorIs(t, repo.Create(productoDe("s1", "p1", "Otro")), domain.ErrDuplicate)
}

func TestProductRepo_UpdateInexistente(t *testing.T) {
	repo := kvstore.NewProductRepository(kvstore.NewMemoryKV())
	assert.ErrorIs(t, repo.Update(productoDe("s1", "ghost", "Nada")), domain.ErrNotFound)
}

func TestUserRepo_DeleteByStore_Cascada(t *testing.T) {
	repo := kvstore.NewUserRepository(kvstore.NewMemoryKV())
	require.NoError(t, repo.Create(&entity.User{ID: "u1", Email: "a@s1.com", Role: entity.RoleStoreOwner, StoreID: "s1"}))
	require.NoError(t, repo.Create(&entity.User{ID: "u2", Email: "b@s1.com", Role: entity.RoleSeller, StoreID: "s1"}))
	require.NoError(t, repo.Create(&entity.User{ID: "u3", Email: "c@s2.com", Role: entity.RoleStoreOwner, StoreID: "s2"}))

	n, err := repo.DeleteByStore("s1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	restantes, err := repo.List()
	require.NoError(t, err)
	require.Len(t, restantes, 1)
	assert.Equal(t, "u3", restantes[0].ID)
}

func TestUserRepo_GetByEmail_IgnoraMayusculas(t *testing.T) {
	repo := kvstore.NewUserRepository(kvstore.NewMemoryKV())
	require.NoError(t, repo.Create(&entity.User{ID: "u1", Email: "Owner@S1.com", Role: entity.RoleStoreOwner, StoreID: "s1"}))

	u, err := repo.GetByEmail("owner@s1.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Slots de sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionRepo_SlotsAusentesDevuelvenNil(t *testing.T) {
	repo := kvstore.NewSessionRepository(kvstore.NewMemoryKV())

	u, err := repo.GetUser()
	require.NoError(t, err)
	assert.Nil(t, u)

	s, err := repo.GetActiveStore()
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestSessionRepo_GuardaYLimpiaSlots(t *testing.T) {
	repo := kvstore.NewSessionRepository(kvstore.NewMemoryKV())
	require.NoError(t, repo.SetUser(&entity.User{ID: "u1", Email: "a@b.com", Role: entity.RoleSuperAdmin}))
	require.NoError(t, repo.SetActiveStore(&entity.Store{ID: "s1", Name: "Tienda"}))

	u, err := repo.GetUser()
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)

	require.NoError(t, repo.ClearActiveStore())
	s, err := repo.GetActiveStore()
	require.NoError(t, err)
	assert.Nil(t, s, "el slot de tienda activa se limpia sin tocar el de usuario")

	u, err = repo.GetUser()
	require.NoError(t, err)
	assert.NotNil(t, u)
}

// ──────────────────────────────────────────────────────────────────────────────
// Datos corruptos y FileKV
// ──────────────────────────────────────────────────────────────────────────────

// JSON malformado en una colección se reporta alto y claro, nunca se degrada
// en silencio a colección vacía.
func TestCollectionCorrupta_ErrCorruptData(t *testing.T) {
	kv := kvstore.NewMemoryKV()
	require.NoError(t, kv.Set(kvstore.KeyProducts, []byte("{esto no es un array")))

	_, err := kvstore.NewProductRepository(kv).List()
	assert.ErrorIs(t, err, domain.ErrCorruptData)
}

func TestFileKV_PersisteEntreAperturas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nova", "storage.json")

	kv, err := kvstore.OpenFileKV(path)
	require.NoError(t, err)
	require.NoError(t, kvstore.NewProductRepository(kv).Create(productoDe("s1", "p1", "Café")))

	// Reabrir simula el reinicio del proceso.
	kv2, err := kvstore.OpenFileKV(path)
	require.NoError(t, err)
	productos, err := kvstore.NewProductRepository(kv2).ListByStore("s1")
	require.NoError(t, err)
	require.Len(t, productos, 1)
	assert.Equal(t, "Café", productos[0].Name)
}

func TestFileKV_ArchivoIlegibleEsFallaAmbiental(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("no-json"), 0o644))

	_, err := kvstore.OpenFileKV(path)
	assert.Error(t, err)
}
