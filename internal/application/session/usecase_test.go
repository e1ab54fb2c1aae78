package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/nova-pos/internal/application/session"
	"github.com/jhoicas/nova-pos/internal/domain"
	"github.com/jhoicas/nova-pos/internal/domain/entity"
	"github.com/jhoicas/nova-pos/internal/infrastructure/kvstore"
	"github.com/jhoicas/nova-pos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixtures struct {
	kv       *kvstore.MemoryKV
	users    *kvstore.UserRepo
	stores   *kvstore.StoreRepo
	sessions *kvstore.SessionRepo
	mgr      *session.Manager
}

func newFixtures(t *testing.T) *fixtures {
	t.Helper()
	kv := kvstore.NewMemoryKV()
	f := &fixtures{
		kv:       kv,
		users:    kvstore.NewUserRepository(kv),
		stores:   kvstore.NewStoreRepository(kv),
		sessions: kvstore.NewSessionRepository(kv),
	}
	f.mgr = session.NewManager(f.users, f.stores, f.sessions, logger.Nop())
	return f
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func (f *fixtures) conAdmin(t *testing.T) {
	t.Helper()
	require.NoError(t, f.users.Create(&entity.User{
		ID: "admin", Email: "admin@nova.com", PasswordHash: hash(t, "admin123"),
		Name: "Super Admin", Role: entity.RoleSuperAdmin, CreatedAt: time.Now(),
	}))
}

func (f *fixtures) conTienda(t *testing.T, s entity.Store) {
	t.Helper()
	require.NoError(t, f.stores.Create(&s))
}

func (f *fixtures) conOwner(t *testing.T, storeID string) {
	t.Helper()
	require.NoError(t, f.users.Create(&entity.User{
		ID: "owner-" + storeID, Email: "owner@" + storeID + ".com", PasswordHash: hash(t, "secreto"),
		Name: "Dueño", Role: entity.RoleStoreOwner, StoreID: storeID, CreatedAt: time.Now(),
	}))
}

func ts(t time.Time) *time.Time { return &t }

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_SuperAdmin_SinTiendaActiva(t *testing.T) {
	f := newFixtures(t)
	f.conAdmin(t)

	require.NoError(t, f.mgr.Login("admin@nova.com", "admin123"))

	user, store := f.mgr.Current()
	require.NotNil(t, user)
	assert.Equal(t, entity.RoleSuperAdmin, user.Role)
	assert.Nil(t, store, "el super admin entra sin tenant seleccionado")

	// El slot de usuario quedó persistido.
	saved, err := f.sessions.GetUser()
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "admin", saved.ID)
}

func TestLogin_OwnerConTiendaAccesible(t *testing.T) {
	f := newFixtures(t)
	f.conTienda(t, entity.Store{ID: "s1", Name: "Tienda Uno", IsActive: true})
	f.conOwner(t, "s1")

	require.NoError(t, f.mgr.Login("owner@s1.com", "secreto"))

	user, store := f.mgr.Current()
	require.NotNil(t, user)
	require.NotNil(t, store)
	assert.Equal(t, "s1", store.ID)

	saved, err := f.sessions.GetActiveStore()
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "s1", saved.ID)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	f := newFixtures(t)
	f.conTienda(t, entity.Store{ID: "s1", IsActive: true})
	f.conOwner(t, "s1")

	assert.ErrorIs(t, f.mgr.Login("owner@s1.com", "equivocada"), domain.ErrInvalidCredentials)
	assert.ErrorIs(t, f.mgr.Login("nadie@nova.com", "secreto"), domain.ErrInvalidCredentials)
	assert.ErrorIs(t, f.mgr.Login("", ""), domain.ErrInvalidInput)

	user, _ := f.mgr.Current()
	assert.Nil(t, user, "una falla de login no deja sesión a medias")
}

func TestLogin_TiendaInexistente(t *testing.T) {
	f := newFixtures(t)
	f.conOwner(t, "fantasma")

	assert.ErrorIs(t, f.mgr.Login("owner@fantasma.com", "secreto"), domain.ErrStoreNotFound)
}

// Tienda inactiva sin vencimiento → bloqueada.
// El bloqueo tiene precedencia sobre el vencimiento en el mensaje de error.
func TestLogin_TiendaBloqueada(t *testing.T) {
	f := newFixtures(t)
	f.conTienda(t, entity.Store{ID: "s1", IsActive: false})
	f.conOwner(t, "s1")

	assert.ErrorIs(t, f.mgr.Login("owner@s1.com", "secreto"), domain.ErrStoreBlocked)
}

func TestLogin_TiendaBloqueadaYVencida_PrecedenciaBloqueo(t *testing.T) {
	f := newFixtures(t)
	f.conTienda(t, entity.Store{ID: "s1", IsActive: false, ExpiresAt: ts(time.Now().Add(-48 * time.Hour))})
	f.conOwner(t, "s1")

	assert.ErrorIs(t, f.mgr.Login("owner@s1.com", "secreto"), domain.ErrStoreBlocked)
}

// Tienda activa con vencimiento ayer → expirada.
func TestLogin_TiendaVencida(t *testing.T) {
	f := newFixtures(t)
	f.conTienda(t, entity.Store{ID: "s1", IsActive: true, ExpiresAt: ts(time.Now().Add(-24 * time.Hour))})
	f.conOwner(t, "s1")

	assert.ErrorIs(t, f.mgr.Login("owner@s1.com", "secreto"), domain.ErrStoreExpired)
}

// Datos malformados: rol que exige tienda pero sin StoreID ligado. La sesión
// degrada a "autenticado sin tienda" en lugar de fallar.
func TestLogin_OwnerSinStoreID_DegradaASinTienda(t *testing.T) {
	f := newFixtures(t)
	require.NoError(t, f.kv.Set(kvstore.KeyUsers, []byte(`[
		{"id":"u1","email":"raro@nova.com","passwordHash":`+jsonString(hash(t, "secreto"))+`,"name":"Raro","role":"store_owner","createdAt":"2026-01-01T00:00:00Z"}
	]`)))

	require.NoError(t, f.mgr.Login("raro@nova.com", "secreto"))
	user, store := f.mgr.Current()
	require.NotNil(t, user)
	assert.Nil(t, store)
}

func jsonString(s string) string { return `"` + s + `"` }

// ──────────────────────────────────────────────────────────────────────────────
// Restore
// ──────────────────────────────────────────────────────────────────────────────

func TestRestore_SesionPersistidaConTiendaAccesible(t *testing.T) {
	f := newFixtures(t)
	f.conTienda(t, entity.Store{ID: "s1", Name: "Tienda", IsActive: true})
	f.conOwner(t, "s1")
	require.NoError(t, f.mgr.Login("owner@s1.com", "secreto"))

	// Segundo manager sobre el mismo almacén simula el reinicio del proceso.
	mgr2 := session.NewManager(f.users, f.stores, f.sessions, logger.Nop())
	mgr2.Restore()

	assert.True(t, mgr2.Ready())
	user, store := mgr2.Current()
	require.NotNil(t, user)
	require.NotNil(t, store)
	assert.Equal(t, "s1", store.ID)
}

// Auto-reparación: la tienda persistida dejó de ser accesible. Se limpia solo
// el slot de tienda activa; el usuario sigue autenticado.
func TestRestore_TiendaYaInaccesible_LimpiaSoloElSlot(t *testing.T) {
	f := newFixtures(t)
	f.conOwner(t, "s1")
	require.NoError(t, f.sessions.SetUser(&entity.User{
		ID: "owner-s1", Email: "owner@s1.com", Role: entity.RoleStoreOwner, StoreID: "s1",
	}))
	require.NoError(t, f.sessions.SetActiveStore(&entity.Store{
		ID: "s1", IsActive: true, ExpiresAt: ts(time.Now().Add(-time.Hour)),
	}))

	mgr := session.NewManager(f.users, f.stores, f.sessions, logger.Nop())
	mgr.Restore()

	user, store := mgr.Current()
	require.NotNil(t, user, "no es un logout: el usuario permanece")
	assert.Nil(t, store)

	slot, err := f.sessions.GetActiveStore()
	require.NoError(t, err)
	assert.Nil(t, slot, "el slot quedó limpio")
}

func TestRestore_SinSesionPersistida(t *testing.T) {
	f := newFixtures(t)
	f.mgr.Restore()

	assert.True(t, f.mgr.Ready())
	user, store := f.mgr.Current()
	assert.Nil(t, user)
	assert.Nil(t, store)
}

// Slot corrupto degrada a sesión cerrada sin error visible.
func TestRestore_SlotCorrupto_DegradaASesionCerrada(t *testing.T) {
	f := newFixtures(t)
	require.NoError(t, f.kv.Set(kvstore.KeySessionUser, []byte("{corrupto")))

	f.mgr.Restore()

	assert.True(t, f.mgr.Ready())
	user, _ := f.mgr.Current()
	assert.Nil(t, user)
}

func TestRestore_SuperAdmin_ArrancaSinTenant(t *testing.T) {
	f := newFixtures(t)
	require.NoError(t, f.sessions.SetUser(&entity.User{ID: "admin", Role: entity.RoleSuperAdmin}))
	require.NoError(t, f.sessions.SetActiveStore(&entity.Store{ID: "s1", IsActive: true}))

	f.mgr.Restore()

	user, store := f.mgr.Current()
	require.NotNil(t, user)
	assert.Nil(t, store, "el tenant de inspección no se restaura para el admin")
}

// ──────────────────────────────────────────────────────────────────────────────
// Logout y SetActiveStore
// ──────────────────────────────────────────────────────────────────────────────

func TestLogout_LimpiaAmbosSlots(t *testing.T) {
	f := newFixtures(t)
	f.conTienda(t, entity.Store{ID: "s1", IsActive: true})
	f.conOwner(t, "s1")
	require.NoError(t, f.mgr.Login("owner@s1.com", "secreto"))

	f.mgr.Logout()

	user, store := f.mgr.Current()
	assert.Nil(t, user)
	assert.Nil(t, store)

	u, err := f.sessions.GetUser()
	require.NoError(t, err)
	assert.Nil(t, u)
	s, err := f.sessions.GetActiveStore()
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestSetActiveStore_CambioYLimpieza(t *testing.T) {
	f := newFixtures(t)
	f.conAdmin(t)
	require.NoError(t, f.mgr.Login("admin@nova.com", "admin123"))

	tienda := &entity.Store{ID: "s2", Name: "Inspección", IsActive: true}
	require.NoError(t, f.mgr.SetActiveStore(tienda))
	_, store := f.mgr.Current()
	require.NotNil(t, store)
	assert.Equal(t, "s2", store.ID)

	require.NoError(t, f.mgr.SetActiveStore(nil))
	_, store = f.mgr.Current()
	assert.Nil(t, store)

	slot, err := f.sessions.GetActiveStore()
	require.NoError(t, err)
	assert.Nil(t, slot)
}
