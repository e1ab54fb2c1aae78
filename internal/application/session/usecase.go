// Package session implementa la máquina de estados de autenticación y tenant
// activo: LoggedOut → LoggedInNoStore (super admin) | LoggedInWithStore
// (roles ligados a tienda) → LoggedOut.
//
// El estado vive en un Manager explícito que se inyecta donde haga falta; no
// hay singleton de proceso. Los dos slots (usuario, tienda activa) se
// persisten en el key-value store y se restauran al arrancar.
package session

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/nova-pos/internal/domain"
	"github.com/jhoicas/nova-pos/internal/domain/access"
	"github.com/jhoicas/nova-pos/internal/domain/entity"
	"github.com/jhoicas/nova-pos/internal/domain/repository"
	"github.com/jhoicas/nova-pos/pkg/logger"
)

// Manager mantiene la sesión actual: usuario autenticado y tienda activa.
type Manager struct {
	users    repository.UserRepository
	stores   repository.StoreRepository
	sessions repository.SessionRepository
	log      *logger.Logger

	mu          sync.RWMutex
	user        *entity.User
	activeStore *entity.Store
	ready       bool
}

// NewManager construye el manejador de sesión.
func NewManager(users repository.UserRepository, stores repository.StoreRepository, sessions repository.SessionRepository, log *logger.Logger) *Manager {
	return &Manager{users: users, stores: stores, sessions: sessions, log: log}
}

// Login autentica por email y contraseña. Todas las fallas son valores:
// ErrInvalidCredentials, ErrStoreNotFound, ErrStoreBlocked (tienda inactiva,
// tiene precedencia) o ErrStoreExpired. El éxito persiste los slots de sesión.
func (m *Manager) Login(email, password string) error {
	if email == "" || password == "" {
		return domain.ErrInvalidInput
	}

	user, err := m.users.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if user == nil {
		return domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.ErrInvalidCredentials
	}

	// Roles sin tienda (super admin) o datos malformados sin StoreID entran
	// sin tenant resuelto.
	if !user.Role.RequiresStore() || user.StoreID == "" {
		if user.Role.RequiresStore() {
			m.log.Warn().Str("user_id", user.ID).Str("role", string(user.Role)).
				Msg("usuario sin tienda ligada; sesión sin tenant")
		}
		return m.establish(user, nil)
	}

	store, err := m.stores.GetByID(user.StoreID)
	if err != nil {
		return fmt.Errorf("login: resolver tienda: %w", err)
	}
	if store == nil {
		return domain.ErrStoreNotFound
	}
	if !store.IsAccessibleAt(time.Now()) {
		if !store.IsActive {
			return domain.ErrStoreBlocked
		}
		return domain.ErrStoreExpired
	}
	return m.establish(user, store)
}

// establish fija y persiste el estado de sesión.
func (m *Manager) establish(user *entity.User, store *entity.Store) error {
	if err := m.sessions.SetUser(user); err != nil {
		return fmt.Errorf("persistir sesión: %w", err)
	}
	if store != nil {
		if err := m.sessions.SetActiveStore(store); err != nil {
			return fmt.Errorf("persistir tienda activa: %w", err)
		}
	}

	m.mu.Lock()
	m.user = user
	m.activeStore = store
	m.ready = true
	m.mu.Unlock()

	m.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).
		Msg("sesión iniciada")
	return nil
}

// Restore recupera la sesión persistida. Se invoca una vez al arrancar el
// proceso. Nunca falla de forma visible: estado inconsistente degrada a
// sesión cerrada o a "autenticado sin tienda"; una tienda persistida que dejó
// de ser accesible limpia solo su slot (auto-reparación, no logout).
func (m *Manager) Restore() {
	defer func() {
		m.mu.Lock()
		m.ready = true
		m.mu.Unlock()
	}()

	user, err := m.sessions.GetUser()
	if err != nil {
		m.log.Warn().Err(err).Msg("slot de usuario ilegible; sesión cerrada")
		_ = m.sessions.ClearUser()
		_ = m.sessions.ClearActiveStore()
		return
	}
	if user == nil {
		return
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	if user.IsSuperAdmin() {
		// El super admin siempre arranca sin tenant seleccionado.
		return
	}

	store, err := m.sessions.GetActiveStore()
	if err != nil {
		m.log.Warn().Err(err).Msg("slot de tienda activa ilegible; se limpia")
		_ = m.sessions.ClearActiveStore()
		return
	}
	if store == nil {
		return
	}
	if !store.IsAccessibleAt(time.Now()) {
		m.log.Warn().Str("store_id", store.ID).
			Msg("tienda persistida ya no es accesible; se limpia el slot")
		_ = m.sessions.ClearActiveStore()
		return
	}

	m.mu.Lock()
	m.activeStore = store
	m.mu.Unlock()
}

// Logout limpia ambos slots incondicionalmente. Siempre tiene éxito.
func (m *Manager) Logout() {
	_ = m.sessions.ClearUser()
	_ = m.sessions.ClearActiveStore()

	m.mu.Lock()
	m.user = nil
	m.activeStore = nil
	m.mu.Unlock()

	m.log.Info().Msg("sesión cerrada")
}

// SetActiveStore cambia el tenant activo de forma explícita (usado por el
// super admin para inspeccionar una tienda). store nil limpia el slot.
func (m *Manager) SetActiveStore(store *entity.Store) error {
	if store != nil {
		if err := m.sessions.SetActiveStore(store); err != nil {
			return fmt.Errorf("persistir tienda activa: %w", err)
		}
	} else if err := m.sessions.ClearActiveStore(); err != nil {
		return fmt.Errorf("limpiar tienda activa: %w", err)
	}

	m.mu.Lock()
	m.activeStore = store
	m.mu.Unlock()
	return nil
}

// Current devuelve el usuario autenticado y la tienda activa (nil si no hay).
func (m *Manager) Current() (*entity.User, *entity.Store) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user, m.activeStore
}

// Context arma el contexto explícito que esperan las funciones de acceso.
func (m *Manager) Context() access.Context {
	user, store := m.Current()
	return access.Context{User: user, ActiveStore: store}
}

// Ready indica si la restauración inicial ya corrió.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}
