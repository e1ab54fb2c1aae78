package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/nova-pos/internal/application/dto"
	"github.com/jhoicas/nova-pos/internal/domain"
	"github.com/jhoicas/nova-pos/internal/domain/access"
	"github.com/jhoicas/nova-pos/internal/domain/entity"
	"github.com/jhoicas/nova-pos/internal/domain/repository"
	"github.com/jhoicas/nova-pos/pkg/logger"
)

// StoreUseCase administra el ciclo de vida de las tiendas (solo super admin).
// Cada tienda nace con exactamente un usuario store_owner; editar una tienda
// nunca toca a su dueño.
type StoreUseCase struct {
	stores repository.StoreRepository
	users  repository.UserRepository
	log    *logger.Logger
}

// NewStoreUseCase construye el caso de uso con sus puertos de persistencia.
func NewStoreUseCase(stores repository.StoreRepository, users repository.UserRepository, log *logger.Logger) *StoreUseCase {
	return &StoreUseCase{stores: stores, users: users, log: log}
}

// Create aprovisiona una tienda junto con su dueño: ambos se crean o ninguno.
// Devuelve domain.ErrDuplicate si el email del dueño ya está registrado.
func (uc *StoreUseCase) Create(ctx access.Context, in dto.CreateStoreRequest) (*dto.StoreAdminResponse, error) {
	if !access.IsAdmin(ctx.User) {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.OwnerEmail) == "" || in.OwnerPassword == "" {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.users.GetByEmail(in.OwnerEmail); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.OwnerPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash de contraseña del dueño: %w", err)
	}

	now := time.Now()
	store := &entity.Store{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		IsActive:  true,
		ExpiresAt: in.ExpiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	owner := &entity.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(in.OwnerEmail)),
		PasswordHash: string(hash),
		Name:         in.OwnerName,
		Role:         entity.RoleStoreOwner,
		StoreID:      store.ID,
		CreatedAt:    now,
	}
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	if err := uc.stores.Create(store); err != nil {
		return nil, err
	}
	if err := uc.users.Create(owner); err != nil {
		// Sin dueño la tienda es inoperable: revertir el aprovisionamiento.
		if delErr := uc.stores.Delete(store.ID); delErr != nil {
			uc.log.Error().Err(delErr).Str("store_id", store.ID).
				Msg("no se pudo revertir la tienda tras fallar la creación del dueño")
		}
		return nil, err
	}

	uc.log.Info().Str("store_id", store.ID).Str("owner_email", owner.Email).Msg("tienda aprovisionada")
	resp := storeToAdminResponse(store, owner, now)
	return &resp, nil
}

// Update edita los datos de una tienda. No existe ruta para cambiar el dueño.
func (uc *StoreUseCase) Update(ctx access.Context, id string, in dto.UpdateStoreRequest) (*dto.StoreAdminResponse, error) {
	if !access.IsAdmin(ctx.User) {
		return nil, domain.ErrForbidden
	}
	store, err := uc.stores.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrStoreNotFound
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		store.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		store.Email = *in.Email
	}
	if in.Phone != nil {
		store.Phone = *in.Phone
	}
	if in.Address != nil {
		store.Address = *in.Address
	}
	if in.IsActive != nil {
		store.IsActive = *in.IsActive
	}
	if in.Unlimited != nil && *in.Unlimited {
		store.ExpiresAt = nil
	} else if in.ExpiresAt != nil {
		store.ExpiresAt = in.ExpiresAt
	}
	store.UpdatedAt = time.Now()

	if err := uc.stores.Update(store); err != nil {
		return nil, err
	}
	owner, err := uc.ownerOf(store.ID)
	if err != nil {
		return nil, err
	}
	resp := storeToAdminResponse(store, owner, time.Now())
	return &resp, nil
}

// Delete elimina la tienda y, en cascada, todos sus usuarios. Los productos,
// clientes y ventas de la tienda quedan huérfanos en el almacén: se conservan
// tal cual como historial, igual que el resto de colecciones sin dueño.
func (uc *StoreUseCase) Delete(ctx access.Context, id string) error {
	if !access.IsAdmin(ctx.User) {
		return domain.ErrForbidden
	}
	store, err := uc.stores.GetByID(id)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrStoreNotFound
	}
	if err := uc.stores.Delete(id); err != nil {
		return err
	}
	removed, err := uc.users.DeleteByStore(id)
	if err != nil {
		return err
	}
	uc.log.Info().Str("store_id", id).Int("users_removed", removed).Msg("tienda eliminada")
	return nil
}

// GetByID obtiene una tienda con su dueño y estado de vencimiento.
func (uc *StoreUseCase) GetByID(ctx access.Context, id string) (*dto.StoreAdminResponse, error) {
	if !access.IsAdmin(ctx.User) {
		return nil, domain.ErrForbidden
	}
	store, err := uc.stores.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrStoreNotFound
	}
	owner, err := uc.ownerOf(id)
	if err != nil {
		return nil, err
	}
	resp := storeToAdminResponse(store, owner, time.Now())
	return &resp, nil
}

// List lista todas las tiendas con dueño, estado de vencimiento y contadores
// agregados para el panel de administración.
func (uc *StoreUseCase) List(ctx access.Context) (*dto.StoreListResponse, error) {
	if !access.IsAdmin(ctx.User) {
		return nil, domain.ErrForbidden
	}
	stores, err := uc.stores.List()
	if err != nil {
		return nil, err
	}
	now := time.Now()

	out := &dto.StoreListResponse{Items: make([]dto.StoreAdminResponse, 0, len(stores))}
	for i := range stores {
		s := &stores[i]
		owner, err := uc.ownerOf(s.ID)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, storeToAdminResponse(s, owner, now))

		out.Summary.Total++
		if !s.IsActive {
			out.Summary.Blocked++
			continue
		}
		switch s.ExpirationStatusAt(now) {
		case entity.ExpirationExpired:
			out.Summary.Expired++
		case entity.ExpirationExpiringSoon:
			out.Summary.ExpiringSoon++
			out.Summary.Active++
		default:
			out.Summary.Active++
		}
	}
	return out, nil
}

// ownerOf busca el usuario store_owner ligado a la tienda, nil si no existe.
func (uc *StoreUseCase) ownerOf(storeID string) (*entity.User, error) {
	users, err := uc.users.ListByStore(storeID)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Role == entity.RoleStoreOwner {
			return &users[i], nil
		}
	}
	return nil, nil
}

func storeToAdminResponse(s *entity.Store, owner *entity.User, now time.Time) dto.StoreAdminResponse {
	resp := dto.StoreAdminResponse{StoreResponse: storeToResponse(s, now)}
	if owner != nil {
		o := userToResponse(owner)
		resp.Owner = &o
	}
	return resp
}

func storeToResponse(s *entity.Store, now time.Time) dto.StoreResponse {
	resp := dto.StoreResponse{
		ID:               s.ID,
		Name:             s.Name,
		Email:            s.Email,
		Phone:            s.Phone,
		Address:          s.Address,
		IsActive:         s.IsActive,
		ExpiresAt:        s.ExpiresAt,
		ExpirationStatus: s.ExpirationStatusAt(now),
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
	if days, ok := s.DaysUntilExpirationAt(now); ok {
		resp.DaysUntilExpiration = &days
	}
	return resp
}
