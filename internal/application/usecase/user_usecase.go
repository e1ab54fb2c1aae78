package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/nova-pos/internal/application/dto"
	"github.com/jhoicas/nova-pos/internal/domain"
	"github.com/jhoicas/nova-pos/internal/domain/access"
	"github.com/jhoicas/nova-pos/internal/domain/entity"
	"github.com/jhoicas/nova-pos/internal/domain/repository"
)

// UserUseCase administra el equipo de una tienda: el dueño registra y elimina
// usuarios manager/seller de su propia tienda. Los sellers no gestionan
// usuarios; el dueño se crea solo al aprovisionar la tienda.
type UserUseCase struct {
	users repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(users repository.UserRepository) *UserUseCase {
	return &UserUseCase{users: users}
}

// Register crea un usuario del equipo en la tienda activa. Devuelve
// domain.ErrDuplicate si el email ya está registrado.
func (uc *UserUseCase) Register(ctx access.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !access.HasRole(ctx.User, entity.RoleSuperAdmin, entity.RoleStoreOwner) {
		return nil, domain.ErrForbidden
	}
	role := entity.Role(in.Role)
	if role != entity.RoleManager && role != entity.RoleSeller {
		return nil, domain.ErrInvalidInput
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	storeID, err := access.EnforceStoreID("", ctx)
	if err != nil {
		return nil, err
	}
	if existing, err := uc.users.GetByEmail(email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Role:         role,
		StoreID:      storeID,
		CreatedAt:    time.Now(),
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}
	resp := userToResponse(user)
	return &resp, nil
}

// ListTeam lista los usuarios de la tienda activa.
func (uc *UserUseCase) ListTeam(ctx access.Context) (*dto.UserListResponse, error) {
	if !access.HasRole(ctx.User, entity.RoleSuperAdmin, entity.RoleStoreOwner, entity.RoleManager) {
		return nil, domain.ErrForbidden
	}
	storeID, err := activeStoreID(ctx)
	if err != nil {
		return nil, err
	}
	users, err := uc.users.ListByStore(storeID)
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{Items: make([]dto.UserResponse, 0, len(users))}
	for i := range users {
		out.Items = append(out.Items, userToResponse(&users[i]))
	}
	return out, nil
}

// Remove elimina un usuario del equipo de la tienda activa. El dueño no puede
// eliminarse a sí mismo ni a otro dueño por esta ruta.
func (uc *UserUseCase) Remove(ctx access.Context, id string) error {
	if !access.HasRole(ctx.User, entity.RoleSuperAdmin, entity.RoleStoreOwner) {
		return domain.ErrForbidden
	}
	storeID, err := activeStoreID(ctx)
	if err != nil {
		return err
	}
	user, err := uc.users.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil || user.StoreID != storeID {
		return domain.ErrNotFound
	}
	if user.Role == entity.RoleStoreOwner {
		return domain.ErrForbidden
	}
	return uc.users.Delete(id)
}

func userToResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		StoreID:   u.StoreID,
		CreatedAt: u.CreatedAt,
	}
}
