package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/nova-pos/internal/application/dto"
	"github.com/jhoicas/nova-pos/internal/domain"
	"github.com/jhoicas/nova-pos/internal/domain/access"
	"github.com/jhoicas/nova-pos/internal/domain/entity"
	"github.com/jhoicas/nova-pos/internal/domain/repository"
)

// CustomerUseCase aplica reglas de negocio de los clientes de una tienda.
type CustomerUseCase struct {
	customers repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso con el puerto de persistencia.
func NewCustomerUseCase(customers repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customers: customers}
}

// Create crea un cliente en la tienda activa.
func (uc *CustomerUseCase) Create(ctx access.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	storeID, err := access.EnforceStoreID("", ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		StoreID:   storeID,
		Name:      strings.TrimSpace(in.Name),
		Email:     in.Email,
		Phone:     in.Phone,
		Document:  in.Document,
		Address:   in.Address,
		City:      in.City,
		State:     in.State,
		ZipCode:   in.ZipCode,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customers.Create(customer); err != nil {
		return nil, err
	}
	resp := customerToResponse(customer)
	return &resp, nil
}

// Update actualiza un cliente de la tienda activa.
func (uc *CustomerUseCase) Update(ctx access.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := access.EnforceStoreID(customer.StoreID, ctx); err != nil {
		return nil, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		customer.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Document != nil {
		customer.Document = *in.Document
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	if in.City != nil {
		customer.City = *in.City
	}
	if in.State != nil {
		customer.State = *in.State
	}
	if in.ZipCode != nil {
		customer.ZipCode = *in.ZipCode
	}
	if in.Notes != nil {
		customer.Notes = *in.Notes
	}
	customer.UpdatedAt = time.Now()

	if err := uc.customers.Update(customer); err != nil {
		return nil, err
	}
	resp := customerToResponse(customer)
	return &resp, nil
}

// Delete elimina un cliente de la tienda activa. Las ventas que lo referencian
// conservan su snapshot de nombre.
func (uc *CustomerUseCase) Delete(ctx access.Context, id string) error {
	customer, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanDeleteRecord(customer.StoreID, ctx) {
		return domain.ErrCrossTenantAccess
	}
	return uc.customers.Delete(id)
}

// GetByID obtiene un cliente de la tienda activa.
func (uc *CustomerUseCase) GetByID(ctx access.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := customerToResponse(customer)
	return &resp, nil
}

// List lista los clientes de la tienda activa, con búsqueda insensible a
// acentos sobre nombre, documento y email.
func (uc *CustomerUseCase) List(ctx access.Context, query string, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	storeID, err := activeStoreID(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := uc.customers.ListByStore(storeID)
	if err != nil {
		return nil, err
	}

	q := normalizeQuery(query)
	filtered := make([]entity.Customer, 0, len(customers))
	for i := range customers {
		c := &customers[i]
		if matchesQuery(q, c.Name, c.Document, c.Email) {
			filtered = append(filtered, *c)
		}
	}

	page.DefaultPage()
	out := &dto.CustomerListResponse{
		Items: make([]dto.CustomerResponse, 0, page.Limit),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(filtered)},
	}
	for i := page.Offset; i < len(filtered) && i < page.Offset+page.Limit; i++ {
		out.Items = append(out.Items, customerToResponse(&filtered[i]))
	}
	return out, nil
}

func (uc *CustomerUseCase) get(ctx access.Context, id string) (*entity.Customer, error) {
	storeID, err := activeStoreID(ctx)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customers.GetByIDInStore(id, storeID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

func customerToResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        c.ID,
		StoreID:   c.StoreID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Document:  c.Document,
		Address:   c.Address,
		City:      c.City,
		State:     c.State,
		ZipCode:   c.ZipCode,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
