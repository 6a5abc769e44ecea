package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
)

const (
	clientInUseMessage = "Client has orders and cannot be deleted"
	sellerInUseMessage = "Seller has orders or commission payments and cannot be deleted"
)

// ClientService handles client-related operations
type ClientService struct {
	txManager  repository.TransactionManager
	clientRepo repository.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(txManager repository.TransactionManager, clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{txManager: txManager, clientRepo: clientRepo}
}

// CreateClientInput represents the create client input
type CreateClientInput struct {
	Name    string
	Phone   string
	Email   *string
	Address *string
	TaxID   *string
	Notes   *string
}

// CreateClient creates a new client
func (s *ClientService) CreateClient(ctx context.Context, input *CreateClientInput) (*entity.Client, error) {
	var errs fieldErrors
	errs.required("name", input.Name)
	errs.required("phone", input.Phone)
	if err := errs.err(); err != nil {
		return nil, err
	}

	client := &entity.Client{
		Name:    strings.TrimSpace(input.Name),
		Phone:   strings.TrimSpace(input.Phone),
		Email:   trimmed(input.Email),
		Address: trimmed(input.Address),
		TaxID:   trimmed(input.TaxID),
		Notes:   trimmed(input.Notes),
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// ListClients lists clients matching search
func (s *ClientService) ListClients(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Client], error) {
	clients, total, err := s.clientRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(clients, pag), nil
}

// UpdateClientInput represents the update client input
type UpdateClientInput struct {
	ID      uuid.UUID
	Name    *string
	Phone   *string
	Email   *string
	Address *string
	TaxID   *string
	Notes   *string
}

// UpdateClient updates a client
func (s *ClientService) UpdateClient(ctx context.Context, input *UpdateClientInput) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	var errs fieldErrors
	if input.Name != nil {
		errs.required("name", *input.Name)
		client.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		errs.required("phone", *input.Phone)
		client.Phone = strings.TrimSpace(*input.Phone)
	}
	if err := errs.err(); err != nil {
		return nil, err
	}
	if input.Email != nil {
		client.Email = trimmed(input.Email)
	}
	if input.Address != nil {
		client.Address = trimmed(input.Address)
	}
	if input.TaxID != nil {
		client.TaxID = trimmed(input.TaxID)
	}
	if input.Notes != nil {
		client.Notes = trimmed(input.Notes)
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// DeleteClient deletes a client that has no orders
func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		client, err := s.clientRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if client == nil {
			return apperror.NewNotFoundError("Client")
		}

		orders, err := s.clientRepo.CountOrders(ctx, id)
		if err != nil {
			return err
		}
		if orders > 0 {
			return apperror.NewConflictError(clientInUseMessage)
		}
		return s.clientRepo.Delete(ctx, id)
	})
	return translateWriteError(err, clientInUseMessage)
}

// SellerService handles seller-related operations
type SellerService struct {
	txManager  repository.TransactionManager
	sellerRepo repository.SellerRepository
}

// NewSellerService creates a new seller service
func NewSellerService(txManager repository.TransactionManager, sellerRepo repository.SellerRepository) *SellerService {
	return &SellerService{txManager: txManager, sellerRepo: sellerRepo}
}

// CreateSellerInput represents the create seller input
type CreateSellerInput struct {
	Name          string
	Email         *string
	Phone         *string
	CommissionPct float64
	IsActive      *bool
}

// CreateSeller creates a new seller
func (s *SellerService) CreateSeller(ctx context.Context, input *CreateSellerInput) (*entity.Seller, error) {
	var errs fieldErrors
	errs.required("name", input.Name)
	errs.percent("commission_pct", input.CommissionPct)
	if err := errs.err(); err != nil {
		return nil, err
	}

	seller := &entity.Seller{
		Name:          strings.TrimSpace(input.Name),
		Email:         trimmed(input.Email),
		Phone:         trimmed(input.Phone),
		CommissionPct: input.CommissionPct,
		IsActive:      true,
	}
	if input.IsActive != nil {
		seller.IsActive = *input.IsActive
	}

	if err := s.sellerRepo.Create(ctx, seller); err != nil {
		return nil, err
	}

	return seller, nil
}

// GetSeller retrieves a seller by ID
func (s *SellerService) GetSeller(ctx context.Context, id uuid.UUID) (*entity.Seller, error) {
	seller, err := s.sellerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, apperror.NewNotFoundError("Seller")
	}
	return seller, nil
}

// ListSellers lists sellers matching search
func (s *SellerService) ListSellers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Seller], error) {
	sellers, total, err := s.sellerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(sellers, pag), nil
}

// UpdateSellerInput represents the update seller input
type UpdateSellerInput struct {
	ID            uuid.UUID
	Name          *string
	Email         *string
	Phone         *string
	CommissionPct *float64
	IsActive      *bool
}

// UpdateSeller updates a seller
func (s *SellerService) UpdateSeller(ctx context.Context, input *UpdateSellerInput) (*entity.Seller, error) {
	seller, err := s.sellerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, apperror.NewNotFoundError("Seller")
	}

	var errs fieldErrors
	if input.Name != nil {
		errs.required("name", *input.Name)
		seller.Name = strings.TrimSpace(*input.Name)
	}
	if input.CommissionPct != nil {
		errs.percent("commission_pct", *input.CommissionPct)
		seller.CommissionPct = *input.CommissionPct
	}
	if err := errs.err(); err != nil {
		return nil, err
	}
	if input.Email != nil {
		seller.Email = trimmed(input.Email)
	}
	if input.Phone != nil {
		seller.Phone = trimmed(input.Phone)
	}
	if input.IsActive != nil {
		seller.IsActive = *input.IsActive
	}

	if err := s.sellerRepo.Update(ctx, seller); err != nil {
		return nil, err
	}

	return seller, nil
}

// DeleteSeller deletes a seller that no order or commission payment references
func (s *SellerService) DeleteSeller(ctx context.Context, id uuid.UUID) error {
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		seller, err := s.sellerRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if seller == nil {
			return apperror.NewNotFoundError("Seller")
		}

		refs, err := s.sellerRepo.CountReferences(ctx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return apperror.NewConflictError(sellerInUseMessage)
		}
		return s.sellerRepo.Delete(ctx, id)
	})
	return translateWriteError(err, sellerInUseMessage)
}
