package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/finance"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
	"github.com/sangkips/salesdesk-api/pkg/utils"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Code        string
	Name        string
	Description *string
	Price       finance.Number
	VATPct      finance.Number
	IsActive    *bool
}

func validatePriceAndVAT(errs *fieldErrors, price, vat finance.Number) {
	errs.money("price", price)
	errs.percent("vat_pct", float64(vat))
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	var errs fieldErrors
	errs.required("name", input.Name)
	validatePriceAndVAT(&errs, input.Price, input.VATPct)
	if err := errs.err(); err != nil {
		return nil, err
	}

	// Auto-generate code if not provided
	code := strings.TrimSpace(input.Code)
	if code == "" {
		code = utils.GenerateProductCode()
	}

	// Check if code already exists
	existingProduct, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existingProduct != nil {
		return nil, apperror.NewConflictError("Product code already exists")
	}

	product := &entity.Product{
		Code:        code,
		Name:        strings.TrimSpace(input.Name),
		Description: trimmed(input.Description),
		Price:       finance.CentsOf(input.Price),
		VATPct:      float64(input.VATPct),
		IsActive:    true,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, translateWriteError(err, "Product code already exists")
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products matching search
func (s *ProductService) ListProducts(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ID          uuid.UUID
	Code        *string
	Name        *string
	Description *string
	Price       *finance.Number
	VATPct      *finance.Number
	IsActive    *bool
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	price := finance.Number(0)
	if input.Price != nil {
		price = *input.Price
	}
	vat := finance.Number(product.VATPct)
	if input.VATPct != nil {
		vat = *input.VATPct
	}

	var errs fieldErrors
	if input.Name != nil {
		errs.required("name", *input.Name)
	}
	if input.Code != nil {
		errs.required("code", *input.Code)
	}
	validatePriceAndVAT(&errs, price, vat)
	if err := errs.err(); err != nil {
		return nil, err
	}

	if input.Code != nil && strings.TrimSpace(*input.Code) != product.Code {
		code := strings.TrimSpace(*input.Code)
		existing, err := s.productRepo.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Product code already exists")
		}
		product.Code = code
	}
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = trimmed(input.Description)
	}
	if input.Price != nil {
		product.Price = finance.CentsOf(price)
	}
	product.VATPct = float64(vat)
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, translateWriteError(err, "Product code already exists")
	}

	return product, nil
}

// DeleteProduct soft deletes a product. Order items keep their own copy of
// the price and description.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}
