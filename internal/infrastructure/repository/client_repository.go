package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
	"gorm.io/gorm"
)

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) domainRepo.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	return GetDB(ctx, r.db).Create(client).Error
}

func (r *clientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	var client entity.Client
	err := GetDB(ctx, r.db).First(&client, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &client, err
}

func (r *clientRepository) Update(ctx context.Context, client *entity.Client) error {
	return GetDB(ctx, r.db).Save(client).Error
}

func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&entity.Client{}, "id = ?", id).Error
}

func (r *clientRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Client, int64, error) {
	var clients []entity.Client
	var total int64

	query := GetDB(ctx, r.db).Model(&entity.Client{}).Scopes(Search(search, "name", "phone", "email"))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).Order("name ASC").Find(&clients).Error
	return clients, total, err
}

func (r *clientRepository) CountOrders(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&entity.Order{}).Where("client_id = ?", id).Count(&count).Error
	return count, err
}

type sellerRepository struct {
	db *gorm.DB
}

// NewSellerRepository creates a new seller repository
func NewSellerRepository(db *gorm.DB) domainRepo.SellerRepository {
	return &sellerRepository{db: db}
}

func (r *sellerRepository) Create(ctx context.Context, seller *entity.Seller) error {
	return GetDB(ctx, r.db).Create(seller).Error
}

func (r *sellerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Seller, error) {
	var seller entity.Seller
	err := GetDB(ctx, r.db).First(&seller, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &seller, err
}

func (r *sellerRepository) Update(ctx context.Context, seller *entity.Seller) error {
	return GetDB(ctx, r.db).Save(seller).Error
}

func (r *sellerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&entity.Seller{}, "id = ?", id).Error
}

func (r *sellerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Seller, int64, error) {
	var sellers []entity.Seller
	var total int64

	query := GetDB(ctx, r.db).Model(&entity.Seller{}).Scopes(Search(search, "name", "email"))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).Order("name ASC").Find(&sellers).Error
	return sellers, total, err
}

func (r *sellerRepository) CountReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var orders, commissions int64
	db := GetDB(ctx, r.db)
	if err := db.Model(&entity.Order{}).Where("seller_id = ?", id).Count(&orders).Error; err != nil {
		return 0, err
	}
	if err := db.Model(&entity.CommissionPayment{}).Where("seller_id = ?", id).Count(&commissions).Error; err != nil {
		return 0, err
	}
	return orders + commissions, nil
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return GetDB(ctx, r.db).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := GetDB(ctx, r.db).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var product entity.Product
	err := GetDB(ctx, r.db).First(&product, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return GetDB(ctx, r.db).Save(product).Error
}

// Delete soft-deletes the product; order items keep their copy of the price.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := GetDB(ctx, r.db).Model(&entity.Product{}).Scopes(Search(search, "name", "code"))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).Order("name ASC").Find(&products).Error
	return products, total, err
}
