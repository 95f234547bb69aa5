package service

import (
	"context"

	"go-products-ms/internal/apperr"
	"go-products-ms/internal/classifier"
	"go-products-ms/internal/model"
	"go-products-ms/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CreateProductInput struct {
	Name         string      `json:"name" validate:"required"`
	EanCode      *string     `json:"eanCode"`
	Description  *string     `json:"description"`
	CategoryID   uuid.UUID   `json:"categoryId" validate:"uuid_required"`
	EnterpriseID uuid.UUID   `json:"enterpriseId" validate:"uuid_required"`
	Unit         *string     `json:"unit"`
	Stock        *float64    `json:"stock" validate:"omitempty,gte=0"`
	AllergenIDs  []uuid.UUID `json:"allergenIds"`
}

type UpdateProductInput struct {
	Name        *string     `json:"name"`
	EanCode     *string     `json:"eanCode"`
	Description *string     `json:"description"`
	CategoryID  *uuid.UUID  `json:"categoryId"`
	Unit        *string     `json:"unit"`
	Stock       *float64    `json:"stock" validate:"omitempty,gte=0"`
	AllergenIDs []uuid.UUID `json:"allergenIds"`
}

type FindAllProductsInput struct {
	EnterpriseID uuid.UUID  `json:"enterpriseId" validate:"uuid_required"`
	Search       string     `json:"search"`
	CategoryID   *uuid.UUID `json:"categoryId"`
	AllergenID   *uuid.UUID `json:"allergenId"`
}

type FindOneProductInput struct {
	ID           uuid.UUID  `json:"id" validate:"uuid_required"`
	EnterpriseID *uuid.UUID `json:"enterpriseId"`
}

type FindOrCreateInput struct {
	Name         string    `json:"name" validate:"required"`
	EanCode      *string   `json:"eanCode"`
	CategoryName *string   `json:"categoryName"`
	EnterpriseID uuid.UUID `json:"enterpriseId" validate:"uuid_required"`
}

type ProductService interface {
	Create(input CreateProductInput) (*FormattedProduct, error)
	FindAll(input FindAllProductsInput) ([]*FormattedProduct, error)
	FindOne(input FindOneProductInput) (*FormattedProduct, error)
	Update(id uuid.UUID, input UpdateProductInput) (*FormattedProduct, error)
	Remove(id uuid.UUID) error
	FindOrCreate(ctx context.Context, input FindOrCreateInput) (*FormattedProduct, error)
	UpdateStock(ctx context.Context, items []StockUpdateItem) (*StockUpdateResult, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	allergenRepo repository.AllergenRepository
	classifier   classifier.Classifier
	log          *zap.Logger
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	allergenRepo repository.AllergenRepository,
	clf classifier.Classifier,
	log *zap.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		allergenRepo: allergenRepo,
		classifier:   clf,
		log:          log,
	}
}

func (s *productService) Create(input CreateProductInput) (*FormattedProduct, error) {
	product := &model.Product{
		Name:         input.Name,
		EanCode:      input.EanCode,
		Description:  input.Description,
		CategoryID:   input.CategoryID,
		EnterpriseID: input.EnterpriseID,
		Unit:         model.DefaultUnit,
		Stock:        decimal.Zero,
	}
	if input.Unit != nil {
		product.Unit = *input.Unit
	}
	if input.Stock != nil {
		product.Stock = decimal.NewFromFloat(*input.Stock)
	}

	created, err := s.productRepo.Create(product, input.AllergenIDs)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return formatProduct(created), nil
}

func (s *productService) FindAll(input FindAllProductsInput) ([]*FormattedProduct, error) {
	products, err := s.productRepo.FindAll(repository.ProductFilters{
		EnterpriseID: input.EnterpriseID,
		Search:       input.Search,
		CategoryID:   input.CategoryID,
		AllergenID:   input.AllergenID,
	})
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return formatProducts(products), nil
}

func (s *productService) FindOne(input FindOneProductInput) (*FormattedProduct, error) {
	product, err := s.productRepo.FindByID(input.ID, input.EnterpriseID)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return formatProduct(product), nil
}

func (s *productService) Update(id uuid.UUID, input UpdateProductInput) (*FormattedProduct, error) {
	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.EanCode != nil {
		fields["ean_code"] = *input.EanCode
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.CategoryID != nil {
		fields["category_id"] = *input.CategoryID
	}
	if input.Unit != nil {
		fields["unit"] = *input.Unit
	}
	if input.Stock != nil {
		fields["stock"] = decimal.NewFromFloat(*input.Stock)
	}

	replaceAllergens := input.AllergenIDs != nil
	updated, err := s.productRepo.Update(id, fields, input.AllergenIDs, replaceAllergens)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return formatProduct(updated), nil
}

func (s *productService) Remove(id uuid.UUID) error {
	if err := s.productRepo.Delete(id); err != nil {
		return apperr.FromStore(err)
	}
	return nil
}
