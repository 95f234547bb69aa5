package service

import (
	"time"

	"go-products-ms/internal/model"

	"github.com/google/uuid"
)

// FormattedProduct is the product shape every consumer-facing operation
// returns: flat scalars, embedded category and allergen details, stock as a
// plain number and ISO-8601 timestamps.
type FormattedProduct struct {
	ID           uuid.UUID           `json:"id"`
	Name         string              `json:"name"`
	EanCode      *string             `json:"eanCode"`
	Description  *string             `json:"description"`
	CategoryID   uuid.UUID           `json:"categoryId"`
	EnterpriseID uuid.UUID           `json:"enterpriseId"`
	Unit         string              `json:"unit"`
	Stock        float64             `json:"stock"`
	Category     *FormattedCategory  `json:"category"`
	Allergens    []FormattedAllergen `json:"allergens"`
	CreatedAt    string              `json:"createdAt"`
	UpdatedAt    string              `json:"updatedAt"`
}

type FormattedCategory struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
}

type FormattedAllergen struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description *string   `json:"description"`
}

func formatProduct(product *model.Product) *FormattedProduct {
	formatted := &FormattedProduct{
		ID:           product.ID,
		Name:         product.Name,
		EanCode:      product.EanCode,
		Description:  product.Description,
		CategoryID:   product.CategoryID,
		EnterpriseID: product.EnterpriseID,
		Unit:         product.Unit,
		Stock:        product.Stock.InexactFloat64(),
		Allergens:    []FormattedAllergen{},
		CreatedAt:    product.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    product.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if product.Category != nil {
		formatted.Category = &FormattedCategory{
			ID:          product.Category.ID,
			Name:        product.Category.Name,
			Description: product.Category.Description,
		}
	}

	for _, pa := range product.Allergens {
		if pa.Allergen == nil {
			continue
		}
		formatted.Allergens = append(formatted.Allergens, FormattedAllergen{
			ID:          pa.Allergen.ID,
			Name:        pa.Allergen.Name,
			Code:        pa.Allergen.Code,
			Description: pa.Allergen.Description,
		})
	}

	return formatted
}

func formatProducts(products []model.Product) []*FormattedProduct {
	formatted := make([]*FormattedProduct, len(products))
	for i := range products {
		formatted[i] = formatProduct(&products[i])
	}
	return formatted
}
