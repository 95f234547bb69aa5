package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultUnit is assigned to products created through the ingestion flow.
const DefaultUnit = "Unidad"

type Product struct {
	BaseModel
	Name        string    `gorm:"type:varchar(255);not null;index" json:"name" validate:"required"`
	EanCode     *string   `gorm:"type:varchar(50);uniqueIndex:idx_products_enterprise_ean" json:"eanCode"`
	Description *string   `gorm:"type:text" json:"description"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index" json:"categoryId" validate:"required"`
	// EnterpriseID scopes product visibility to the owning business.
	EnterpriseID uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_products_enterprise_ean" json:"enterpriseId" validate:"required"`
	Unit         string          `gorm:"type:varchar(50);default:'Unidad'" json:"unit"`
	Stock        decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"stock"`

	// Relations
	Category  *Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Allergens []ProductAllergen `gorm:"foreignKey:ProductID" json:"allergens,omitempty"`
}

// ProductAllergen is the join row between a product and an allergen. The set
// is always replaced as a whole, never partially diffed.
type ProductAllergen struct {
	ProductID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"productId"`
	AllergenID uuid.UUID `gorm:"type:uuid;primaryKey" json:"allergenId"`

	Allergen *Allergen `gorm:"foreignKey:AllergenID" json:"allergen,omitempty"`
}
