package model

// Category groups products. Name uniqueness is global, not tenant-scoped,
// matching the resolver's unscoped lookups.
type Category struct {
	BaseModel
	Name        string  `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	Description *string `gorm:"type:text" json:"description"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// FallbackCategoryName is the reserved category assigned when resolution has
// no usable hint.
const (
	FallbackCategoryName        = "Otros"
	FallbackCategoryDescription = "Categoría por defecto para productos sin clasificación"
	AutoCreatedCategoryDesc     = "Categoría auto-creada desde el flujo de importación"
)
