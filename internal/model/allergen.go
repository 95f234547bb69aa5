package model

// Allergen is static reference data: the 14 allergens of EU regulation
// 1169/2011, keyed by short code.
type Allergen struct {
	BaseModel
	Name        string  `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Code        string  `gorm:"type:varchar(10);uniqueIndex;not null" json:"code" validate:"required"`
	Description *string `gorm:"type:text" json:"description"`
}

// AllergenCodes lists every regulatory code the classifier may return.
// Codes outside this set are dropped by the mapper.
var AllergenCodes = []string{
	"GLU", "CRU", "EGG", "FISH", "PEA", "SOY", "MILK",
	"NUTS", "CEL", "MUS", "SES", "SUL", "LUP", "MOL",
}
