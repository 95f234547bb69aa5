package handler

// NATS subjects served by this microservice.
const (
	// Products
	SubjectProductCreate       = "products.create"
	SubjectProductFindAll      = "products.findAll"
	SubjectProductFindOne      = "products.findOne"
	SubjectProductUpdate       = "products.update"
	SubjectProductDelete       = "products.delete"
	SubjectProductFindOrCreate = "products.findOrCreate"
	SubjectProductUpdateStock  = "products.updateStock"
	SubjectProductHealth       = "products.health"

	// Categories
	SubjectCategoryCreate  = "categories.create"
	SubjectCategoryFindAll = "categories.findAll"
	SubjectCategoryFindOne = "categories.findOne"
	SubjectCategoryUpdate  = "categories.update"
	SubjectCategoryDelete  = "categories.delete"

	// Allergens
	SubjectAllergenCreate  = "allergens.create"
	SubjectAllergenFindAll = "allergens.findAll"
	SubjectAllergenFindOne = "allergens.findOne"
	SubjectAllergenUpdate  = "allergens.update"
	SubjectAllergenDelete  = "allergens.delete"
)
