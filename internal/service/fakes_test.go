package service

import (
	"context"
	"strings"
	"time"

	"go-products-ms/internal/classifier"
	"go-products-ms/internal/model"
	"go-products-ms/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// fakeProductRepo is an in-memory ProductRepository. allergens holds the
// reference rows used to hydrate join associations on create.
type fakeProductRepo struct {
	products  map[uuid.UUID]*model.Product
	allergens map[uuid.UUID]model.Allergen

	createCount int
	stockCalls  int
	stockErr    error
	lookupErr   error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products:  map[uuid.UUID]*model.Product{},
		allergens: map[uuid.UUID]model.Allergen{},
	}
}

func (f *fakeProductRepo) add(p *model.Product) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.products[p.ID] = p
}

func (f *fakeProductRepo) Create(product *model.Product, allergenIDs []uuid.UUID) (*model.Product, error) {
	f.createCount++
	product.ID = uuid.New()
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	for _, id := range allergenIDs {
		row := model.ProductAllergen{ProductID: product.ID, AllergenID: id}
		if a, ok := f.allergens[id]; ok {
			allergen := a
			row.Allergen = &allergen
		}
		product.Allergens = append(product.Allergens, row)
	}
	f.products[product.ID] = product
	return product, nil
}

func (f *fakeProductRepo) FindAll(filters repository.ProductFilters) ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.products {
		if p.EnterpriseID == filters.EnterpriseID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindByID(id uuid.UUID, enterpriseID *uuid.UUID) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if enterpriseID != nil && p.EnterpriseID != *enterpriseID {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) Update(id uuid.UUID, fields map[string]interface{}, allergenIDs []uuid.UUID, replaceAllergens bool) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) Delete(id uuid.UUID) error {
	if _, ok := f.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) FindByEAN(ean string, enterpriseID uuid.UUID) (*model.Product, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, p := range f.products {
		if p.EanCode != nil && *p.EanCode == ean && p.EnterpriseID == enterpriseID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) FindByNameCI(name string, enterpriseID uuid.UUID) (*model.Product, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, p := range f.products {
		if strings.EqualFold(p.Name, name) && p.EnterpriseID == enterpriseID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) FindByIDs(ids []uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) UpdateStockAtomic(writes []repository.StockWrite) ([]model.Product, error) {
	f.stockCalls++
	if f.stockErr != nil {
		return nil, f.stockErr
	}
	updated := make([]model.Product, 0, len(writes))
	for _, w := range writes {
		p, ok := f.products[w.ID]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		p.Stock = w.NewStock
		updated = append(updated, *p)
	}
	return updated, nil
}

type fakeCategoryRepo struct {
	categories  []*model.Category
	createCount int
	createErr   error
}

func (f *fakeCategoryRepo) add(name string) *model.Category {
	c := &model.Category{Name: name}
	c.ID = uuid.New()
	f.categories = append(f.categories, c)
	return c
}

func (f *fakeCategoryRepo) Create(category *model.Category) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.createCount++
	category.ID = uuid.New()
	f.categories = append(f.categories, category)
	return nil
}

func (f *fakeCategoryRepo) FindAll() ([]repository.CategoryWithCount, error) {
	var out []repository.CategoryWithCount
	for _, c := range f.categories {
		out = append(out, repository.CategoryWithCount{Category: *c})
	}
	return out, nil
}

func (f *fakeCategoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepo) Update(id uuid.UUID, fields map[string]interface{}) (*model.Category, error) {
	return f.FindByID(id)
}

func (f *fakeCategoryRepo) Delete(id uuid.UUID) error {
	for i, c := range f.categories {
		if c.ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepo) FindByNameContainsCI(text string) (*model.Category, error) {
	for _, c := range f.categories {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(text)) {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindByNameEqualsCI(text string) (*model.Category, error) {
	for _, c := range f.categories {
		if strings.EqualFold(c.Name, text) {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) ListNames() ([]string, error) {
	var names []string
	for _, c := range f.categories {
		names = append(names, c.Name)
	}
	return names, nil
}

type fakeAllergenRepo struct {
	allergens []model.Allergen
}

func (f *fakeAllergenRepo) add(name, code string) model.Allergen {
	a := model.Allergen{Name: name, Code: code}
	a.ID = uuid.New()
	f.allergens = append(f.allergens, a)
	return a
}

func (f *fakeAllergenRepo) Create(allergen *model.Allergen) error {
	allergen.ID = uuid.New()
	f.allergens = append(f.allergens, *allergen)
	return nil
}

func (f *fakeAllergenRepo) FindAll() ([]model.Allergen, error) {
	return f.allergens, nil
}

func (f *fakeAllergenRepo) FindByID(id uuid.UUID) (*model.Allergen, error) {
	for i := range f.allergens {
		if f.allergens[i].ID == id {
			return &f.allergens[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAllergenRepo) Update(id uuid.UUID, fields map[string]interface{}) (*model.Allergen, error) {
	return f.FindByID(id)
}

func (f *fakeAllergenRepo) Delete(id uuid.UUID) error {
	return nil
}

func (f *fakeAllergenRepo) FindByCodes(codes []string) ([]model.Allergen, error) {
	var out []model.Allergen
	for _, a := range f.allergens {
		for _, code := range codes {
			if a.Code == code {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

// fakeClassifier returns canned results and records call counts.
type fakeClassifier struct {
	allergenResult classifier.AllergenResult
	categoryResult classifier.CategoryResult
	allergenCalls  int
	categoryCalls  int
}

func (f *fakeClassifier) IdentifyAllergens(ctx context.Context, description string) classifier.AllergenResult {
	f.allergenCalls++
	if f.allergenResult.Confidence == "" {
		return classifier.AllergenResult{AllergenCodes: []string{}, Confidence: classifier.ConfidenceLow}
	}
	return f.allergenResult
}

func (f *fakeClassifier) SuggestCategory(ctx context.Context, productName string, categories []string) classifier.CategoryResult {
	f.categoryCalls++
	if f.categoryResult.Confidence == "" {
		return classifier.CategoryResult{Category: "", Confidence: classifier.ConfidenceLow}
	}
	return f.categoryResult
}

// newTestService wires a product service over fresh fakes.
func newTestService() (*fakeProductRepo, *fakeCategoryRepo, *fakeAllergenRepo, *fakeClassifier, ProductService) {
	productRepo := newFakeProductRepo()
	categoryRepo := &fakeCategoryRepo{}
	allergenRepo := &fakeAllergenRepo{}
	clf := &fakeClassifier{}
	svc := NewProductService(productRepo, categoryRepo, allergenRepo, clf, testLogger())
	return productRepo, categoryRepo, allergenRepo, clf, svc
}
