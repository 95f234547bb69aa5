package service

import (
	"context"
	"testing"

	"go-products-ms/internal/apperr"
	"go-products-ms/internal/classifier"
	"go-products-ms/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func strPtr(s string) *string {
	return &s
}

func TestFindOrCreateEANHit(t *testing.T) {
	productRepo, _, _, clf, svc := newTestService()

	tenant := uuid.New()
	existing := &model.Product{Name: "Leche Entera", EanCode: strPtr("5000"), EnterpriseID: tenant}
	productRepo.add(existing)

	got, err := svc.FindOrCreate(context.Background(), FindOrCreateInput{
		Name:         "X",
		EanCode:      strPtr("5000"),
		EnterpriseID: tenant,
	})
	if err != nil {
		t.Fatalf("FindOrCreate returned error: %v", err)
	}
	if got.ID != existing.ID {
		t.Errorf("expected product %s, got %s", existing.ID, got.ID)
	}
	if productRepo.createCount != 0 {
		t.Errorf("expected no create, got %d", productRepo.createCount)
	}
	if clf.allergenCalls != 0 || clf.categoryCalls != 0 {
		t.Errorf("classifier should not be called on EAN hit")
	}
}

func TestFindOrCreateEANScopedToTenant(t *testing.T) {
	productRepo, categoryRepo, _, _, svc := newTestService()
	categoryRepo.add("Otros")

	otherTenant := uuid.New()
	productRepo.add(&model.Product{Name: "Leche", EanCode: strPtr("5000"), EnterpriseID: otherTenant})

	tenant := uuid.New()
	got, err := svc.FindOrCreate(context.Background(), FindOrCreateInput{
		Name:         "Leche",
		EanCode:      strPtr("5000"),
		EnterpriseID: tenant,
	})
	if err != nil {
		t.Fatalf("FindOrCreate returned error: %v", err)
	}
	if got.EnterpriseID != tenant {
		t.Errorf("expected a product owned by %s, got %s", tenant, got.EnterpriseID)
	}
	if productRepo.createCount != 1 {
		t.Errorf("expected a create for the second tenant, got %d", productRepo.createCount)
	}
}

func TestFindOrCreateNameHitCaseInsensitive(t *testing.T) {
	productRepo, _, _, _, svc := newTestService()

	tenant := uuid.New()
	existing := &model.Product{Name: "Leche Entera", EnterpriseID: tenant}
	productRepo.add(existing)

	got, err := svc.FindOrCreate(context.Background(), FindOrCreateInput{
		Name:         "LECHE entera",
		EnterpriseID: tenant,
	})
	if err != nil {
		t.Fatalf("FindOrCreate returned error: %v", err)
	}
	if got.ID != existing.ID {
		t.Errorf("expected name match to return %s, got %s", existing.ID, got.ID)
	}
	if productRepo.createCount != 0 {
		t.Errorf("expected no create, got %d", productRepo.createCount)
	}
}

func TestFindOrCreateIdempotentByName(t *testing.T) {
	productRepo, categoryRepo, _, _, svc := newTestService()
	categoryRepo.add("Otros")

	tenant := uuid.New()
	input := FindOrCreateInput{Name: "Pan de Molde", EnterpriseID: tenant}

	first, err := svc.FindOrCreate(context.Background(), input)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.FindOrCreate(context.Background(), input)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected both calls to resolve to one product, got %s and %s", first.ID, second.ID)
	}
	if productRepo.createCount != 1 {
		t.Errorf("expected exactly one create, got %d", productRepo.createCount)
	}
}

func TestFindOrCreateAutoCreateWithEnrichment(t *testing.T) {
	productRepo, categoryRepo, allergenRepo, clf, svc := newTestService()

	milk := allergenRepo.add("Lácteos", "MILK")
	productRepo.allergens[milk.ID] = milk
	clf.allergenResult = classifier.AllergenResult{
		AllergenCodes: []string{"MILK"},
		Confidence:    classifier.ConfidenceHigh,
	}

	tenant := uuid.New()
	got, err := svc.FindOrCreate(context.Background(), FindOrCreateInput{
		Name:         "Leche entera",
		EnterpriseID: tenant,
	})
	if err != nil {
		t.Fatalf("FindOrCreate returned error: %v", err)
	}

	if len(got.Allergens) != 1 || got.Allergens[0].Code != "MILK" {
		t.Fatalf("expected exactly the MILK allergen, got %+v", got.Allergens)
	}
	if got.Unit != model.DefaultUnit {
		t.Errorf("expected default unit %q, got %q", model.DefaultUnit, got.Unit)
	}
	if got.Stock != 0 {
		t.Errorf("expected zero stock, got %v", got.Stock)
	}
	// No hint, no existing categories: the fallback gets auto-created.
	if categoryRepo.createCount != 1 || categoryRepo.categories[0].Name != model.FallbackCategoryName {
		t.Errorf("expected fallback category to be created, got %+v", categoryRepo.categories)
	}
}

func TestFindOrCreateDropsUnknownAllergenCodes(t *testing.T) {
	productRepo, _, allergenRepo, clf, svc := newTestService()

	milk := allergenRepo.add("Lácteos", "MILK")
	productRepo.allergens[milk.ID] = milk
	clf.allergenResult = classifier.AllergenResult{
		AllergenCodes: []string{"MILK", "XYZ"},
		Confidence:    classifier.ConfidenceMedium,
	}

	got, err := svc.FindOrCreate(context.Background(), FindOrCreateInput{
		Name:         "Yogur natural",
		EnterpriseID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("FindOrCreate returned error: %v", err)
	}
	if len(got.Allergens) != 1 || got.Allergens[0].Code != "MILK" {
		t.Errorf("unknown codes must be dropped, got %+v", got.Allergens)
	}
}

func TestFindOrCreateClassifierDisabled(t *testing.T) {
	productRepo := newFakeProductRepo()
	categoryRepo := &fakeCategoryRepo{}
	allergenRepo := &fakeAllergenRepo{}
	svc := NewProductService(productRepo, categoryRepo, allergenRepo, classifier.Disabled{}, testLogger())

	got, err := svc.FindOrCreate(context.Background(), FindOrCreateInput{
		Name:         "Generic Item",
		EnterpriseID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("FindOrCreate returned error: %v", err)
	}
	if len(got.Allergens) != 0 {
		t.Errorf("expected no allergens, got %+v", got.Allergens)
	}
	if productRepo.createCount != 1 {
		t.Errorf("expected product to be created despite disabled classifier")
	}
}

func TestFindOrCreateFallbackCategoryReused(t *testing.T) {
	_, categoryRepo, _, _, svc := newTestService()

	tenant := uuid.New()
	first, err := svc.FindOrCreate(context.Background(), FindOrCreateInput{Name: "Item A", EnterpriseID: tenant})
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.FindOrCreate(context.Background(), FindOrCreateInput{Name: "Item B", EnterpriseID: tenant})
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if categoryRepo.createCount != 1 {
		t.Errorf("expected fallback category created once, got %d", categoryRepo.createCount)
	}
	if first.CategoryID != second.CategoryID {
		t.Errorf("expected both products in the fallback category")
	}
}

func TestFindOrCreateUsesSuggestionWhenVerbatim(t *testing.T) {
	_, categoryRepo, _, clf, svc := newTestService()

	dairy := categoryRepo.add("Lácteos")
	categoryRepo.add("Bebidas")
	clf.categoryResult = classifier.CategoryResult{
		Category:   "Lácteos",
		Confidence: classifier.ConfidenceHigh,
	}

	got, err := svc.FindOrCreate(context.Background(), FindOrCreateInput{
		Name:         "Queso curado",
		CategoryName: strPtr("Snacks"),
		EnterpriseID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("FindOrCreate returned error: %v", err)
	}
	if got.CategoryID != dairy.ID {
		t.Errorf("expected suggested category %s, got %s", dairy.ID, got.CategoryID)
	}
	if categoryRepo.createCount != 0 {
		t.Errorf("expected no category create, got %d", categoryRepo.createCount)
	}
}

func TestFindOrCreateIgnoresSuggestionOutsideList(t *testing.T) {
	_, categoryRepo, _, clf, svc := newTestService()

	drinks := categoryRepo.add("Bebidas")
	clf.categoryResult = classifier.CategoryResult{
		Category:   "Charcutería",
		Confidence: classifier.ConfidenceHigh,
	}

	got, err := svc.FindOrCreate(context.Background(), FindOrCreateInput{
		Name:         "Agua mineral",
		CategoryName: strPtr("bebidas"),
		EnterpriseID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("FindOrCreate returned error: %v", err)
	}
	// Caller hint wins and matches the existing category case-insensitively.
	if got.CategoryID != drinks.ID {
		t.Errorf("expected caller hint to resolve to %s, got %s", drinks.ID, got.CategoryID)
	}
}

func TestFindOrCreateHintCreatesCategory(t *testing.T) {
	_, categoryRepo, _, _, svc := newTestService()

	_, err := svc.FindOrCreate(context.Background(), FindOrCreateInput{
		Name:         "Guisantes congelados",
		CategoryName: strPtr("  Congelados  "),
		EnterpriseID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("FindOrCreate returned error: %v", err)
	}
	if categoryRepo.createCount != 1 {
		t.Fatalf("expected one category create, got %d", categoryRepo.createCount)
	}
	if categoryRepo.categories[0].Name != "Congelados" {
		t.Errorf("expected trimmed hint as category name, got %q", categoryRepo.categories[0].Name)
	}
}

func TestFindOrCreateCategoryConflictIsRecoverable(t *testing.T) {
	_, categoryRepo, _, _, svc := newTestService()
	categoryRepo.createErr = gorm.ErrDuplicatedKey

	_, err := svc.FindOrCreate(context.Background(), FindOrCreateInput{
		Name:         "Nuevo producto",
		CategoryName: strPtr("Congelados"),
		EnterpriseID: uuid.New(),
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperr.IsKind(err, apperr.Conflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}
