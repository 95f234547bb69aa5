package service

import (
	"context"
	"strings"

	"go-products-ms/internal/apperr"
	"go-products-ms/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FindOrCreate resolves a product from partial identifying data supplied by
// the document-analysis flow: EAN first, then case-insensitive name, and only
// then an auto-create enriched with classifier suggestions. Classifier
// failures never block creation; store failures propagate.
func (s *productService) FindOrCreate(ctx context.Context, input FindOrCreateInput) (*FormattedProduct, error) {
	// 1. Lookup by EAN within the enterprise
	if input.EanCode != nil && *input.EanCode != "" {
		product, err := s.productRepo.FindByEAN(*input.EanCode, input.EnterpriseID)
		if err != nil {
			return nil, apperr.FromStore(err)
		}
		if product != nil {
			s.log.Info("product found by EAN", zap.String("ean", *input.EanCode))
			return formatProduct(product), nil
		}
	}

	// 2. Lookup by exact name, case-insensitive, within the enterprise
	product, err := s.productRepo.FindByNameCI(input.Name, input.EnterpriseID)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	if product != nil {
		s.log.Info("product found by name", zap.String("name", input.Name))
		return formatProduct(product), nil
	}

	// 3. No match: create, enriching with classifier output
	s.log.Info("creating new product",
		zap.String("name", input.Name),
		zap.String("enterprise_id", input.EnterpriseID.String()))

	allergenIDs, err := s.identifyAllergenIDs(ctx, input.Name)
	if err != nil {
		return nil, err
	}

	categoryHint, err := s.suggestCategoryHint(ctx, input.Name, input.CategoryName)
	if err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategoryID(categoryHint)
	if err != nil {
		return nil, err
	}

	newProduct := &model.Product{
		Name:         input.Name,
		CategoryID:   categoryID,
		EnterpriseID: input.EnterpriseID,
		Unit:         model.DefaultUnit,
		Stock:        decimal.Zero,
	}
	if input.EanCode != nil && *input.EanCode != "" {
		newProduct.EanCode = input.EanCode
	}

	created, err := s.productRepo.Create(newProduct, allergenIDs)
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	s.log.Info("product created",
		zap.String("id", created.ID.String()),
		zap.Int("allergens", len(allergenIDs)))
	return formatProduct(created), nil
}

// identifyAllergenIDs asks the classifier for allergen codes and maps them to
// known allergen ids. The classifier itself cannot fail the flow; only a store
// error during mapping does.
func (s *productService) identifyAllergenIDs(ctx context.Context, name string) ([]uuid.UUID, error) {
	result := s.classifier.IdentifyAllergens(ctx, name)
	if len(result.AllergenCodes) == 0 {
		return nil, nil
	}

	ids, err := s.mapAllergenCodes(result.AllergenCodes)
	if err != nil {
		return nil, err
	}

	s.log.Info("auto-detected allergens",
		zap.Strings("codes", result.AllergenCodes),
		zap.String("confidence", string(result.Confidence)),
		zap.String("reasoning", result.Reasoning))
	return ids, nil
}

// mapAllergenCodes resolves allergen codes to record ids. Unknown codes are
// silently dropped; empty input never touches the store.
func (s *productService) mapAllergenCodes(codes []string) ([]uuid.UUID, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	allergens, err := s.allergenRepo.FindByCodes(codes)
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	ids := make([]uuid.UUID, 0, len(allergens))
	for _, allergen := range allergens {
		ids = append(ids, allergen.ID)
	}
	return ids, nil
}

// suggestCategoryHint asks the classifier to pick among the existing category
// names. The suggestion is only used when it matches an existing name
// verbatim; otherwise the caller-supplied hint stands.
func (s *productService) suggestCategoryHint(ctx context.Context, name string, callerHint *string) (string, error) {
	hint := ""
	if callerHint != nil {
		hint = *callerHint
	}

	names, err := s.categoryRepo.ListNames()
	if err != nil {
		return "", apperr.FromStore(err)
	}
	if len(names) == 0 {
		return hint, nil
	}

	suggestion := s.classifier.SuggestCategory(ctx, name, names)
	if suggestion.Category == "" {
		return hint, nil
	}
	for _, existing := range names {
		if existing == suggestion.Category {
			s.log.Info("auto-suggested category",
				zap.String("category", suggestion.Category),
				zap.String("confidence", string(suggestion.Confidence)))
			return suggestion.Category, nil
		}
	}
	return hint, nil
}

// resolveCategoryID maps a free-text hint to a category id, creating at most
// one category row. A blank hint resolves to the reserved fallback category.
func (s *productService) resolveCategoryID(hint string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(hint)

	if trimmed != "" {
		existing, err := s.categoryRepo.FindByNameContainsCI(trimmed)
		if err != nil {
			return uuid.Nil, apperr.FromStore(err)
		}
		if existing != nil {
			return existing.ID, nil
		}

		description := model.AutoCreatedCategoryDesc
		category := &model.Category{Name: trimmed, Description: &description}
		if err := s.categoryRepo.Create(category); err != nil {
			return uuid.Nil, apperr.FromStore(err)
		}
		s.log.Info("auto-created category", zap.String("name", category.Name))
		return category.ID, nil
	}

	fallback, err := s.categoryRepo.FindByNameEqualsCI(model.FallbackCategoryName)
	if err != nil {
		return uuid.Nil, apperr.FromStore(err)
	}
	if fallback != nil {
		return fallback.ID, nil
	}

	description := model.FallbackCategoryDescription
	category := &model.Category{Name: model.FallbackCategoryName, Description: &description}
	if err := s.categoryRepo.Create(category); err != nil {
		return uuid.Nil, apperr.FromStore(err)
	}
	s.log.Info("auto-created default category", zap.String("name", category.Name))
	return category.ID, nil
}
