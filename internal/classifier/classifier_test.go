package classifier

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestDisabledIdentifyAllergens(t *testing.T) {
	var clf Classifier = Disabled{}

	result := clf.IdentifyAllergens(context.Background(), "Leche entera")
	if len(result.AllergenCodes) != 0 {
		t.Errorf("expected no codes, got %v", result.AllergenCodes)
	}
	if result.AllergenCodes == nil {
		t.Errorf("expected empty slice, not nil")
	}
	if result.Confidence != ConfidenceLow {
		t.Errorf("expected low confidence, got %q", result.Confidence)
	}
}

func TestDisabledSuggestCategory(t *testing.T) {
	var clf Classifier = Disabled{}

	result := clf.SuggestCategory(context.Background(), "Queso", []string{"Lácteos"})
	if result.Category != "" {
		t.Errorf("expected empty category, got %q", result.Category)
	}
	if result.Confidence != ConfidenceLow {
		t.Errorf("expected low confidence, got %q", result.Confidence)
	}
}

func TestOpenAIEmptyInputShortCircuits(t *testing.T) {
	// No network call happens for blank input, so a bogus key is safe here.
	clf := NewOpenAI(Options{APIKey: "test-key"}, zap.NewNop())

	allergens := clf.IdentifyAllergens(context.Background(), "   ")
	if len(allergens.AllergenCodes) != 0 || allergens.Confidence != ConfidenceLow {
		t.Errorf("expected degraded result for blank description, got %+v", allergens)
	}

	category := clf.SuggestCategory(context.Background(), "", []string{"Bebidas"})
	if category.Category != "" || category.Confidence != ConfidenceLow {
		t.Errorf("expected degraded result for blank name, got %+v", category)
	}

	noCategories := clf.SuggestCategory(context.Background(), "Agua", nil)
	if noCategories.Category != "" || noCategories.Confidence != ConfidenceLow {
		t.Errorf("expected degraded result with no categories, got %+v", noCategories)
	}
}
