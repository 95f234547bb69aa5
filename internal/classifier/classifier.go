// Package classifier provides LLM-backed allergen identification and category
// suggestion. Implementations never return an error to the caller: any
// failure degrades to an empty low-confidence result.
package classifier

import "context"

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// AllergenResult is the outcome of an allergen identification call.
type AllergenResult struct {
	AllergenCodes []string   `json:"allergenCodes"`
	Confidence    Confidence `json:"confidence"`
	Reasoning     string     `json:"reasoning,omitempty"`
}

// CategoryResult is the outcome of a category suggestion call.
type CategoryResult struct {
	Category   string     `json:"category"`
	Confidence Confidence `json:"confidence"`
	Reasoning  string     `json:"reasoning,omitempty"`
}

type Classifier interface {
	IdentifyAllergens(ctx context.Context, description string) AllergenResult
	SuggestCategory(ctx context.Context, productName string, categories []string) CategoryResult
}

func emptyAllergenResult(reason string) AllergenResult {
	return AllergenResult{AllergenCodes: []string{}, Confidence: ConfidenceLow, Reasoning: reason}
}

func emptyCategoryResult(reason string) CategoryResult {
	return CategoryResult{Category: "", Confidence: ConfidenceLow, Reasoning: reason}
}

// Disabled is used when no API key is configured.
type Disabled struct{}

func (Disabled) IdentifyAllergens(ctx context.Context, description string) AllergenResult {
	return emptyAllergenResult("Classifier not configured")
}

func (Disabled) SuggestCategory(ctx context.Context, productName string, categories []string) CategoryResult {
	return emptyCategoryResult("Classifier not configured")
}
