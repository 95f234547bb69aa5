package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-products-ms/internal/model"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"go.uber.org/zap"
)

const requestTimeout = 30 * time.Second

// OpenAI implements Classifier against the OpenAI chat completions API with
// strict JSON-schema output.
type OpenAI struct {
	client *openai.Client
	model  string
	log    *zap.Logger
}

type Options struct {
	APIKey  string
	BaseURL string
	Model   string
}

func NewOpenAI(opts Options, log *zap.Logger) *OpenAI {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: requestTimeout}

	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  opts.Model,
		log:    log,
	}
}

func (o *OpenAI) IdentifyAllergens(ctx context.Context, description string) AllergenResult {
	if strings.TrimSpace(description) == "" {
		return emptyAllergenResult("Empty product description")
	}

	var result AllergenResult
	err := o.complete(ctx, allergenPrompt(description), "allergen_identification", allergenSchema(), 500, &result)
	if err != nil {
		o.log.Warn("allergen identification degraded", zap.String("description", description), zap.Error(err))
		return emptyAllergenResult(fmt.Sprintf("Error: %v", err))
	}
	if result.AllergenCodes == nil {
		result.AllergenCodes = []string{}
	}

	o.log.Info("allergens identified",
		zap.Strings("codes", result.AllergenCodes),
		zap.String("confidence", string(result.Confidence)))
	return result
}

func (o *OpenAI) SuggestCategory(ctx context.Context, productName string, categories []string) CategoryResult {
	if productName == "" || len(categories) == 0 {
		return emptyCategoryResult("No product name or categories")
	}

	var result CategoryResult
	err := o.complete(ctx, categoryPrompt(productName, categories), "category_suggestion", categorySchema(), 200, &result)
	if err != nil {
		o.log.Warn("category suggestion degraded", zap.String("product", productName), zap.Error(err))
		return emptyCategoryResult(fmt.Sprintf("Error: %v", err))
	}

	o.log.Info("category suggested",
		zap.String("category", result.Category),
		zap.String("confidence", string(result.Confidence)))
	return result
}

// complete runs one strict-schema completion and decodes it into out. Any
// transport or decode failure is returned so the caller can degrade; this is
// the single decode-or-degrade path.
func (o *OpenAI) complete(ctx context.Context, prompt, schemaName string, schema *jsonschema.Definition, maxTokens int, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: schema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return err
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("empty completion response")
	}
	return json.Unmarshal([]byte(resp.Choices[0].Message.Content), out)
}

func allergenPrompt(description string) string {
	return fmt.Sprintf(`Eres un experto en seguridad alimentaria y alérgenos. Analiza la siguiente descripción de producto e identifica TODOS los alérgenos presentes según la normativa europea (Reglamento UE 1169/2011).

DESCRIPCIÓN DEL PRODUCTO:
"%s"

CÓDIGOS DE ALÉRGENOS (14 alérgenos principales UE):
- GLU: Cereales con gluten (trigo, centeno, cebada, avena, espelta, kamut)
- CRU: Crustáceos (gambas, langostinos, cangrejos, langostas)
- EGG: Huevos y productos derivados
- FISH: Pescado y productos derivados
- PEA: Cacahuetes y productos derivados
- SOY: Soja y productos derivados
- MILK: Leche y derivados lácteos (incluida lactosa)
- NUTS: Frutos de cáscara (almendras, avellanas, nueces, anacardos, pistachos)
- CEL: Apio y productos derivados
- MUS: Mostaza y productos derivados
- SES: Granos de sésamo y productos derivados
- SUL: Dióxido de azufre y sulfitos (>10 mg/kg o 10 mg/litro)
- LUP: Altramuces y productos derivados
- MOL: Moluscos (mejillones, almejas, ostras, calamares, pulpos)

INSTRUCCIONES:
1. Identifica TODOS los alérgenos que puedan estar presentes
2. Considera ingredientes obvios Y derivados (ej: "mantequilla" contiene MILK, "pan" contiene GLU)
3. Si no estás seguro, incluye el alérgeno con confianza "medium" o "low"
4. Si el producto claramente NO contiene alérgenos, devuelve un array vacío

EJEMPLOS:
- "Aceite de oliva virgen extra" -> []
- "Pan de trigo integral" -> ["GLU"]
- "Leche entera pasteurizada" -> ["MILK"]
- "Salsa de soja" -> ["SOY", "GLU"]
- "Mayonesa" -> ["EGG", "MUS"]

Devuelve un JSON con:
- allergenCodes: array de códigos detectados (vacío si no hay)
- confidence: "high", "medium" o "low" según certeza
- reasoning: breve explicación del análisis (máximo 100 caracteres)`, description)
}

func categoryPrompt(productName string, categories []string) string {
	quoted := make([]string, len(categories))
	for i, c := range categories {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return fmt.Sprintf(`Eres un experto en clasificación de productos. Basado en el nombre del producto y la lista de categorías disponibles, sugiere la categoría más adecuada para el producto.

NOMBRE DEL PRODUCTO: %q
CATEGORÍAS DISPONIBLES: %s

Devuelve un JSON con:
- category: nombre exacto de la categoría sugerida (de la lista)
- confidence: "high", "medium" o "low" según certeza
- reasoning: breve explicación (máximo 100 caracteres)`, productName, strings.Join(quoted, ", "))
}

func allergenSchema() *jsonschema.Definition {
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"allergenCodes": {
				Type:  jsonschema.Array,
				Items: &jsonschema.Definition{Type: jsonschema.String, Enum: model.AllergenCodes},
			},
			"confidence": {Type: jsonschema.String, Enum: []string{"high", "medium", "low"}},
			"reasoning":  {Type: jsonschema.String},
		},
		Required:             []string{"allergenCodes", "confidence", "reasoning"},
		AdditionalProperties: false,
	}
}

func categorySchema() *jsonschema.Definition {
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"category":   {Type: jsonschema.String},
			"confidence": {Type: jsonschema.String, Enum: []string{"high", "medium", "low"}},
			"reasoning":  {Type: jsonschema.String},
		},
		Required:             []string{"category", "confidence", "reasoning"},
		AdditionalProperties: false,
	}
}
