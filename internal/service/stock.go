package service

import (
	"context"

	"go-products-ms/internal/apperr"
	"go-products-ms/internal/model"
	"go-products-ms/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StockUpdateItem is one signed stock adjustment. Quantity may be negative;
// the resulting stock is floored at zero.
type StockUpdateItem struct {
	ProductID uuid.UUID `json:"productId" validate:"uuid_required"`
	Quantity  float64   `json:"quantity"`
}

type StockItemResult struct {
	ProductID uuid.UUID `json:"productId"`
	NewStock  float64   `json:"newStock"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

type StockUpdateResult struct {
	Success bool              `json:"success"`
	Results []StockItemResult `json:"results"`
}

// UpdateStock applies a batch of stock adjustments. Missing products are
// reported per item and excluded; every remaining update commits in a single
// transaction or not at all. A systemic store failure aborts the whole batch
// and is returned as an error rather than a partial result.
func (s *productService) UpdateStock(ctx context.Context, items []StockUpdateItem) (*StockUpdateResult, error) {
	// 1. Fetch every referenced product in one query
	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}

	products, err := s.productRepo.FindByIDs(ids)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	productMap := make(map[uuid.UUID]*model.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	// 2. Partition into valid items and missing products
	var validItems []StockUpdateItem
	var missingResults []StockItemResult
	for _, item := range items {
		if _, ok := productMap[item.ProductID]; ok {
			validItems = append(validItems, item)
		} else {
			missingResults = append(missingResults, StockItemResult{
				ProductID: item.ProductID,
				NewStock:  0,
				Success:   false,
				Error:     "Product not found",
			})
		}
	}

	if len(validItems) == 0 {
		return &StockUpdateResult{Success: false, Results: emptyIfNil(missingResults)}, nil
	}

	// 3. Compute new stock levels, floored at zero
	writes := make([]repository.StockWrite, len(validItems))
	for i, item := range validItems {
		current := productMap[item.ProductID].Stock
		newStock := current.Add(decimal.NewFromFloat(item.Quantity))
		if newStock.IsNegative() {
			newStock = decimal.Zero
		}
		writes[i] = repository.StockWrite{ID: item.ProductID, NewStock: newStock}
	}

	// 4. Commit all valid updates atomically
	updated, err := s.productRepo.UpdateStockAtomic(writes)
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	successResults := make([]StockItemResult, len(updated))
	for i := range updated {
		previous := productMap[updated[i].ID].Stock
		successResults[i] = StockItemResult{
			ProductID: updated[i].ID,
			NewStock:  updated[i].Stock.InexactFloat64(),
			Success:   true,
		}
		s.log.Info("stock updated",
			zap.String("product_id", updated[i].ID.String()),
			zap.Float64("old_stock", previous.InexactFloat64()),
			zap.Float64("new_stock", updated[i].Stock.InexactFloat64()),
			zap.Float64("delta", validItems[i].Quantity))
	}

	// 5. Combine: successes in input order, then missing items
	allResults := append(successResults, missingResults...)

	return &StockUpdateResult{
		Success: len(missingResults) == 0,
		Results: allResults,
	}, nil
}

func emptyIfNil(results []StockItemResult) []StockItemResult {
	if results == nil {
		return []StockItemResult{}
	}
	return results
}
