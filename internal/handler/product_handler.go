package handler

import (
	"context"
	"encoding/json"
	"time"

	"go-products-ms/internal/service"
	"go-products-ms/pkg/bus"
	"go-products-ms/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductHandler struct {
	service service.ProductService
	log     *zap.Logger
}

func NewProductHandler(s service.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{service: s, log: log}
}

// Register subscribes every product subject on the shared queue group.
func (h *ProductHandler) Register(conn *bus.Conn) error {
	subs := map[string]bus.Handler{
		SubjectProductCreate:       h.Create,
		SubjectProductFindAll:      h.FindAll,
		SubjectProductFindOne:      h.FindOne,
		SubjectProductUpdate:       h.Update,
		SubjectProductDelete:       h.Delete,
		SubjectProductFindOrCreate: h.FindOrCreate,
		SubjectProductUpdateStock:  h.UpdateStock,
		SubjectProductHealth:       h.Health,
	}
	for subject, handler := range subs {
		if err := conn.Subscribe(subject, handler); err != nil {
			return err
		}
	}
	return nil
}

func (h *ProductHandler) Create(data []byte) []byte {
	var input service.CreateProductInput
	if err := json.Unmarshal(data, &input); err != nil {
		return replyError(400, "Invalid payload")
	}
	if msg := validator.FirstError(input); msg != "" {
		return replyError(400, msg)
	}

	product, err := h.service.Create(input)
	if err != nil {
		h.log.Error("product create failed", zap.Error(err))
		return replyErr(err)
	}
	return replyData(product)
}

func (h *ProductHandler) FindAll(data []byte) []byte {
	var input service.FindAllProductsInput
	if err := json.Unmarshal(data, &input); err != nil {
		return replyError(400, "Invalid payload")
	}
	if msg := validator.FirstError(input); msg != "" {
		return replyError(400, msg)
	}

	products, err := h.service.FindAll(input)
	if err != nil {
		h.log.Error("product list failed", zap.Error(err))
		return replyErr(err)
	}
	return replyData(products)
}

func (h *ProductHandler) FindOne(data []byte) []byte {
	var input service.FindOneProductInput
	if err := json.Unmarshal(data, &input); err != nil {
		return replyError(400, "Invalid payload")
	}
	if msg := validator.FirstError(input); msg != "" {
		return replyError(400, msg)
	}

	product, err := h.service.FindOne(input)
	if err != nil {
		return replyErr(err)
	}
	return replyData(product)
}

func (h *ProductHandler) Update(data []byte) []byte {
	var payload struct {
		ID   uuid.UUID                  `json:"id"`
		Data service.UpdateProductInput `json:"data"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return replyError(400, "Invalid payload")
	}
	if payload.ID == uuid.Nil {
		return replyError(400, "Product id is required")
	}
	if msg := validator.FirstError(payload.Data); msg != "" {
		return replyError(400, msg)
	}

	product, err := h.service.Update(payload.ID, payload.Data)
	if err != nil {
		h.log.Error("product update failed", zap.String("id", payload.ID.String()), zap.Error(err))
		return replyErr(err)
	}
	return replyData(product)
}

func (h *ProductHandler) Delete(data []byte) []byte {
	var payload struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return replyError(400, "Invalid payload")
	}
	if payload.ID == uuid.Nil {
		return replyError(400, "Product id is required")
	}

	if err := h.service.Remove(payload.ID); err != nil {
		return replyErr(err)
	}
	return replyData(map[string]string{"message": "Product deleted successfully"})
}

func (h *ProductHandler) FindOrCreate(data []byte) []byte {
	var input service.FindOrCreateInput
	if err := json.Unmarshal(data, &input); err != nil {
		return replyError(400, "Invalid payload")
	}
	if msg := validator.FirstError(input); msg != "" {
		return replyError(400, msg)
	}

	product, err := h.service.FindOrCreate(context.Background(), input)
	if err != nil {
		h.log.Error("product resolution failed", zap.String("name", input.Name), zap.Error(err))
		return replyErr(err)
	}
	return replyData(product)
}

// UpdateStock accepts either a single item or an array; both shapes run the
// same batch algorithm.
func (h *ProductHandler) UpdateStock(data []byte) []byte {
	var items []service.StockUpdateItem
	if err := json.Unmarshal(data, &items); err != nil {
		var single service.StockUpdateItem
		if err := json.Unmarshal(data, &single); err != nil {
			return replyError(400, "Invalid payload")
		}
		items = []service.StockUpdateItem{single}
	}
	for _, item := range items {
		if msg := validator.FirstError(item); msg != "" {
			return replyError(400, msg)
		}
	}

	result, err := h.service.UpdateStock(context.Background(), items)
	if err != nil {
		h.log.Error("stock update failed", zap.Int("items", len(items)), zap.Error(err))
		return replyErr(err)
	}
	return replyData(result)
}

func (h *ProductHandler) Health(data []byte) []byte {
	return replyData(map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
