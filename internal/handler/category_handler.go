package handler

import (
	"encoding/json"

	"go-products-ms/internal/service"
	"go-products-ms/pkg/bus"
	"go-products-ms/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	service service.CategoryService
	log     *zap.Logger
}

func NewCategoryHandler(s service.CategoryService, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{service: s, log: log}
}

func (h *CategoryHandler) Register(conn *bus.Conn) error {
	subs := map[string]bus.Handler{
		SubjectCategoryCreate:  h.Create,
		SubjectCategoryFindAll: h.FindAll,
		SubjectCategoryFindOne: h.FindOne,
		SubjectCategoryUpdate:  h.Update,
		SubjectCategoryDelete:  h.Delete,
	}
	for subject, handler := range subs {
		if err := conn.Subscribe(subject, handler); err != nil {
			return err
		}
	}
	return nil
}

func (h *CategoryHandler) Create(data []byte) []byte {
	var input service.CreateCategoryInput
	if err := json.Unmarshal(data, &input); err != nil {
		return replyError(400, "Invalid payload")
	}
	if msg := validator.FirstError(input); msg != "" {
		return replyError(400, msg)
	}

	category, err := h.service.Create(input)
	if err != nil {
		h.log.Error("category create failed", zap.Error(err))
		return replyErr(err)
	}
	return replyData(category)
}

func (h *CategoryHandler) FindAll(data []byte) []byte {
	categories, err := h.service.FindAll()
	if err != nil {
		h.log.Error("category list failed", zap.Error(err))
		return replyErr(err)
	}
	return replyData(categories)
}

func (h *CategoryHandler) FindOne(data []byte) []byte {
	var payload struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return replyError(400, "Invalid payload")
	}
	if payload.ID == uuid.Nil {
		return replyError(400, "Category id is required")
	}

	category, err := h.service.FindOne(payload.ID)
	if err != nil {
		return replyErr(err)
	}
	return replyData(category)
}

func (h *CategoryHandler) Update(data []byte) []byte {
	var payload struct {
		ID   uuid.UUID                   `json:"id"`
		Data service.UpdateCategoryInput `json:"data"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return replyError(400, "Invalid payload")
	}
	if payload.ID == uuid.Nil {
		return replyError(400, "Category id is required")
	}

	category, err := h.service.Update(payload.ID, payload.Data)
	if err != nil {
		h.log.Error("category update failed", zap.String("id", payload.ID.String()), zap.Error(err))
		return replyErr(err)
	}
	return replyData(category)
}

func (h *CategoryHandler) Delete(data []byte) []byte {
	var payload struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return replyError(400, "Invalid payload")
	}
	if payload.ID == uuid.Nil {
		return replyError(400, "Category id is required")
	}

	if err := h.service.Remove(payload.ID); err != nil {
		return replyErr(err)
	}
	return replyData(map[string]string{"message": "Category deleted successfully"})
}
