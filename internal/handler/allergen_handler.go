package handler

import (
	"encoding/json"

	"go-products-ms/internal/service"
	"go-products-ms/pkg/bus"
	"go-products-ms/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AllergenHandler struct {
	service service.AllergenService
	log     *zap.Logger
}

func NewAllergenHandler(s service.AllergenService, log *zap.Logger) *AllergenHandler {
	return &AllergenHandler{service: s, log: log}
}

func (h *AllergenHandler) Register(conn *bus.Conn) error {
	subs := map[string]bus.Handler{
		SubjectAllergenCreate:  h.Create,
		SubjectAllergenFindAll: h.FindAll,
		SubjectAllergenFindOne: h.FindOne,
		SubjectAllergenUpdate:  h.Update,
		SubjectAllergenDelete:  h.Delete,
	}
	for subject, handler := range subs {
		if err := conn.Subscribe(subject, handler); err != nil {
			return err
		}
	}
	return nil
}

func (h *AllergenHandler) Create(data []byte) []byte {
	var input service.CreateAllergenInput
	if err := json.Unmarshal(data, &input); err != nil {
		return replyError(400, "Invalid payload")
	}
	if msg := validator.FirstError(input); msg != "" {
		return replyError(400, msg)
	}

	allergen, err := h.service.Create(input)
	if err != nil {
		h.log.Error("allergen create failed", zap.Error(err))
		return replyErr(err)
	}
	return replyData(allergen)
}

func (h *AllergenHandler) FindAll(data []byte) []byte {
	allergens, err := h.service.FindAll()
	if err != nil {
		h.log.Error("allergen list failed", zap.Error(err))
		return replyErr(err)
	}
	return replyData(allergens)
}

func (h *AllergenHandler) FindOne(data []byte) []byte {
	var payload struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return replyError(400, "Invalid payload")
	}
	if payload.ID == uuid.Nil {
		return replyError(400, "Allergen id is required")
	}

	allergen, err := h.service.FindOne(payload.ID)
	if err != nil {
		return replyErr(err)
	}
	return replyData(allergen)
}

func (h *AllergenHandler) Update(data []byte) []byte {
	var payload struct {
		ID   uuid.UUID                   `json:"id"`
		Data service.UpdateAllergenInput `json:"data"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return replyError(400, "Invalid payload")
	}
	if payload.ID == uuid.Nil {
		return replyError(400, "Allergen id is required")
	}

	allergen, err := h.service.Update(payload.ID, payload.Data)
	if err != nil {
		h.log.Error("allergen update failed", zap.String("id", payload.ID.String()), zap.Error(err))
		return replyErr(err)
	}
	return replyData(allergen)
}

func (h *AllergenHandler) Delete(data []byte) []byte {
	var payload struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return replyError(400, "Invalid payload")
	}
	if payload.ID == uuid.Nil {
		return replyError(400, "Allergen id is required")
	}

	if err := h.service.Remove(payload.ID); err != nil {
		return replyErr(err)
	}
	return replyData(map[string]string{"message": "Allergen deleted successfully"})
}
