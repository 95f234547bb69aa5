package service

import (
	"go-products-ms/internal/apperr"
	"go-products-ms/internal/model"
	"go-products-ms/internal/repository"

	"github.com/google/uuid"
)

type CreateAllergenInput struct {
	Name        string  `json:"name" validate:"required"`
	Code        string  `json:"code" validate:"required"`
	Description *string `json:"description"`
}

type UpdateAllergenInput struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
}

type AllergenService interface {
	Create(input CreateAllergenInput) (*model.Allergen, error)
	FindAll() ([]model.Allergen, error)
	FindOne(id uuid.UUID) (*model.Allergen, error)
	Update(id uuid.UUID, input UpdateAllergenInput) (*model.Allergen, error)
	Remove(id uuid.UUID) error
}

type allergenService struct {
	repo repository.AllergenRepository
}

func NewAllergenService(repo repository.AllergenRepository) AllergenService {
	return &allergenService{repo}
}

func (s *allergenService) Create(input CreateAllergenInput) (*model.Allergen, error) {
	allergen := &model.Allergen{Name: input.Name, Code: input.Code, Description: input.Description}
	if err := s.repo.Create(allergen); err != nil {
		return nil, apperr.FromStore(err)
	}
	return allergen, nil
}

func (s *allergenService) FindAll() ([]model.Allergen, error) {
	allergens, err := s.repo.FindAll()
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return allergens, nil
}

func (s *allergenService) FindOne(id uuid.UUID) (*model.Allergen, error) {
	allergen, err := s.repo.FindByID(id)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return allergen, nil
}

func (s *allergenService) Update(id uuid.UUID, input UpdateAllergenInput) (*model.Allergen, error) {
	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Code != nil {
		fields["code"] = *input.Code
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}

	allergen, err := s.repo.Update(id, fields)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return allergen, nil
}

func (s *allergenService) Remove(id uuid.UUID) error {
	if err := s.repo.Delete(id); err != nil {
		return apperr.FromStore(err)
	}
	return nil
}
