package service

import (
	"go-products-ms/internal/apperr"
	"go-products-ms/internal/model"
	"go-products-ms/internal/repository"

	"github.com/google/uuid"
)

type CreateCategoryInput struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

type UpdateCategoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type CategoryService interface {
	Create(input CreateCategoryInput) (*model.Category, error)
	FindAll() ([]repository.CategoryWithCount, error)
	FindOne(id uuid.UUID) (*model.Category, error)
	Update(id uuid.UUID, input UpdateCategoryInput) (*model.Category, error)
	Remove(id uuid.UUID) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo}
}

func (s *categoryService) Create(input CreateCategoryInput) (*model.Category, error) {
	category := &model.Category{Name: input.Name, Description: input.Description}
	if err := s.repo.Create(category); err != nil {
		return nil, apperr.FromStore(err)
	}
	return category, nil
}

func (s *categoryService) FindAll() ([]repository.CategoryWithCount, error) {
	categories, err := s.repo.FindAll()
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return categories, nil
}

func (s *categoryService) FindOne(id uuid.UUID) (*model.Category, error) {
	category, err := s.repo.FindByID(id)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return category, nil
}

func (s *categoryService) Update(id uuid.UUID, input UpdateCategoryInput) (*model.Category, error) {
	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}

	category, err := s.repo.Update(id, fields)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return category, nil
}

func (s *categoryService) Remove(id uuid.UUID) error {
	if err := s.repo.Delete(id); err != nil {
		return apperr.FromStore(err)
	}
	return nil
}
