package repository

import (
	"go-products-ms/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AllergenRepository interface {
	Create(allergen *model.Allergen) error
	FindAll() ([]model.Allergen, error)
	FindByID(id uuid.UUID) (*model.Allergen, error)
	Update(id uuid.UUID, fields map[string]interface{}) (*model.Allergen, error)
	Delete(id uuid.UUID) error
	FindByCodes(codes []string) ([]model.Allergen, error)
}

type allergenRepo struct {
	db *gorm.DB
}

func NewAllergenRepo(db *gorm.DB) AllergenRepository {
	return &allergenRepo{db}
}

func (r *allergenRepo) Create(allergen *model.Allergen) error {
	return r.db.Create(allergen).Error
}

func (r *allergenRepo) FindAll() ([]model.Allergen, error) {
	var allergens []model.Allergen
	err := r.db.Order("name asc").Find(&allergens).Error
	return allergens, err
}

func (r *allergenRepo) FindByID(id uuid.UUID) (*model.Allergen, error) {
	var allergen model.Allergen
	if err := r.db.First(&allergen, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &allergen, nil
}

func (r *allergenRepo) Update(id uuid.UUID, fields map[string]interface{}) (*model.Allergen, error) {
	var allergen model.Allergen
	if err := r.db.First(&allergen, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&allergen).Updates(fields).Error; err != nil {
		return nil, err
	}
	return &allergen, nil
}

func (r *allergenRepo) Delete(id uuid.UUID) error {
	result := r.db.Delete(&model.Allergen{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *allergenRepo) FindByCodes(codes []string) ([]model.Allergen, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	var allergens []model.Allergen
	err := r.db.Where("code IN ?", codes).Find(&allergens).Error
	return allergens, err
}
