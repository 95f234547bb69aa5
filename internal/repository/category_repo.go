package repository

import (
	"errors"

	"go-products-ms/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryWithCount is a listing row carrying the number of products that
// reference the category.
type CategoryWithCount struct {
	model.Category
	ProductsCount int64 `json:"productsCount"`
}

type CategoryRepository interface {
	Create(category *model.Category) error
	FindAll() ([]CategoryWithCount, error)
	FindByID(id uuid.UUID) (*model.Category, error)
	Update(id uuid.UUID, fields map[string]interface{}) (*model.Category, error)
	Delete(id uuid.UUID) error
	FindByNameContainsCI(text string) (*model.Category, error)
	FindByNameEqualsCI(text string) (*model.Category, error)
	ListNames() ([]string, error)
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) Create(category *model.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepo) FindAll() ([]CategoryWithCount, error) {
	var rows []CategoryWithCount
	err := r.db.Model(&model.Category{}).
		Select("categories.*, (SELECT COUNT(*) FROM products WHERE products.category_id = categories.id) AS products_count").
		Order("name asc").
		Find(&rows).Error
	return rows, err
}

func (r *categoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.Preload("Products").First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) Update(id uuid.UUID, fields map[string]interface{}) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&category).Updates(fields).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) Delete(id uuid.UUID) error {
	result := r.db.Delete(&model.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *categoryRepo) FindByNameContainsCI(text string) (*model.Category, error) {
	var category model.Category
	err := r.db.
		Where("LOWER(name) LIKE LOWER(?)", "%"+text+"%").
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) FindByNameEqualsCI(text string) (*model.Category, error) {
	var category model.Category
	err := r.db.
		Where("LOWER(name) = LOWER(?)", text).
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) ListNames() ([]string, error) {
	var names []string
	err := r.db.Model(&model.Category{}).Order("name asc").Pluck("name", &names).Error
	return names, err
}
