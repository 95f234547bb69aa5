package repository

import (
	"errors"

	"go-products-ms/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductFilters narrows product listings. EnterpriseID is mandatory; the
// rest are optional.
type ProductFilters struct {
	EnterpriseID uuid.UUID
	Search       string
	CategoryID   *uuid.UUID
	AllergenID   *uuid.UUID
}

// StockWrite is one item of an atomic stock update batch.
type StockWrite struct {
	ID       uuid.UUID
	NewStock decimal.Decimal
}

type ProductRepository interface {
	Create(product *model.Product, allergenIDs []uuid.UUID) (*model.Product, error)
	FindAll(filters ProductFilters) ([]model.Product, error)
	FindByID(id uuid.UUID, enterpriseID *uuid.UUID) (*model.Product, error)
	Update(id uuid.UUID, fields map[string]interface{}, allergenIDs []uuid.UUID, replaceAllergens bool) (*model.Product, error)
	Delete(id uuid.UUID) error
	FindByEAN(ean string, enterpriseID uuid.UUID) (*model.Product, error)
	FindByNameCI(name string, enterpriseID uuid.UUID) (*model.Product, error)
	FindByIDs(ids []uuid.UUID) ([]model.Product, error)
	UpdateStockAtomic(writes []StockWrite) ([]model.Product, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) preload(db *gorm.DB) *gorm.DB {
	return db.Preload("Category").Preload("Allergens.Allergen")
}

func (r *productRepo) Create(product *model.Product, allergenIDs []uuid.UUID) (*model.Product, error) {
	for _, allergenID := range allergenIDs {
		product.Allergens = append(product.Allergens, model.ProductAllergen{AllergenID: allergenID})
	}
	if err := r.db.Create(product).Error; err != nil {
		return nil, err
	}
	return r.findByID(product.ID)
}

func (r *productRepo) FindAll(filters ProductFilters) ([]model.Product, error) {
	query := r.preload(r.db).Where("enterprise_id = ?", filters.EnterpriseID)

	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(ean_code) LIKE LOWER(?)",
			like, like, like,
		)
	}
	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.AllergenID != nil {
		query = query.Where(
			"id IN (SELECT product_id FROM product_allergens WHERE allergen_id = ?)",
			*filters.AllergenID,
		)
	}

	var products []model.Product
	err := query.Order("name asc").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID, enterpriseID *uuid.UUID) (*model.Product, error) {
	query := r.preload(r.db).Where("id = ?", id)
	if enterpriseID != nil {
		query = query.Where("enterprise_id = ?", *enterpriseID)
	}

	var product model.Product
	if err := query.First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) findByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.preload(r.db).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Update applies a partial field update; when replaceAllergens is set the
// association rows are deleted and recreated in the same transaction.
func (r *productRepo) Update(id uuid.UUID, fields map[string]interface{}, allergenIDs []uuid.UUID, replaceAllergens bool) (*model.Product, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			return err
		}

		if replaceAllergens {
			if err := tx.Where("product_id = ?", id).Delete(&model.ProductAllergen{}).Error; err != nil {
				return err
			}
			for _, allergenID := range allergenIDs {
				row := model.ProductAllergen{ProductID: id, AllergenID: allergenID}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}

		if len(fields) > 0 {
			if err := tx.Model(&model.Product{}).Where("id = ?", id).Updates(fields).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.findByID(id)
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductAllergen{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Product{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *productRepo) FindByEAN(ean string, enterpriseID uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.preload(r.db).
		Where("ean_code = ? AND enterprise_id = ?", ean, enterpriseID).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByNameCI(name string, enterpriseID uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.preload(r.db).
		Where("LOWER(name) = LOWER(?) AND enterprise_id = ?", name, enterpriseID).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByIDs(ids []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("id IN ?", ids).Find(&products).Error
	return products, err
}

// UpdateStockAtomic commits every write or none of them. A write referencing
// a vanished row aborts the whole batch.
func (r *productRepo) UpdateStockAtomic(writes []StockWrite) ([]model.Product, error) {
	updated := make([]model.Product, 0, len(writes))
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, write := range writes {
			result := tx.Model(&model.Product{}).
				Where("id = ?", write.ID).
				Update("stock", write.NewStock)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}

			var product model.Product
			if err := tx.First(&product, "id = ?", write.ID).Error; err != nil {
				return err
			}
			updated = append(updated, product)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
