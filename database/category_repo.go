package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/errs"
	"github.com/rpupo63/blog-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// List returns all categories in creation order
func (r *CategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&categories).Error; err != nil {
		return nil, errs.NewDatabaseError("list", "categories", err)
	}
	return categories, nil
}

// Get returns a category by its ID
func (r *CategoryRepo) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("category")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "category", err)
	}
	return &category, nil
}

// Create inserts a new category
func (r *CategoryRepo) Create(ctx context.Context, name string) (*models.Category, error) {
	category := models.Category{ID: uuid.New(), Name: name}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&category).Error; err != nil {
		return nil, errs.NewDatabaseError("create", "category", err)
	}
	return &category, nil
}

// Delete removes a category by id. Join rows go with it through the FK cascade.
func (r *CategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{})
	if res.Error != nil {
		return errs.NewDatabaseError("delete", "category", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("category")
	}
	return nil
}

// CountByIDs counts the categories among ids that exist
func (r *CategoryRepo) CountByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return 0, errs.NewDatabaseError("count", "categories", err)
	}
	return count, nil
}

// FindByIDs returns the categories among ids that exist
func (r *CategoryRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Category, error) {
	if len(ids) == 0 {
		return []models.Category{}, nil
	}
	var categories []models.Category
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "categories", err)
	}
	return categories, nil
}
