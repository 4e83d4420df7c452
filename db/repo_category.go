package db

import (
	"context"
	"errors"
	"strings"

	"Gin_postgres_redis_inventory_tracker/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCategoryExists = errors.New("category already exists")

// Categories

// 创建前先查重（大小写不敏感），LOWER(name) 唯一索引兜底
func (r *Repo) CreateCategory(ctx context.Context, name, createdBy string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	cat := &models.Category{ID: uuid.NewString(), Name: name, CreatedBy: createdBy}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Category{}).
			Where("LOWER(name) = LOWER(?)", name).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrCategoryExists
		}
		return tx.Create(cat).Error
	})
	if err != nil {
		return nil, err
	}
	return cat, nil
}

func (r *Repo) RenameCategory(ctx context.Context, id, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	var cat models.Category
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&cat, "id = ?", id).Error; err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&models.Category{}).
			Where("LOWER(name) = LOWER(?) AND id <> ?", name, id).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrCategoryExists
		}
		cat.Name = name
		return tx.Save(&cat).Error
	})
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *Repo) DeleteCategory(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&cats).Error
	return cats, err
}

func (r *Repo) FindCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).First(&cat, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}
