package db

import (
	"context"
	"strings"
	"time"

	"Gin_postgres_redis_inventory_tracker/ledger"
	"Gin_postgres_redis_inventory_tracker/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Items

func (r *Repo) CreateItem(ctx context.Context, it *models.InventoryItem) error {
	return r.DB.WithContext(ctx).Create(it).Error
}

func (r *Repo) FindItemByID(ctx context.Context, id string) (*models.InventoryItem, error) {
	var it models.InventoryItem
	if err := r.DB.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

// 按分类取，存储顺序返回（排序/搜索交给前端）
func (r *Repo) ListItemsByCategory(ctx context.Context, category string) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.DB.WithContext(ctx).Where("category = ?", category).Find(&items).Error
	return items, err
}

// 更新：原子操作 = 锁住 item → 校验/重算 balance → 写回。
// 同一 item 的并发更新在行锁上排队，history 的差值总是基于已提交的前值。
func (r *Repo) UpdateItem(ctx context.Context, id string, p ledger.ItemPatch, actor string) (*models.InventoryItem, error) {
	var it models.InventoryItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&it, "id = ?", id).Error; err != nil {
			return err
		}
		if err := ledger.ApplyPatch(&it, p, actor, time.Now().UTC()); err != nil {
			return err
		}
		return tx.Save(&it).Error
	})
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *Repo) DeleteItem(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.InventoryItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// 管理页列表（分页 + 关键词 + 过滤）
type AdminItemsQuery struct {
	Q         string
	Category  string
	Condition string // "", "new", "used", "damaged"
	Page      int
	Size      int
}

type AdminItemsResult struct {
	Items []models.InventoryItem `json:"items"`
	Total int64                  `json:"total"`
}

func (r *Repo) ListItemsAdmin(ctx context.Context, q AdminItemsQuery) (AdminItemsResult, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Size <= 0 || q.Size > 100 {
		q.Size = 20
	}

	tx := r.DB.WithContext(ctx).Model(&models.InventoryItem{})
	if kw := strings.TrimSpace(q.Q); kw != "" {
		like := "%" + strings.ToLower(kw) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(item_code) LIKE ?", like, like)
	}
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Condition != "" {
		tx = tx.Where("condition = ?", q.Condition)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return AdminItemsResult{}, err
	}

	var items []models.InventoryItem
	if err := tx.
		Order("created_at DESC").
		Offset((q.Page - 1) * q.Size).
		Limit(q.Size).
		Find(&items).Error; err != nil {
		return AdminItemsResult{}, err
	}
	return AdminItemsResult{Items: items, Total: total}, nil
}
