package db

import (
	"Gin_postgres_redis_catalog/models"
	"Gin_postgres_redis_catalog/stats"
	"context"
)

// GetInventoryStats loads every custom field value of the inventory's items
// and folds them through the stats package.
func (r *Repo) GetInventoryStats(ctx context.Context, inventoryID string, topK int) (*stats.InventoryStats, error) {
	var inv models.Inventory
	if err := r.DB.WithContext(ctx).
		Preload("FieldDefinitions").
		First(&inv, "id = ?", inventoryID).Error; err != nil {
		return nil, notFound(err)
	}

	total, err := r.CountItems(ctx, inventoryID)
	if err != nil {
		return nil, err
	}

	var values []models.CustomFieldValue
	if err := r.DB.WithContext(ctx).
		Table(models.CustomFieldValueTable+" v").
		Select("v.*").
		Joins("JOIN "+models.ItemTable+" i ON i.id = v.item_id").
		Where("i.inventory_id = ?", inventoryID).
		Order("v.id").
		Scan(&values).Error; err != nil {
		return nil, err
	}

	return &stats.InventoryStats{
		TotalItems: total,
		Fields:     stats.Compute(inv.FieldDefinitions, values, topK),
	}, nil
}
