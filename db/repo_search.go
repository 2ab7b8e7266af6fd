package db

import (
	"Gin_postgres_redis_catalog/models"
	"context"
	"strings"
)

// prefixQuery turns free text into a prefix-matching tsquery
// ("red chai" -> "red:* & chai:*").
func prefixQuery(q string) string {
	words := strings.Fields(q)
	for i, w := range words {
		words[i] = w + ":*"
	}
	return strings.Join(words, " & ")
}

type ItemSearchRow struct {
	ID             string `json:"id"`
	InventoryID    string `json:"inventoryId"`
	CustomID       string `json:"customId"`
	InventoryTitle string `json:"inventoryTitle"`
}

// SearchInventories matches against the generated tsvector column kept up
// to date by db.Migrate.
func (r *Repo) SearchInventories(ctx context.Context, q string) ([]InventoryRow, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	var rows []InventoryRow
	err := r.DB.WithContext(ctx).
		Table(models.InventoryTable+" i").
		Select(`
			i.id, i.title, i.description, i.image_url, i.is_public,
			i.creator_id, i.created_at,
			u.username AS creator_username,
			(SELECT COUNT(*) FROM `+models.ItemTable+` it WHERE it.inventory_id = i.id) AS item_count
		`).
		Joins("JOIN "+models.UserTable+" u ON u.id = i.creator_id").
		Where("i.search_vector @@ to_tsquery('english', ?)", prefixQuery(q)).
		Order("i.created_at DESC").
		Limit(50).
		Scan(&rows).Error
	return rows, err
}

func (r *Repo) SearchItems(ctx context.Context, q string) ([]ItemSearchRow, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	var rows []ItemSearchRow
	err := r.DB.WithContext(ctx).
		Table(models.ItemTable+" it").
		Select("it.id, it.inventory_id, it.custom_id, i.title AS inventory_title").
		Joins("JOIN "+models.InventoryTable+" i ON i.id = it.inventory_id").
		Where("it.search_vector @@ to_tsquery('english', ?)", prefixQuery(q)).
		Order("it.created_at DESC").
		Limit(50).
		Scan(&rows).Error
	return rows, err
}
