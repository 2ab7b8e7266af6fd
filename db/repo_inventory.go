package db

import (
	"Gin_postgres_redis_catalog/customid"
	"Gin_postgres_redis_catalog/models"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Inventories

func (r *Repo) CreateInventory(ctx context.Context, inv *models.Inventory) error {
	if len(inv.CustomIDFormat) == 0 {
		raw, err := json.Marshal(customid.DefaultFormat())
		if err != nil {
			return err
		}
		inv.CustomIDFormat = raw
	}
	for i := range inv.FieldDefinitions {
		if inv.FieldDefinitions[i].ID == "" {
			inv.FieldDefinitions[i].ID = uuid.NewString()
		}
		inv.FieldDefinitions[i].InventoryID = inv.ID
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cat models.Category
		if err := tx.First(&cat, "id = ?", inv.CategoryID).Error; err != nil {
			return notFound(err)
		}
		return tx.Create(inv).Error
	})
}

func (r *Repo) FindInventoryByID(ctx context.Context, id string) (*models.Inventory, error) {
	var inv models.Inventory
	if err := r.DB.WithContext(ctx).
		Preload("Creator").
		Preload("Category").
		Preload("FieldDefinitions").
		First(&inv, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &inv, nil
}

// FindInventoryWithAccess also loads the write-access grants, for the
// permission check on item writes.
func (r *Repo) FindInventoryWithAccess(ctx context.Context, id string) (*models.Inventory, error) {
	var inv models.Inventory
	if err := r.DB.WithContext(ctx).
		Preload("FieldDefinitions").
		Preload("Accesses").
		First(&inv, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &inv, nil
}

// InventoryRow is the browse-list shape: inventory plus creator name and
// item count, computed in SQL.
type InventoryRow struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	IsPublic        bool      `json:"isPublic"`
	CreatorID       string    `json:"creatorId"`
	CreatorUsername string    `json:"creatorUsername"`
	ItemCount       int64     `json:"itemCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (r *Repo) ListLatestInventories(ctx context.Context, count int) ([]InventoryRow, error) {
	return r.listInventories(ctx, count, "i.created_at DESC")
}

func (r *Repo) ListPopularInventories(ctx context.Context, count int) ([]InventoryRow, error) {
	return r.listInventories(ctx, count, "item_count DESC")
}

func (r *Repo) listInventories(ctx context.Context, count int, order string) ([]InventoryRow, error) {
	if count <= 0 || count > 100 {
		count = 10
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
		Joins("JOIN " + models.UserTable + " u ON u.id = i.creator_id").
		Order(order).
		Limit(count).
		Scan(&rows).Error
	return rows, err
}

type UpdateInventoryInput struct {
	Title           string
	Description     string
	ImageURL        string
	CategoryID      string
	IsPublic        bool
	Tags            []string
	CustomIDFormat  []byte // nil keeps the stored format
	ExpectedVersion int64
	// Fields is the full replacement schema: entries with an ID update the
	// matching definition, entries without one are inserted, stored
	// definitions absent from the list are removed (their values cascade).
	Fields []models.FieldDefinition
}

func (r *Repo) UpdateInventory(ctx context.Context, inventoryID string, in UpdateInventoryInput) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv models.Inventory
		if err := tx.Preload("FieldDefinitions").First(&inv, "id = ?", inventoryID).Error; err != nil {
			return notFound(err)
		}

		updates := map[string]interface{}{
			"title":            in.Title,
			"description":      in.Description,
			"image_url":        in.ImageURL,
			"category_id":      in.CategoryID,
			"is_public":        in.IsPublic,
			"tags":             pq.StringArray(in.Tags),
			"last_modified_at": time.Now().UTC(),
			"version":          gorm.Expr("version + 1"),
		}
		if in.CustomIDFormat != nil {
			updates["custom_id_format"] = in.CustomIDFormat
		}

		// Compare-and-swap on the version read by the caller; losing the
		// race is reported, never merged.
		res := tx.Model(&models.Inventory{}).
			Where("id = ? AND version = ?", inventoryID, in.ExpectedVersion).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}

		return syncFieldDefinitions(tx, &inv, in.Fields)
	})
}

func syncFieldDefinitions(tx *gorm.DB, inv *models.Inventory, proposed []models.FieldDefinition) error {
	keep := make(map[string]struct{}, len(proposed))
	for i := range proposed {
		if proposed[i].ID != "" {
			keep[proposed[i].ID] = struct{}{}
		}
	}

	for i := range inv.FieldDefinitions {
		existing := &inv.FieldDefinitions[i]
		if _, ok := keep[existing.ID]; ok {
			continue
		}
		// Removing a definition drops its values on every item.
		if err := tx.Delete(&models.FieldDefinition{}, "id = ?", existing.ID).Error; err != nil {
			return err
		}
	}

	for i := range proposed {
		f := &proposed[i]
		f.InventoryID = inv.ID
		if f.ID == "" {
			f.ID = uuid.NewString()
			if err := tx.Create(f).Error; err != nil {
				return err
			}
			continue
		}
		res := tx.Model(&models.FieldDefinition{}).
			Where("id = ? AND inventory_id = ?", f.ID, inv.ID).
			Updates(map[string]interface{}{
				"title":            f.Title,
				"type":             f.Type,
				"is_required":      f.IsRequired,
				"show_in_table":    f.ShowInTable,
				"description":      f.Description,
				"validation_regex": f.ValidationRegex,
				"validation_min":   f.ValidationMin,
				"validation_max":   f.ValidationMax,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
	}
	return nil
}

// DeleteInventory is idempotent; fields, items, values, comments and likes
// go with it through the FK cascades.
func (r *Repo) DeleteInventory(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Delete(&models.Inventory{ID: id}).Error
}

// Access grants

func (r *Repo) GrantAccess(ctx context.Context, inventoryID, userID string) error {
	acc := models.InventoryAccess{ID: uuid.NewString(), InventoryID: inventoryID, UserID: userID}
	if err := r.DB.WithContext(ctx).Create(&acc).Error; err != nil {
		if isUniqueViolation(err) {
			return nil // already granted
		}
		return err
	}
	return nil
}

func (r *Repo) RevokeAccess(ctx context.Context, inventoryID, userID string) error {
	return r.DB.WithContext(ctx).
		Where("inventory_id = ? AND user_id = ?", inventoryID, userID).
		Delete(&models.InventoryAccess{}).Error
}

func (r *Repo) HasWriteAccess(ctx context.Context, inventoryID, userID string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.InventoryAccess{}).
		Where("inventory_id = ? AND user_id = ?", inventoryID, userID).
		Count(&n).Error
	return n > 0, err
}

// Categories

func (r *Repo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	err := r.DB.WithContext(ctx).Order("name").Find(&cats).Error
	return cats, err
}

func (r *Repo) EnsureCategory(ctx context.Context, name string) (*models.Category, error) {
	var cat models.Category
	err := r.DB.WithContext(ctx).Where("name = ?", name).First(&cat).Error
	if err == nil {
		return &cat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	cat = models.Category{ID: uuid.NewString(), Name: name}
	if err := r.DB.WithContext(ctx).Create(&cat).Error; err != nil {
		if isUniqueViolation(err) {
			return r.EnsureCategory(ctx, name)
		}
		return nil, err
	}
	return &cat, nil
}
