package db

import (
	"Gin_postgres_redis_catalog/customid"
	"Gin_postgres_redis_catalog/fieldschema"
	"Gin_postgres_redis_catalog/models"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Items

func (r *Repo) FindItemByID(ctx context.Context, id string) (*models.Item, error) {
	var it models.Item
	if err := r.DB.WithContext(ctx).
		Preload("CreatedBy").
		Preload("CustomFields").
		First(&it, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &it, nil
}

func (r *Repo) ListItemsByInventory(ctx context.Context, inventoryID string) ([]models.Item, error) {
	var items []models.Item
	err := r.DB.WithContext(ctx).
		Preload("CustomFields").
		Where("inventory_id = ?", inventoryID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *Repo) CountItems(ctx context.Context, inventoryID string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Item{}).
		Where("inventory_id = ?", inventoryID).
		Count(&n).Error
	return n, err
}

// GenerateCustomID interprets the inventory's stored format against the
// current item count. Exposed for previews; CreateItem runs the same steps
// inside its transaction.
func (r *Repo) GenerateCustomID(ctx context.Context, inventoryID string) (string, error) {
	var inv models.Inventory
	if err := r.DB.WithContext(ctx).First(&inv, "id = ?", inventoryID).Error; err != nil {
		return "", notFound(err)
	}
	format, err := customid.Parse(inv.CustomIDFormat)
	if err != nil {
		return "", err
	}
	count, err := r.CountItems(ctx, inventoryID)
	if err != nil {
		return "", err
	}
	var gen customid.Generator
	return gen.Generate(format, count)
}

type CreateItemInput struct {
	InventoryID string
	CustomID    string // empty means generate from the inventory's format
	CreatedByID string
	Values      []models.CustomFieldValue
}

// CreateItem runs the item write path: required fields present, every value
// valid against its definition, custom ID resolved, then item plus values
// persisted as one unit. A duplicate custom ID comes back as
// ErrDuplicateCustomID; the ID is never silently regenerated.
func (r *Repo) CreateItem(ctx context.Context, in CreateItemInput) (*models.Item, error) {
	var created *models.Item
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv models.Inventory
		if err := tx.Preload("FieldDefinitions").
			First(&inv, "id = ?", in.InventoryID).Error; err != nil {
			return notFound(err)
		}

		if err := fieldschema.CheckRequired(inv.FieldDefinitions, in.Values); err != nil {
			return err
		}
		if err := fieldschema.ValidateAll(inv.FieldDefinitions, in.Values); err != nil {
			return err
		}

		customID := in.CustomID
		if customID == "" {
			format, err := customid.Parse(inv.CustomIDFormat)
			if err != nil {
				return err
			}
			var count int64
			if err := tx.Model(&models.Item{}).
				Where("inventory_id = ?", in.InventoryID).
				Count(&count).Error; err != nil {
				return err
			}
			var gen customid.Generator
			customID, err = gen.Generate(format, count)
			if err != nil {
				return err
			}
		}

		item := models.Item{
			ID:          uuid.NewString(),
			InventoryID: in.InventoryID,
			CustomID:    customID,
			CreatedByID: in.CreatedByID,
		}
		for i := range in.Values {
			in.Values[i].ID = uuid.NewString()
			in.Values[i].ItemID = item.ID
		}
		item.CustomFields = in.Values

		if err := tx.Create(&item).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateCustomID
			}
			return err
		}
		created = &item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

type UpdateItemInput struct {
	ItemID          string
	CustomID        string
	ExpectedVersion int64
	// Values is the full replacement set: stored values absent from it are
	// removed, matches are updated in place, new entries are inserted.
	Values []models.CustomFieldValue
}

func (r *Repo) UpdateItem(ctx context.Context, in UpdateItemInput) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.Item
		if err := tx.Preload("CustomFields").First(&item, "id = ?", in.ItemID).Error; err != nil {
			return notFound(err)
		}
		var inv models.Inventory
		if err := tx.Preload("FieldDefinitions").
			First(&inv, "id = ?", item.InventoryID).Error; err != nil {
			return notFound(err)
		}

		if err := fieldschema.CheckRequired(inv.FieldDefinitions, in.Values); err != nil {
			return err
		}
		if err := fieldschema.ValidateAll(inv.FieldDefinitions, in.Values); err != nil {
			return err
		}

		// CAS before touching the value rows; a stale version means someone
		// else wrote in between and the caller has to reload.
		res := tx.Model(&models.Item{}).
			Where("id = ? AND version = ?", in.ItemID, in.ExpectedVersion).
			Updates(map[string]interface{}{
				"custom_id": in.CustomID,
				"version":   gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			if isUniqueViolation(res.Error) {
				return ErrDuplicateCustomID
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}

		return syncCustomFieldValues(tx, &item, in.Values)
	})
}

func syncCustomFieldValues(tx *gorm.DB, item *models.Item, proposed []models.CustomFieldValue) error {
	incoming := make(map[string]*models.CustomFieldValue, len(proposed))
	for i := range proposed {
		incoming[proposed[i].FieldDefinitionID] = &proposed[i]
	}

	for i := range item.CustomFields {
		existing := &item.CustomFields[i]
		v, ok := incoming[existing.FieldDefinitionID]
		if !ok {
			if err := tx.Delete(&models.CustomFieldValue{}, "id = ?", existing.ID).Error; err != nil {
				return err
			}
			continue
		}
		if err := tx.Model(&models.CustomFieldValue{}).
			Where("id = ?", existing.ID).
			Updates(map[string]interface{}{
				"string_value": v.StringValue,
				"int_value":    v.IntValue,
				"bool_value":   v.BoolValue,
			}).Error; err != nil {
			return err
		}
		delete(incoming, existing.FieldDefinitionID)
	}

	for _, v := range incoming {
		v.ID = uuid.NewString()
		v.ItemID = item.ID
		if err := tx.Create(v).Error; err != nil {
			return err
		}
	}
	return nil
}

// DeleteItem is idempotent; values, comments and likes cascade.
func (r *Repo) DeleteItem(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Delete(&models.Item{ID: id}).Error
}
