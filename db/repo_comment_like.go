package db

import (
	"Gin_postgres_redis_catalog/models"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comments

func (r *Repo) ListComments(ctx context.Context, itemID string) ([]models.Comment, error) {
	var cs []models.Comment
	err := r.DB.WithContext(ctx).
		Preload("User").
		Where("item_id = ?", itemID).
		Order("created_at ASC").
		Find(&cs).Error
	return cs, err
}

func (r *Repo) AddComment(ctx context.Context, itemID, userID, text string) (*models.Comment, error) {
	var comment models.Comment
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.Item
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			return notFound(err)
		}
		comment = models.Comment{
			ID:     uuid.NewString(),
			ItemID: itemID,
			UserID: userID,
			Text:   text,
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		var u models.User
		if err := tx.First(&u, "id = ?", userID).Error; err != nil {
			return err
		}
		comment.User = &u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Likes

// ToggleLike adds a like when none exists, removes it otherwise. Returns
// whether the item is liked by the user afterwards.
func (r *Repo) ToggleLike(ctx context.Context, itemID, userID string) (bool, error) {
	liked := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.Item
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			return notFound(err)
		}
		var existing models.Like
		err := tx.Where("item_id = ? AND user_id = ?", itemID, userID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			like := models.Like{ID: uuid.NewString(), ItemID: itemID, UserID: userID}
			if err := tx.Create(&like).Error; err != nil {
				// Concurrent double-tap hits the unique pair index; treat
				// it as already liked.
				if isUniqueViolation(err) {
					liked = true
					return nil
				}
				return err
			}
			liked = true
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Delete(&existing).Error
	})
	return liked, err
}

func (r *Repo) CountLikes(ctx context.Context, itemID string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Like{}).
		Where("item_id = ?", itemID).
		Count(&n).Error
	return n, err
}

func (r *Repo) IsLiked(ctx context.Context, itemID, userID string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Like{}).
		Where("item_id = ? AND user_id = ?", itemID, userID).
		Count(&n).Error
	return n > 0, err
}
