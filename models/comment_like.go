package models

import "time"

const (
	CommentTable = "inv_comments"
	LikeTable    = "inv_likes"
)

type Comment struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	ItemID    string    `gorm:"type:uuid;index;not null" json:"itemId"`
	UserID    string    `gorm:"type:uuid;index;not null" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Text      string    `gorm:"size:2048;not null" json:"text"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

type Like struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	ItemID string `gorm:"type:uuid;index:idx_item_user_like,unique;not null" json:"itemId"`
	UserID string `gorm:"type:uuid;index:idx_item_user_like,unique;not null" json:"userId"`
}

func (Comment) TableName() string { return CommentTable }
func (Like) TableName() string    { return LikeTable }
