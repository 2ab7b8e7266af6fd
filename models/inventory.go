package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	InventoryTable       = "inv_inventories"
	CategoryTable        = "inv_categories"
	InventoryAccessTable = "inv_inventory_access"
)

type Category struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Name string `gorm:"uniqueIndex;size:120;not null" json:"name"`
}

type Inventory struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Title       string `gorm:"size:256;not null" json:"title"`
	Description string `gorm:"size:4000" json:"description,omitempty"`
	ImageURL    string `gorm:"size:2048" json:"imageUrl,omitempty"`

	CreatorID  string    `gorm:"type:uuid;index;not null" json:"creatorId"`
	Creator    *User     `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	CategoryID string    `gorm:"type:uuid;index;not null" json:"categoryId"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	IsPublic bool           `gorm:"not null;default:false" json:"isPublic"`
	Tags     pq.StringArray `gorm:"type:text[]" json:"tags,omitempty"`

	// CustomIDFormat holds the serialized ordered element list interpreted
	// by the customid package.
	CustomIDFormat datatypes.JSON `gorm:"type:jsonb" json:"customIdFormat"`

	// Version is compared on every update; a stale value means another
	// writer got there first.
	Version int64 `gorm:"not null;default:1" json:"version"`

	CreatedAt      time.Time  `json:"createdAt"`
	LastModifiedAt *time.Time `json:"lastModifiedAt,omitempty"`

	FieldDefinitions []FieldDefinition `gorm:"foreignKey:InventoryID;constraint:OnDelete:CASCADE" json:"fieldDefinitions,omitempty"`
	Items            []Item            `gorm:"foreignKey:InventoryID;constraint:OnDelete:CASCADE" json:"-"`
	Accesses         []InventoryAccess `gorm:"foreignKey:InventoryID;constraint:OnDelete:CASCADE" json:"-"`
}

// InventoryAccess grants a user write access to someone else's inventory.
type InventoryAccess struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	InventoryID string `gorm:"type:uuid;index:idx_inv_access,unique;not null" json:"inventoryId"`
	UserID      string `gorm:"type:uuid;index:idx_inv_access,unique;not null" json:"userId"`
	User        *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Category) TableName() string        { return CategoryTable }
func (Inventory) TableName() string       { return InventoryTable }
func (InventoryAccess) TableName() string { return InventoryAccessTable }
