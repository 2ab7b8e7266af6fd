package models

import "time"

const (
	ItemTable             = "inv_items"
	CustomFieldValueTable = "inv_custom_field_values"
)

type Item struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	InventoryID string `gorm:"type:uuid;index;not null" json:"inventoryId"`

	// CustomID is unique per inventory; the composite unique index created
	// in db.Migrate is the backstop for concurrent creations.
	CustomID string `gorm:"size:50;not null" json:"customId"`

	CreatedByID string `gorm:"type:uuid;index;not null" json:"createdById"`
	CreatedBy   *User  `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`

	Version   int64     `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	CustomFields []CustomFieldValue `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"customFields,omitempty"`
	Comments     []Comment          `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"-"`
	Likes        []Like             `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"-"`
}

// CustomFieldValue carries exactly one populated slot matching its
// definition's type; the other two stay null.
type CustomFieldValue struct {
	ID                string `gorm:"primaryKey;type:uuid" json:"id"`
	ItemID            string `gorm:"type:uuid;index;not null" json:"itemId"`
	FieldDefinitionID string `gorm:"type:uuid;index;not null" json:"fieldDefinitionId"`

	StringValue *string `gorm:"size:256" json:"stringValue,omitempty"`
	IntValue    *int64  `json:"intValue,omitempty"`
	BoolValue   *bool   `json:"boolValue,omitempty"`
}

func (Item) TableName() string             { return ItemTable }
func (CustomFieldValue) TableName() string { return CustomFieldValueTable }
