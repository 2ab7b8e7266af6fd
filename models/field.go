package models

const FieldDefinitionTable = "inv_field_definitions"

// FieldType is the closed set of custom field types. Adding a type means
// extending the fieldschema validator dispatch as well.
type FieldType string

const (
	FieldString FieldType = "string"
	FieldInt    FieldType = "int"
	FieldBool   FieldType = "bool"
)

type FieldDefinition struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	InventoryID string    `gorm:"type:uuid;index;not null" json:"inventoryId"`
	Title       string    `gorm:"size:50;not null" json:"title"`
	Type        FieldType `gorm:"size:10;not null" json:"type"`
	IsRequired  bool      `gorm:"not null;default:false" json:"isRequired"`
	ShowInTable bool      `gorm:"not null;default:false" json:"showInTable"`
	Description string    `gorm:"size:256" json:"description,omitempty"`

	// Constraints are meaningful only for their matching type; the
	// validator ignores them otherwise.
	ValidationRegex string `gorm:"size:256" json:"validationRegex,omitempty"`
	ValidationMin   string `gorm:"size:50" json:"validationMin,omitempty"`
	ValidationMax   string `gorm:"size:50" json:"validationMax,omitempty"`

	CustomFields []CustomFieldValue `gorm:"foreignKey:FieldDefinitionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (FieldDefinition) TableName() string { return FieldDefinitionTable }
