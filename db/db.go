package db

import (
	"Gin_postgres_redis_catalog/models"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Inventory{},
		&models.InventoryAccess{},
		&models.FieldDefinition{},
		&models.Item{},
		&models.CustomFieldValue{},
		&models.Comment{},
		&models.Like{},
	); err != nil {
		return err
	}

	// Custom IDs are unique per inventory; concurrent creations race on the
	// sequence element and this index is what settles it.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_inventory_custom_id
	  ON %s (inventory_id, custom_id);
	`, models.ItemTable, models.ItemTable)).Error; err != nil {
		return err
	}

	// At most one value row per (item, field definition).
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_item_field
	  ON %s (item_id, field_definition_id);
	`, models.CustomFieldValueTable, models.CustomFieldValueTable)).Error; err != nil {
		return err
	}

	return migrateSearchVectors(db)
}

// migrateSearchVectors maintains the generated tsvector columns consumed by
// the queries in repo_search.go.
func migrateSearchVectors(db *gorm.DB) error {
	stmts := []string{
		fmt.Sprintf(`
		  ALTER TABLE %s ADD COLUMN IF NOT EXISTS search_vector tsvector
		  GENERATED ALWAYS AS (
		    to_tsvector('english', coalesce(title,'') || ' ' || coalesce(description,''))
		  ) STORED;
		`, models.InventoryTable),
		fmt.Sprintf(`
		  CREATE INDEX IF NOT EXISTS %s_search_vector
		  ON %s USING GIN (search_vector);
		`, models.InventoryTable, models.InventoryTable),
		fmt.Sprintf(`
		  ALTER TABLE %s ADD COLUMN IF NOT EXISTS search_vector tsvector
		  GENERATED ALWAYS AS (to_tsvector('english', coalesce(custom_id,''))) STORED;
		`, models.ItemTable),
		fmt.Sprintf(`
		  CREATE INDEX IF NOT EXISTS %s_search_vector
		  ON %s USING GIN (search_vector);
		`, models.ItemTable, models.ItemTable),
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			return err
		}
	}
	return nil
}
