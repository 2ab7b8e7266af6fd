package db

import (
	"context"
	"errors"
	"testing"

	"Gin_postgres_redis_catalog/fieldschema"
	"Gin_postgres_redis_catalog/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRepo(t *testing.T) (*Repo, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	return NewRepo(gdb), mock
}

func inventoryRows(id string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "custom_id_format", "version"}).
		AddRow(id, "Laptops", []byte(`{"elements":[{"type":"FixedText","value":"L-"},{"type":"Sequence"}]}`), 1)
}

func fieldDefRows(invID string, defs ...models.FieldDefinition) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "inventory_id", "title", "type", "is_required", "validation_regex", "validation_min", "validation_max"})
	for _, d := range defs {
		rows.AddRow(d.ID, invID, d.Title, string(d.Type), d.IsRequired, d.ValidationRegex, d.ValidationMin, d.ValidationMax)
	}
	return rows
}

func TestCreateItem_DuplicateCustomID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "inv_inventories"`).
		WithArgs("inv-1", 1).
		WillReturnRows(inventoryRows("inv-1"))
	mock.ExpectQuery(`SELECT \* FROM "inv_field_definitions"`).
		WillReturnRows(fieldDefRows("inv-1"))
	mock.ExpectExec(`INSERT INTO "inv_items"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.CreateItem(context.Background(), CreateItemInput{
		InventoryID: "inv-1",
		CustomID:    "L-1",
		CreatedByID: "user-1",
	})
	if !errors.Is(err, ErrDuplicateCustomID) {
		t.Fatalf("expected ErrDuplicateCustomID, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateItem_MissingRequiredFieldWritesNothing(t *testing.T) {
	repo, mock := newMockRepo(t)

	required := models.FieldDefinition{ID: "f1", Title: "Serial", Type: models.FieldString, IsRequired: true}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "inv_inventories"`).
		WithArgs("inv-1", 1).
		WillReturnRows(inventoryRows("inv-1"))
	mock.ExpectQuery(`SELECT \* FROM "inv_field_definitions"`).
		WillReturnRows(fieldDefRows("inv-1", required))
	mock.ExpectRollback()

	_, err := repo.CreateItem(context.Background(), CreateItemInput{
		InventoryID: "inv-1",
		CustomID:    "L-1",
		CreatedByID: "user-1",
	})
	var ve *fieldschema.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	// No INSERT was expected; any write would fail ExpectationsWereMet.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateItem_InventoryGone(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "inv_inventories"`).
		WithArgs("nope", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.CreateItem(context.Background(), CreateItemInput{InventoryID: "nope", CustomID: "X"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestUpdateItem_StaleVersion(t *testing.T) {
	repo, mock := newMockRepo(t)

	itemRows := sqlmock.NewRows([]string{"id", "inventory_id", "custom_id", "version"}).
		AddRow("item-1", "inv-1", "L-1", 2)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "inv_items"`).
		WithArgs("item-1", 1).
		WillReturnRows(itemRows)
	mock.ExpectQuery(`SELECT \* FROM "inv_custom_field_values"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "item_id", "field_definition_id"}))
	mock.ExpectQuery(`SELECT \* FROM "inv_inventories"`).
		WithArgs("inv-1", 1).
		WillReturnRows(inventoryRows("inv-1"))
	mock.ExpectQuery(`SELECT \* FROM "inv_field_definitions"`).
		WillReturnRows(fieldDefRows("inv-1"))
	mock.ExpectExec(`UPDATE "inv_items"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.UpdateItem(context.Background(), UpdateItemInput{
		ItemID:          "item-1",
		CustomID:        "L-1",
		ExpectedVersion: 1,
	})
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestUpdateItem_MatchedVersionBumps(t *testing.T) {
	repo, mock := newMockRepo(t)

	itemRows := sqlmock.NewRows([]string{"id", "inventory_id", "custom_id", "version"}).
		AddRow("item-1", "inv-1", "L-1", 1)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "inv_items"`).
		WithArgs("item-1", 1).
		WillReturnRows(itemRows)
	mock.ExpectQuery(`SELECT \* FROM "inv_custom_field_values"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "item_id", "field_definition_id"}))
	mock.ExpectQuery(`SELECT \* FROM "inv_inventories"`).
		WithArgs("inv-1", 1).
		WillReturnRows(inventoryRows("inv-1"))
	mock.ExpectQuery(`SELECT \* FROM "inv_field_definitions"`).
		WillReturnRows(fieldDefRows("inv-1"))
	mock.ExpectExec(`UPDATE "inv_items"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateItem(context.Background(), UpdateItemInput{
		ItemID:          "item-1",
		CustomID:        "L-2",
		ExpectedVersion: 1,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
