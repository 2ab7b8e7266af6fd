package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound: the referenced inventory/item/user does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateCustomID: the (inventory, custom id) pair already exists.
	// Surfaced to the caller as-is; the write is not retried with a fresh ID.
	ErrDuplicateCustomID = errors.New("duplicate custom id")

	// ErrVersionConflict: the row changed since the caller read it. The
	// caller reloads and retries manually; nothing is merged.
	ErrVersionConflict = errors.New("version conflict")

	// ErrDuplicateUser: username or email already taken.
	ErrDuplicateUser = errors.New("username or email already exists")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// notFound maps gorm's sentinel onto ours so callers never import gorm.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
