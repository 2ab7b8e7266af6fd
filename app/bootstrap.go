// app/bootstrap.go
package app

import (
	"context"
	"log"

	"Gin_postgres_redis_catalog/db"
	"Gin_postgres_redis_catalog/models"

	"github.com/google/uuid"
	"github.com/hlandau/passlib"
)

// BootstrapFirstAdmin seeds the first admin account from ADMIN_EMAIL /
// ADMIN_PASSWORD when no admin exists yet. Safe to run on every start.
func BootstrapFirstAdmin(ctx context.Context, cfg Config, repo *db.Repo) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}
	n, err := repo.CountAdmins(ctx)
	if err != nil {
		log.Printf("bootstrap admin check failed: %v", err)
		return
	}
	if n > 0 {
		return
	}

	hash, err := passlib.Hash(cfg.AdminPassword)
	if err != nil {
		log.Printf("bootstrap admin hash failed: %v", err)
		return
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Username:     cfg.AdminEmail,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := repo.CreateUser(ctx, u); err != nil {
		log.Printf("bootstrap admin create failed: %v", err)
		return
	}
	log.Printf("[BOOTSTRAP] No admin found, created admin account for %s", cfg.AdminEmail)
}
