package app

import (
	"Gin_postgres_redis_catalog/db"
	"Gin_postgres_redis_catalog/session"
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Aliases so handlers stay short.
type Ctx = gin.Context
type H = gin.H

// App aggregates the shared dependencies.
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Config Config

	appSess *session.AppSessionStore
}

// Config comes from environment variables.
type Config struct {
	RedisAddr  string
	RedisPwd   string
	WebOrigin  string
	SessionTTL time.Duration

	// TopValuesCount bounds the most-popular-values ranking in field
	// statistics.
	TopValuesCount       int
	LatestInventoryCount int

	// Bootstrap credentials for the first admin account.
	AdminEmail    string
	AdminPassword string
}

func (a *App) AppSessions() *session.AppSessionStore { return a.appSess }

func MustNew() *App {
	cfg := loadConfig()

	dbConn := db.ConnectDB()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	r := gin.Default()
	useCORS(r, cfg.WebOrigin)
	a := &App{
		Router: r, DB: dbConn, RDB: rdb, Config: cfg,
		appSess: session.NewAppSessionStore(rdb, cfg.SessionTTL),
	}
	return a
}

func (a *App) Close() { _ = a.RDB.Close() }

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}
	getInt := func(k string, def int) int {
		if n, err := strconv.Atoi(os.Getenv(k)); err == nil && n > 0 {
			return n
		}
		return def
	}

	ttl := 24 * time.Hour
	if n, err := strconv.Atoi(os.Getenv("SESSION_TTL_SECONDS")); err == nil && n > 0 {
		ttl = time.Duration(n) * time.Second
	}

	return Config{
		RedisAddr:            get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:             os.Getenv("REDIS_PASSWORD"),
		WebOrigin:            get("WEB_ORIGIN", "http://localhost:3000"),
		SessionTTL:           ttl,
		TopValuesCount:       getInt("TOP_VALUES_COUNT", 5),
		LatestInventoryCount: getInt("LATEST_INVENTORY_COUNT", 10),
		AdminEmail:           os.Getenv("ADMIN_EMAIL"),
		AdminPassword:        os.Getenv("ADMIN_PASSWORD"),
	}
}
