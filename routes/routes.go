package routes

import (
	"Gin_postgres_redis_catalog/app"
	"Gin_postgres_redis_catalog/controllers"
	"time"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	authCtl := controllers.NewAuthController(s)
	userCtl := controllers.NewUserController(s)
	invCtl := controllers.NewInventoryController(s)
	itemCtl := controllers.NewItemController(s)
	clCtl := controllers.NewCommentLikeController(s)
	searchCtl := controllers.NewSearchController(s)

	authMW := app.AuthRequired(a.AppSessions(), s.Repo)
	adminMW := app.AdminOnly()
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// ------------------------------
	// Auth
	// ------------------------------
	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
	}
	authed := auth.Group("", authMW, seenMW)
	{
		authed.POST("/logout", authCtl.Logout)
		authed.GET("/whoami", authCtl.Whoami)
	}

	// ------------------------------
	// Public browsing
	// ------------------------------
	pub := r.Group("/api")
	{
		pub.GET("/inventories", invCtl.List)
		pub.GET("/inventories/:id", invCtl.Get)
		pub.GET("/inventories/:id/items", itemCtl.ListByInventory)
		pub.GET("/inventories/:id/stats", invCtl.Stats)
		pub.GET("/items/:id", itemCtl.Get)
		pub.GET("/items/:id/comments", clCtl.ListComments)
		pub.GET("/categories", invCtl.ListCategories)
		pub.GET("/search", searchCtl.Search)
	}

	// ------------------------------
	// Authenticated writes
	// ------------------------------
	api := r.Group("/api", authMW, seenMW)
	{
		api.POST("/inventories", invCtl.Create)
		api.PUT("/inventories/:id", invCtl.Update)
		api.DELETE("/inventories/:id", invCtl.Delete)
		api.POST("/inventories/:id/access", invCtl.GrantAccess)
		api.DELETE("/inventories/:id/access/:userId", invCtl.RevokeAccess)

		api.POST("/inventories/:id/items", itemCtl.Create)
		api.PUT("/items/:id", itemCtl.Update)
		api.DELETE("/items/:id", itemCtl.Delete)

		api.POST("/items/:id/like", clCtl.ToggleLike)
		api.POST("/items/:id/comments", clCtl.AddComment)
	}

	// ------------------------------
	// Admin
	// ------------------------------
	admin := r.Group("/api/admin", authMW, adminMW)
	{
		admin.GET("/users", userCtl.ListUsers)
		admin.GET("/users/:id", userCtl.GetUser)
		admin.POST("/users/:id/admin", userCtl.SetAdmin)
		admin.POST("/users/:id/block", userCtl.SetBlocked)
		admin.DELETE("/users/:id", userCtl.DeleteUser)
	}

	adminCat := r.Group("/api/categories", authMW, adminMW)
	{
		adminCat.POST("", invCtl.CreateCategory)
	}
}
