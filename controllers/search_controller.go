package controllers

import (
	"net/http"

	"Gin_postgres_redis_catalog/app"

	"github.com/gin-gonic/gin"
)

type SearchController struct{ *Srv }

func NewSearchController(s *Srv) *SearchController { return &SearchController{Srv: s} }

// GET /api/search?q=
func (sc *SearchController) Search(c *gin.Context) {
	q := c.Query("q")

	inventories, err := sc.Repo.SearchInventories(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	items, err := sc.Repo.SearchItems(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"inventories": inventories, "items": items})
}
