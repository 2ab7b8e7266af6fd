// controllers/item_controller.go
package controllers

import (
	"net/http"

	"Gin_postgres_redis_catalog/app"
	"Gin_postgres_redis_catalog/db"
	"Gin_postgres_redis_catalog/dto"
	"Gin_postgres_redis_catalog/models"

	"github.com/gin-gonic/gin"
)

type ItemController struct{ *Srv }

func NewItemController(s *Srv) *ItemController { return &ItemController{Srv: s} }

// GET /api/inventories/:id/items
func (ic *ItemController) ListByInventory(c *gin.Context) {
	inventoryID := c.Param("id")
	if _, err := ic.Repo.FindInventoryByID(c.Request.Context(), inventoryID); err != nil {
		writeError(c, err)
		return
	}
	items, err := ic.Repo.ListItemsByInventory(c.Request.Context(), inventoryID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": items})
}

// POST /api/inventories/:id/items
func (ic *ItemController) Create(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	inventoryID := c.Param("id")
	inv, err := ic.Repo.FindInventoryWithAccess(c.Request.Context(), inventoryID)
	if err != nil {
		writeError(c, err)
		return
	}
	if !ic.canWrite(c, inv, uid) {
		c.JSON(http.StatusForbidden, app.H{"error": "forbidden"})
		return
	}

	var in dto.ItemDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if err := dto.Validate(in); err != nil {
		writeError(c, err)
		return
	}

	item, err := ic.Repo.CreateItem(c.Request.Context(), db.CreateItemInput{
		InventoryID: inventoryID,
		CustomID:    in.CustomID,
		CreatedByID: uid,
		Values:      in.Values(),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"item": item})
}

// GET /api/items/:id
func (ic *ItemController) Get(c *gin.Context) {
	item, err := ic.Repo.FindItemByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	likes, err := ic.Repo.CountLikes(c.Request.Context(), item.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	liked := false
	if uid, ok := currentUserID(c); ok {
		liked, _ = ic.Repo.IsLiked(c.Request.Context(), item.ID, uid)
	}
	c.JSON(http.StatusOK, app.H{"item": item, "likeCount": likes, "liked": liked})
}

// PUT /api/items/:id
func (ic *ItemController) Update(c *gin.Context) {
	item, ok := ic.mustWriteItem(c)
	if !ok {
		return
	}
	var in dto.ItemDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if err := dto.Validate(in); err != nil {
		writeError(c, err)
		return
	}
	if in.CustomID == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "customId is required"})
		return
	}

	err := ic.Repo.UpdateItem(c.Request.Context(), db.UpdateItemInput{
		ItemID:          item.ID,
		CustomID:        in.CustomID,
		ExpectedVersion: in.ExpectedVersion,
		Values:          in.Values(),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// DELETE /api/items/:id
func (ic *ItemController) Delete(c *gin.Context) {
	item, ok := ic.mustWriteItem(c)
	if !ok {
		return
	}
	if err := ic.Repo.DeleteItem(c.Request.Context(), item.ID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// canWrite: the creator, an admin, a granted user, or anyone on a public
// inventory.
func (ic *ItemController) canWrite(c *gin.Context, inv *models.Inventory, uid string) bool {
	if inv.IsPublic || inv.CreatorID == uid || isAdmin(c) {
		return true
	}
	for _, acc := range inv.Accesses {
		if acc.UserID == uid {
			return true
		}
	}
	return false
}

func (ic *ItemController) mustWriteItem(c *gin.Context) (*models.Item, bool) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return nil, false
	}
	item, err := ic.Repo.FindItemByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	inv, err := ic.Repo.FindInventoryWithAccess(c.Request.Context(), item.InventoryID)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if !ic.canWrite(c, inv, uid) {
		c.JSON(http.StatusForbidden, app.H{"error": "forbidden"})
		return nil, false
	}
	return item, true
}
