package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"Gin_postgres_redis_catalog/app"
	"Gin_postgres_redis_catalog/db"
	"Gin_postgres_redis_catalog/dto"
	"Gin_postgres_redis_catalog/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type InventoryController struct{ *Srv }

func NewInventoryController(s *Srv) *InventoryController { return &InventoryController{Srv: s} }

// GET /api/inventories?top=10&popular=1
func (ic *InventoryController) List(c *gin.Context) {
	count, _ := strconv.Atoi(c.DefaultQuery("top", strconv.Itoa(ic.Cfg.LatestInventoryCount)))

	var (
		rows []db.InventoryRow
		err  error
	)
	if c.Query("popular") != "" {
		rows, err = ic.Repo.ListPopularInventories(c.Request.Context(), count)
	} else {
		rows, err = ic.Repo.ListLatestInventories(c.Request.Context(), count)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"inventories": rows})
}

// GET /api/inventories/:id
func (ic *InventoryController) Get(c *gin.Context) {
	inv, err := ic.Repo.FindInventoryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"inventory": inv})
}

// POST /api/inventories
func (ic *InventoryController) Create(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	var in dto.InventoryDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if err := dto.Validate(in); err != nil {
		writeError(c, err)
		return
	}

	inv := models.Inventory{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		CreatorID:   uid,
		CategoryID:  in.CategoryID,
		IsPublic:    in.IsPublic,
		Tags:        pq.StringArray(in.Tags),
	}
	if in.CustomIDFormat != nil {
		raw, err := json.Marshal(in.CustomIDFormat)
		if err != nil {
			writeError(c, err)
			return
		}
		inv.CustomIDFormat = raw
	}
	inv.FieldDefinitions = fieldModels(inv.ID, in.Fields)

	if err := ic.Repo.CreateInventory(c.Request.Context(), &inv); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"inventory": inv})
}

// PUT /api/inventories/:id
func (ic *InventoryController) Update(c *gin.Context) {
	inv, ok := ic.mustBeStaff(c)
	if !ok {
		return
	}
	var in dto.InventoryDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if err := dto.Validate(in); err != nil {
		writeError(c, err)
		return
	}

	input := db.UpdateInventoryInput{
		Title:           in.Title,
		Description:     in.Description,
		ImageURL:        in.ImageURL,
		CategoryID:      in.CategoryID,
		IsPublic:        in.IsPublic,
		Tags:            in.Tags,
		ExpectedVersion: in.ExpectedVersion,
		Fields:          fieldModels(inv.ID, in.Fields),
	}
	if in.CustomIDFormat != nil {
		raw, err := json.Marshal(in.CustomIDFormat)
		if err != nil {
			writeError(c, err)
			return
		}
		input.CustomIDFormat = raw
	}

	if err := ic.Repo.UpdateInventory(c.Request.Context(), inv.ID, input); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// DELETE /api/inventories/:id
func (ic *InventoryController) Delete(c *gin.Context) {
	inv, ok := ic.mustBeStaff(c)
	if !ok {
		return
	}
	if err := ic.Repo.DeleteInventory(c.Request.Context(), inv.ID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// POST /api/inventories/:id/access
func (ic *InventoryController) GrantAccess(c *gin.Context) {
	inv, ok := ic.mustBeStaff(c)
	if !ok {
		return
	}
	var in struct {
		UserID string `json:"userId" binding:"required,uuid4"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if _, err := ic.Repo.FindUserByID(c.Request.Context(), in.UserID); err != nil {
		writeError(c, err)
		return
	}
	if err := ic.Repo.GrantAccess(c.Request.Context(), inv.ID, in.UserID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// DELETE /api/inventories/:id/access/:userId
func (ic *InventoryController) RevokeAccess(c *gin.Context) {
	inv, ok := ic.mustBeStaff(c)
	if !ok {
		return
	}
	if err := ic.Repo.RevokeAccess(c.Request.Context(), inv.ID, c.Param("userId")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /api/inventories/:id/stats
func (ic *InventoryController) Stats(c *gin.Context) {
	res, err := ic.Repo.GetInventoryStats(c.Request.Context(), c.Param("id"), ic.Cfg.TopValuesCount)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/categories
func (ic *InventoryController) ListCategories(c *gin.Context) {
	cats, err := ic.Repo.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"categories": cats})
}

// POST /api/categories (admin)
func (ic *InventoryController) CreateCategory(c *gin.Context) {
	var in struct {
		Name string `json:"name" binding:"required,max=120"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	cat, err := ic.Repo.EnsureCategory(c.Request.Context(), in.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"category": cat})
}

// mustBeStaff loads the inventory and requires the caller to be its
// creator or an admin; write-access grants do not extend to editing the
// inventory itself.
func (ic *InventoryController) mustBeStaff(c *gin.Context) (*models.Inventory, bool) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return nil, false
	}
	inv, err := ic.Repo.FindInventoryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if inv.CreatorID != uid && !isAdmin(c) {
		c.JSON(http.StatusForbidden, app.H{"error": "forbidden"})
		return nil, false
	}
	return inv, true
}

func fieldModels(inventoryID string, in []dto.FieldDefinitionDTO) []models.FieldDefinition {
	out := make([]models.FieldDefinition, 0, len(in))
	for _, f := range in {
		out = append(out, models.FieldDefinition{
			ID:              f.ID,
			InventoryID:     inventoryID,
			Title:           f.Title,
			Type:            f.Type,
			IsRequired:      f.IsRequired,
			ShowInTable:     f.ShowInTable,
			Description:     f.Description,
			ValidationRegex: f.ValidationRegex,
			ValidationMin:   f.ValidationMin,
			ValidationMax:   f.ValidationMax,
		})
	}
	return out
}
