// controllers/item_controller.go
package controllers

import (
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"time"

	"Gin_postgres_redis_inventory_tracker/app"
	"Gin_postgres_redis_inventory_tracker/db"
	"Gin_postgres_redis_inventory_tracker/ledger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemController struct{ *Srv }

func NewItemController(s *Srv) *ItemController { return &ItemController{Srv: s} }

// 前端传 "2006-01-02" 或完整 RFC3339 都接受
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// POST /api/inventory/:category
func (ic *ItemController) CreateItem(c *gin.Context) {
	category := c.Param("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing category"})
		return
	}
	var in struct {
		ItemCode      string `json:"itemCode" binding:"required"`
		Name          string `json:"name" binding:"required"`
		TotalQuantity *int   `json:"totalQuantity" binding:"required"`
		Unit          string `json:"unit" binding:"required"`
		AcquiredDate  string `json:"acquiredDate" binding:"required"`
		Condition     string `json:"condition"`
		Description   string `json:"description"`
		GivenTo       string `json:"givenTo"`
		GivenBy       string `json:"givenBy"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	acquired, err := parseDate(in.AcquiredDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid acquiredDate"})
		return
	}

	it, err := ledger.NewItem(ledger.NewItemInput{
		Category:      category,
		ItemCode:      in.ItemCode,
		Name:          in.Name,
		TotalQuantity: *in.TotalQuantity,
		Unit:          in.Unit,
		AcquiredDate:  acquired,
		Condition:     in.Condition,
		Description:   in.Description,
		GivenTo:       in.GivenTo,
		GivenBy:       in.GivenBy,
	}, callerIdentity(c), time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	it.ID = uuid.NewString()

	if err := ic.Repo.CreateItem(c.Request.Context(), it); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, it)
}

// GET /api/inventory/:category
func (ic *ItemController) ListItemsByCategory(c *gin.Context) {
	category := c.Param("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing category"})
		return
	}
	items, err := ic.Repo.ListItemsByCategory(c.Request.Context(), category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"items": items})
}

// GET /api/items/:id
func (ic *ItemController) GetItem(c *gin.Context) {
	id := c.Param("id")
	it, err := ic.Repo.FindItemByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, it)
}

// PUT /api/items/:id
// 部分更新；balance 永远由服务端重算，body 里即使带了也会被忽略
func (ic *ItemController) UpdateItem(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing item id"})
		return
	}
	var in struct {
		Name          *string `json:"name"`
		Unit          *string `json:"unit"`
		Condition     *string `json:"condition"`
		Description   *string `json:"description"`
		GivenTo       *string `json:"givenTo"`
		GivenBy       *string `json:"givenBy"`
		AcquiredDate  *string `json:"acquiredDate"`
		TotalQuantity *int    `json:"totalQuantity"`
		Taken         *int    `json:"taken"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	patch := ledger.ItemPatch{
		Name:          in.Name,
		Unit:          in.Unit,
		Condition:     in.Condition,
		Description:   in.Description,
		GivenTo:       in.GivenTo,
		GivenBy:       in.GivenBy,
		TotalQuantity: in.TotalQuantity,
		Taken:         in.Taken,
	}
	if in.AcquiredDate != nil {
		t, err := parseDate(*in.AcquiredDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, app.H{"error": "invalid acquiredDate"})
			return
		}
		patch.AcquiredDate = &t
	}

	it, err := ic.Repo.UpdateItem(c.Request.Context(), id, patch, callerIdentity(c))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, app.H{"error": "item not found"})
		case errors.Is(err, ledger.ErrTakenExceedsTotal),
			errors.Is(err, ledger.ErrNegativeQuantity),
			errors.Is(err, ledger.ErrInvalidCondition):
			c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, it)
}

// DELETE /api/items/:id
func (ic *ItemController) DeleteItem(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing item id"})
		return
	}
	if err := ic.Repo.DeleteItem(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /api/items/:id/history
func (ic *ItemController) ItemHistory(c *gin.Context) {
	id := c.Param("id")
	it, err := ic.Repo.FindItemByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"itemId": it.ID, "takenHistory": it.TakenHistory})
}

// GET /api/items?q=&category=&condition=&page=&size=
func (ic *ItemController) ListItemsAdmin(c *gin.Context) {
	q := db.AdminItemsQuery{
		Q:         c.Query("q"),
		Category:  c.Query("category"),
		Condition: c.Query("condition"),
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := ic.Repo.ListItemsAdmin(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true, "items": res.Items, "total": res.Total})
}

// GET /api/inventory/:category/export
func (ic *ItemController) ExportCategoryCSV(c *gin.Context) {
	category := c.Param("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing category"})
		return
	}
	items, err := ic.Repo.ListItemsByCategory(c.Request.Context(), category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+category+`.csv"`)
	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{
		"itemCode", "name", "category", "totalQuantity", "taken", "balance",
		"unit", "acquiredDate", "condition", "description", "givenTo", "givenBy",
	})
	for _, it := range items {
		_ = w.Write([]string{
			it.ItemCode, it.Name, it.Category,
			strconv.Itoa(it.TotalQuantity), strconv.Itoa(it.Taken), strconv.Itoa(it.Balance),
			it.Unit, it.AcquiredDate.Format("2006-01-02"), it.Condition,
			it.Description, it.GivenTo, it.GivenBy,
		})
	}
	w.Flush()
}
