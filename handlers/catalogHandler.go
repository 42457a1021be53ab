package handlers

import (
	"net/http"
	"strconv"

	"bitbucket.org/mmdatafocus/stocks_backend/config"
	"bitbucket.org/mmdatafocus/stocks_backend/models"
	"bitbucket.org/mmdatafocus/stocks_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func bindBusinessId(c *gin.Context) (string, bool) {
	businessId, ok := utils.GetBusinessIdFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return businessId, ok
}

func writeBindError(c *gin.Context, err error) {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(verrs)})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// ListItems handles GET /api/items.
func ListItems(c *gin.Context) {
	businessId, ok := bindBusinessId(c)
	if !ok {
		return
	}
	var items []*models.Item
	var err error
	if categoryId, _ := strconv.Atoi(c.Query("category_id")); categoryId > 0 {
		items, err = models.ListItemsByCategory(c.Request.Context(), businessId, categoryId)
	} else {
		items, err = models.ListItems(c.Request.Context(), businessId)
	}
	if err != nil {
		config.LogError(config.GetLogger(), "handlers", "ListItems", "list", businessId, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetItem handles GET /api/items/:id.
func GetItem(c *gin.Context) {
	businessId, ok := bindBusinessId(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	item, err := models.GetItem(c.Request.Context(), businessId, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateItem handles POST /api/items.
func CreateItem(c *gin.Context) {
	businessId, ok := bindBusinessId(c)
	if !ok {
		return
	}
	var input models.NewItem
	if err := c.ShouldBindJSON(&input); err != nil {
		writeBindError(c, err)
		return
	}
	item, err := models.CreateItem(c.Request.Context(), businessId, &input)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ListItemCategories handles GET /api/categories.
func ListItemCategories(c *gin.Context) {
	businessId, ok := bindBusinessId(c)
	if !ok {
		return
	}
	categories, err := models.ListItemCategories(c.Request.Context(), businessId)
	if err != nil {
		config.LogError(config.GetLogger(), "handlers", "ListItemCategories", "list", businessId, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateItemCategory handles POST /api/categories.
func CreateItemCategory(c *gin.Context) {
	businessId, ok := bindBusinessId(c)
	if !ok {
		return
	}
	var input models.NewItemCategory
	if err := c.ShouldBindJSON(&input); err != nil {
		writeBindError(c, err)
		return
	}
	category, err := models.CreateItemCategory(c.Request.Context(), businessId, &input)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, category)
}
