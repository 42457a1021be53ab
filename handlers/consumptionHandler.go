package handlers

import (
	"net/http"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/stocks_backend/config"
	"bitbucket.org/mmdatafocus/stocks_backend/ingest"
	"bitbucket.org/mmdatafocus/stocks_backend/models"
	"bitbucket.org/mmdatafocus/stocks_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ImportConsumption handles POST /api/consumption/import. The request is a
// multipart upload with the workbook under the "file" field.
func ImportConsumption(c *gin.Context) {
	businessId, ok := utils.GetBusinessIdFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file type: only .xlsx files are allowed"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return
	}
	defer file.Close()

	summary, err := ingest.ImportConsumptionXlsx(c.Request.Context(), businessId, file)
	if err != nil {
		config.LogError(config.GetLogger(), "handlers", "ImportConsumption", "import", businessId, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// CreateConsumptionRecord handles POST /api/consumption.
func CreateConsumptionRecord(c *gin.Context) {
	businessId, ok := utils.GetBusinessIdFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input models.NewConsumptionRecord
	if err := c.ShouldBindJSON(&input); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(verrs)})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	record, err := models.CreateConsumptionRecord(c.Request.Context(), businessId, &input)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, record)
}

type consumptionListQuery struct {
	From       string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	ItemId     int    `form:"item_id" binding:"omitempty,gte=1"`
	CategoryId int    `form:"category_id" binding:"omitempty,gte=1"`
}

// ListConsumptionRecords handles GET /api/consumption.
func ListConsumptionRecords(c *gin.Context) {
	businessId, ok := utils.GetBusinessIdFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var query consumptionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := models.ConsumptionFilter{ItemId: query.ItemId, CategoryId: query.CategoryId}
	if query.From != "" {
		if t, err := time.Parse("2006-01-02", query.From); err == nil {
			filter.From = &t
		}
	}
	if query.To != "" {
		if t, err := time.Parse("2006-01-02", query.To); err == nil {
			filter.To = &t
		}
	}

	records, err := models.ListConsumptionRecords(c.Request.Context(), businessId, filter)
	if err != nil {
		config.LogError(config.GetLogger(), "handlers", "ListConsumptionRecords", "list", businessId, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, records)
}
