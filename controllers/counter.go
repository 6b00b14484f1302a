package controllers

import (
	"net/http"

	"queueflow-backend/config"
	"queueflow-backend/models"
	"queueflow-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetCounters lists active counters for the admin token panel.
func GetCounters(c *gin.Context) {
	var counters []models.Counter
	err := config.DB.Where("is_active = true").Order("name").Find(&counters).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve counters")
		return
	}

	c.JSON(http.StatusOK, counters)
}
