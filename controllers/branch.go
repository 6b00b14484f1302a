package controllers

import (
	"errors"
	"net/http"

	"queueflow-backend/config"
	"queueflow-backend/models"
	"queueflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetBranches lists active branches for the booking page.
func GetBranches(c *gin.Context) {
	var branches []models.Branch
	err := config.DB.Where("is_active = true").Order("name").Find(&branches).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve branches")
		return
	}

	c.JSON(http.StatusOK, branches)
}

// GetBranch returns a single branch.
func GetBranch(c *gin.Context) {
	branchUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid branch ID format")
		return
	}

	var branch models.Branch
	if err := config.DB.First(&branch, "id = ?", branchUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Branch not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, branch)
}
