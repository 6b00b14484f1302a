// controllers/service.go
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

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	BranchID          string `json:"branch_id" binding:"required"`
	Name              string `json:"name" binding:"required"`
	Description       string `json:"description"`
	Prefix            string `json:"prefix"`
	EstimatedDuration int    `json:"estimated_duration" binding:"required,min=1"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	Prefix            *string `json:"prefix"`
	EstimatedDuration *int    `json:"estimated_duration"`
	Status            *string `json:"status"` // "active" or "inactive"
}

// GetServices lists a branch's active services for the booking page.
func GetServices(c *gin.Context) {
	branchID := c.Query("branchId")
	if branchID == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Branch ID is required")
		return
	}
	branchUUID, err := uuid.Parse(branchID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid branch ID format")
		return
	}

	var services []models.Service
	err = config.DB.Where("branch_id = ? AND is_active = true", branchUUID).
		Order("name").Find(&services).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetAdminServices lists all services across branches.
func GetAdminServices(c *gin.Context) {
	var services []models.Service
	if err := config.DB.Order("name").Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// CreateService creates a new service under a branch.
func CreateService(c *gin.Context) {
	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	branchUUID, err := uuid.Parse(input.BranchID)
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

	service := models.Service{
		BranchID:          branchUUID,
		Name:              input.Name,
		Description:       input.Description,
		Prefix:            input.Prefix,
		EstimatedDuration: input.EstimatedDuration,
		IsActive:          true,
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// UpdateService updates an existing service, including activation.
func UpdateService(c *gin.Context) {
	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ?", serviceUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Prefix != nil {
		service.Prefix = *input.Prefix
	}
	if input.EstimatedDuration != nil {
		service.EstimatedDuration = *input.EstimatedDuration
	}
	if input.Status != nil {
		service.IsActive = *input.Status == "active"
	}

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService removes a service. Administrative override only; existing
// tokens keep their service_id and the recalculator simply skips them.
func DeleteService(c *gin.Context) {
	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	result := config.DB.Delete(&models.Service{}, "id = ?", serviceUUID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
