package controllers

import (
	"errors"
	"net/http"
	"time"

	"queueflow-backend/config"
	"queueflow-backend/models"
	"queueflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateStaffInput defines the expected JSON structure for adding staff
type CreateStaffInput struct {
	Name      string  `json:"name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	Role      string  `json:"role" binding:"required,oneof=admin staff"`
	BranchID  string  `json:"branch_id" binding:"required"`
	CounterID *string `json:"counter_id"`
}

// UpdateStaffInput defines the expected JSON structure for updating staff
type UpdateStaffInput struct {
	Name      *string `json:"name"`
	Role      *string `json:"role"`
	CounterID *string `json:"counter_id"`
	Status    *string `json:"status"` // "active" or "inactive"
}

type staffRow struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	BranchName  string    `json:"branch_name"`
	CounterName *string   `json:"counter_name,omitempty"`
}

// GetStaff lists staff with their branch and counter names.
func GetStaff(c *gin.Context) {
	var staff []staffRow
	err := config.DB.Table("staff s").
		Select(`s.id, s.name, s.email, s.role, s.is_active, s.created_at,
			b.name AS branch_name, c.name AS counter_name`).
		Joins("JOIN branches b ON s.branch_id = b.id").
		Joins("LEFT JOIN counters c ON s.counter_id = c.id").
		Where("s.deleted_at IS NULL").
		Order("s.created_at DESC").
		Scan(&staff).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve staff")
		return
	}

	c.JSON(http.StatusOK, staff)
}

// AddStaff creates a staff account. The password is hashed by the model's
// BeforeCreate hook.
func AddStaff(c *gin.Context) {
	var input CreateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	branchUUID, err := uuid.Parse(input.BranchID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid branch ID format")
		return
	}

	var existing models.Staff
	if err := config.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	staff := models.Staff{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
		BranchID: branchUUID,
		IsActive: true,
	}
	if input.CounterID != nil {
		counterUUID, err := uuid.Parse(*input.CounterID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid counter ID format")
			return
		}
		staff.CounterID = &counterUUID
	}

	if err := config.DB.Create(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create staff")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":        staff.ID,
		"name":      staff.Name,
		"email":     staff.Email,
		"role":      staff.Role,
		"is_active": staff.IsActive,
	})
}

// UpdateStaff updates a staff member's role, counter or active status.
func UpdateStaff(c *gin.Context) {
	staffUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	var input UpdateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var staff models.Staff
	if err := config.DB.First(&staff, "id = ?", staffUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Staff not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		staff.Name = *input.Name
	}
	if input.Role != nil {
		staff.Role = *input.Role
	}
	if input.CounterID != nil {
		counterUUID, err := uuid.Parse(*input.CounterID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid counter ID format")
			return
		}
		staff.CounterID = &counterUUID
	}
	if input.Status != nil {
		staff.IsActive = *input.Status == "active"
	}

	if err := config.DB.Save(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update staff")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        staff.ID,
		"role":      staff.Role,
		"is_active": staff.IsActive,
	})
}

// DeleteStaff soft deletes a staff account.
func DeleteStaff(c *gin.Context) {
	staffUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	result := config.DB.Delete(&models.Staff{}, "id = ?", staffUUID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete staff")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Staff not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Staff deleted successfully"})
}
