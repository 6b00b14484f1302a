package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"queueflow-backend/config"
	"queueflow-backend/models"
	"queueflow-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a staff member and issues a JWT.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	email := strings.TrimSpace(strings.ToLower(input.Email))

	var staff models.Staff
	result := config.DB.Where("email = ? AND is_active = true", email).First(&staff)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, staff.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(staff.ID.String(), staff.BranchID.String(), staff.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	now := time.Now()
	config.DB.Model(&staff).Update("last_login", &now)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":        staff.ID,
			"name":      staff.Name,
			"email":     staff.Email,
			"role":      staff.Role,
			"branch_id": staff.BranchID,
		},
	})
}

// Me returns the authenticated staff member.
func Me(c *gin.Context) {
	staffID, exists := c.Get("staffId")
	if !exists {
		utils.RespondWithError(c, http.StatusInternalServerError, "Staff ID not found in context")
		return
	}

	var staff models.Staff
	if err := config.DB.First(&staff, "id = ?", staffID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Staff not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        staff.ID,
			"name":      staff.Name,
			"email":     staff.Email,
			"role":      staff.Role,
			"branch_id": staff.BranchID,
		},
	})
}
