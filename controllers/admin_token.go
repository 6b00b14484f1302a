package controllers

import (
	"errors"
	"net/http"
	"time"

	"queueflow-backend/config"
	"queueflow-backend/models"
	"queueflow-backend/queue"
	"queueflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UpdateTokenInput defines the expected JSON structure for a status change
type UpdateTokenInput struct {
	Status    string  `json:"status" binding:"required"`
	CounterID *string `json:"counter_id"`
}

// CallNextInput optionally narrows call-next to a branch/service and names
// the counter the customer should walk to.
type CallNextInput struct {
	BranchID  *string `json:"branch_id"`
	ServiceID *string `json:"service_id"`
	CounterID *string `json:"counter_id"`
}

type adminTokenRow struct {
	ID                uuid.UUID  `json:"id"`
	TokenNumber       string     `json:"token_number"`
	CustomerName      string     `json:"customer_name"`
	CustomerPhone     string     `json:"customer_phone"`
	Status            string     `json:"status"`
	PositionInQueue   int        `json:"position_in_queue"`
	EstimatedWaitTime int        `json:"estimated_wait_time"`
	CounterID         *uuid.UUID `json:"counter_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	ServiceName       string     `json:"service_name"`
	CounterName       *string    `json:"counter_name,omitempty"`
}

// GetAdminTokens lists tokens with their service and counter names,
// optionally filtered by status.
func GetAdminTokens(c *gin.Context) {
	status := c.Query("status")

	query := config.DB.Table("tokens t").
		Select(`t.id, t.token_number, t.customer_name, t.customer_phone, t.status,
			t.position_in_queue, t.estimated_wait_time, t.counter_id, t.created_at,
			s.name AS service_name, c.name AS counter_name`).
		Joins("JOIN services s ON t.service_id = s.id").
		Joins("LEFT JOIN counters c ON t.counter_id = c.id").
		Order("t.created_at DESC")
	if status != "" && status != "all" {
		query = query.Where("t.status = ?", status)
	}

	var tokens []adminTokenRow
	if err := query.Scan(&tokens).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve tokens")
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// GetRecentTokens returns the latest ten tokens for the admin dashboard.
func GetRecentTokens(c *gin.Context) {
	var tokens []adminTokenRow
	err := config.DB.Table("tokens t").
		Select("t.id, t.token_number, t.customer_name, t.status, t.created_at, s.name AS service_name").
		Joins("JOIN services s ON t.service_id = s.id").
		Order("t.created_at DESC").
		Limit(10).
		Scan(&tokens).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve recent tokens")
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// UpdateToken applies a status transition to a token. The state machine is
// enforced here: completed and cancelled are terminal, in_progress is only
// reachable from waiting.
func UpdateToken(c *gin.Context) {
	tokenUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid token ID format")
		return
	}

	var input UpdateTokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var token models.Token
	if err := config.DB.First(&token, "id = ?", tokenUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Token not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !models.ValidTransition(token.Status, input.Status) {
		utils.RespondWithError(c, http.StatusConflict,
			"Cannot move token from "+token.Status+" to "+input.Status)
		return
	}

	updates := map[string]interface{}{"status": input.Status}
	if input.Status != models.StatusWaiting {
		// Position is only defined while waiting.
		updates["position_in_queue"] = 0
	}
	if input.CounterID != nil {
		counterUUID, err := uuid.Parse(*input.CounterID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid counter ID format")
			return
		}
		updates["counter_id"] = counterUUID
		token.CounterID = &counterUUID
	}

	if err := config.DB.Model(&token).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update token")
		return
	}
	token.Status = input.Status

	// The waiting set changed; shift the remaining positions.
	go recalculator.RunForToken(token)

	if input.Status == models.StatusInProgress {
		go notifier.NotifyTokenCalled(token)
	}

	c.JSON(http.StatusOK, gin.H{"id": token.ID, "status": token.Status})
}

// CallNext moves the oldest waiting token to in_progress at a counter.
// The counter comes from the request, or falls back to the calling staff
// member's assigned counter.
func CallNext(c *gin.Context) {
	var input CallNextInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
	}

	query := config.DB.Where("status = ?", models.StatusWaiting).Order("created_at ASC")
	if input.BranchID != nil {
		branchUUID, err := uuid.Parse(*input.BranchID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid branch ID format")
			return
		}
		query = query.Where("branch_id = ?", branchUUID)
	}
	if input.ServiceID != nil {
		serviceUUID, err := uuid.Parse(*input.ServiceID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
			return
		}
		query = query.Where("service_id = ?", serviceUUID)
	}

	var token models.Token
	if err := query.First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "No tokens in queue")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	counterID, err := resolveCounter(c, input.CounterID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	err = config.DB.Model(&token).Updates(map[string]interface{}{
		"status":            models.StatusInProgress,
		"counter_id":        counterID,
		"position_in_queue": 0,
	}).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to call next token")
		return
	}
	token.Status = models.StatusInProgress
	token.CounterID = &counterID

	go recalculator.RunForToken(token)
	go notifier.NotifyTokenCalled(token)

	c.JSON(http.StatusOK, gin.H{
		"message": "Next token called successfully",
		"token": gin.H{
			"id":            token.ID,
			"token_number":  token.TokenNumber,
			"customer_name": token.CustomerName,
			"counter_id":    counterID,
		},
	})
}

// UpdatePositions runs a full recalculation pass over the waiting set.
func UpdatePositions(c *gin.Context) {
	result, err := recalculator.Run(queue.Scope{})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update queue positions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Queue positions updated successfully",
		"updated": result.Updated,
		"skipped": result.Skipped,
	})
}

func resolveCounter(c *gin.Context, requested *string) (uuid.UUID, error) {
	if requested != nil {
		counterUUID, err := uuid.Parse(*requested)
		if err != nil {
			return uuid.Nil, errors.New("invalid counter ID format")
		}
		return counterUUID, nil
	}

	// Fall back to the counter assigned to the calling staff member.
	if staffID, exists := c.Get("staffId"); exists {
		var staff models.Staff
		if err := config.DB.First(&staff, "id = ?", staffID).Error; err == nil && staff.CounterID != nil {
			return *staff.CounterID, nil
		}
	}
	return uuid.Nil, errors.New("counter ID is required")
}
