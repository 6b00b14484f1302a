package controllers

import (
	"net/http"

	"queueflow-backend/config"
	"queueflow-backend/models"
	"queueflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Display feeds are plain JSON polled on an interval by the branch screens.

type nowServingRow struct {
	TokenNumber string  `json:"token_number"`
	CounterName *string `json:"counter_name,omitempty"`
	ServiceName string  `json:"service_name"`
}

type waitingQueueRow struct {
	ID                uuid.UUID `json:"id"`
	TokenNumber       string    `json:"token_number"`
	CustomerName      string    `json:"customer_name"`
	EstimatedWaitTime int       `json:"estimated_wait_time"`
	PositionInQueue   int       `json:"position_in_queue"`
	ServiceName       string    `json:"service_name"`
}

// NowServing lists tokens currently at a counter, most recently called
// first.
func NowServing(c *gin.Context) {
	query := config.DB.Table("tokens t").
		Select("t.token_number, c.name AS counter_name, s.name AS service_name").
		Joins("JOIN services s ON t.service_id = s.id").
		Joins("LEFT JOIN counters c ON t.counter_id = c.id").
		Where("t.status = ?", models.StatusInProgress).
		Order("t.updated_at DESC")
	if branchID := c.Query("branchId"); branchID != "" {
		branchUUID, err := uuid.Parse(branchID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid branch ID format")
			return
		}
		query = query.Where("t.branch_id = ?", branchUUID)
	}

	var rows []nowServingRow
	if err := query.Scan(&rows).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve now serving")
		return
	}

	c.JSON(http.StatusOK, rows)
}

// WaitingQueue lists the first 20 waiting tokens by position.
func WaitingQueue(c *gin.Context) {
	query := config.DB.Table("tokens t").
		Select(`t.id, t.token_number, t.customer_name, t.estimated_wait_time,
			t.position_in_queue, s.name AS service_name`).
		Joins("JOIN services s ON t.service_id = s.id").
		Where("t.status = ?", models.StatusWaiting).
		Order("t.position_in_queue ASC, t.created_at ASC").
		Limit(20)
	if branchID := c.Query("branchId"); branchID != "" {
		branchUUID, err := uuid.Parse(branchID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid branch ID format")
			return
		}
		query = query.Where("t.branch_id = ?", branchUUID)
	}

	var rows []waitingQueueRow
	if err := query.Scan(&rows).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve waiting queue")
		return
	}

	c.JSON(http.StatusOK, rows)
}
