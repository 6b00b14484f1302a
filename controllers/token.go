package controllers

import (
	"errors"
	"net/http"
	"time"

	"queueflow-backend/config"
	"queueflow-backend/queue"
	"queueflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookTokenInput defines the expected JSON structure for booking a token
type BookTokenInput struct {
	BranchID      string `json:"branch_id" binding:"required"`
	ServiceID     string `json:"service_id" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`
}

// tokenSnapshot is the tracking view of a single token.
type tokenSnapshot struct {
	ID                uuid.UUID `json:"id"`
	TokenNumber       string    `json:"token_number"`
	Status            string    `json:"status"`
	CustomerName      string    `json:"customer_name"`
	CustomerPhone     string    `json:"customer_phone"`
	PositionInQueue   int       `json:"position_in_queue"`
	EstimatedWaitTime int       `json:"estimated_wait_time"`
	CreatedAt         time.Time `json:"created_at"`
	BranchName        string    `json:"branch_name"`
	ServiceName       string    `json:"service_name"`
}

// BookToken issues a new token for a customer.
func BookToken(c *gin.Context) {
	var input BookTokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	branchUUID, err := uuid.Parse(input.BranchID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid branch ID format")
		return
	}
	serviceUUID, err := uuid.Parse(input.ServiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	if !utils.ValidatePhone(input.CustomerPhone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	result, err := issuer.Book(queue.BookingInput{
		BranchID:      branchUUID,
		ServiceID:     serviceUUID,
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		CustomerEmail: input.CustomerEmail,
	})
	if err != nil {
		switch {
		case errors.Is(err, queue.ErrValidation):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, queue.ErrNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		case errors.Is(err, queue.ErrNumberConflict):
			utils.RespondWithError(c, http.StatusConflict, "Booking collided, please retry")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create token")
		}
		return
	}

	// Bring positions up to date so the new token shows a rank right away.
	go recalculator.Run(queue.Scope{BranchID: branchUUID, ServiceID: serviceUUID})

	c.JSON(http.StatusCreated, result)
}

// GetToken returns a single token with its branch and service names, for
// the tracking page and displays. Read-only.
func GetToken(c *gin.Context) {
	tokenUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid token ID format")
		return
	}

	var snapshot tokenSnapshot
	result := config.DB.Raw(`
		SELECT
			t.id,
			t.token_number,
			t.status,
			t.customer_name,
			t.customer_phone,
			t.position_in_queue,
			t.estimated_wait_time,
			t.created_at,
			b.name AS branch_name,
			s.name AS service_name
		FROM tokens t
		JOIN branches b ON t.branch_id = b.id
		JOIN services s ON t.service_id = s.id
		WHERE t.id = ?
	`, tokenUUID).Scan(&snapshot)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Token not found")
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// TrackToken resolves a token id from its display number and the customer's
// phone, newest match first.
func TrackToken(c *gin.Context) {
	tokenNumber := c.Query("token")
	phone := c.Query("phone")

	if tokenNumber == "" || phone == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Token number and phone number are required")
		return
	}

	var token struct {
		ID uuid.UUID `json:"id"`
	}
	result := config.DB.Raw(`
		SELECT id FROM tokens
		WHERE token_number = ? AND customer_phone = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, tokenNumber, phone).Scan(&token)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Token not found")
		return
	}

	c.JSON(http.StatusOK, token)
}
