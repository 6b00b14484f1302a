package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Token statuses
const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

type Token struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TokenNumber string    `gorm:"not null;uniqueIndex:idx_scope_number,priority:4" json:"token_number"`

	BranchID  uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_scope_number,priority:1" json:"branch_id"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_scope_number,priority:2" json:"service_id"`
	// Day is the booking date (YYYY-MM-DD); part of the numbering scope.
	Day string `gorm:"type:varchar(10);not null;uniqueIndex:idx_scope_number,priority:3" json:"-"`

	CustomerName  string `gorm:"not null" json:"customer_name"`
	CustomerPhone string `gorm:"not null;index" json:"customer_phone"`
	CustomerEmail string `json:"customer_email,omitempty"`

	Status            string     `gorm:"type:varchar(20);not null;default:'waiting';index" json:"status"`
	PositionInQueue   int        `json:"position_in_queue"`
	EstimatedWaitTime int        `json:"estimated_wait_time"` // minutes
	CounterID         *uuid.UUID `gorm:"type:uuid;index" json:"counter_id,omitempty"`

	// CreatedAt is the queue ordering key and is never mutated after insert.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Token) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// TokenSequence holds the last issued ordinal per (branch, service, day)
// scope. The row is bumped atomically inside the booking transaction so two
// concurrent bookings can never read the same ordinal.
type TokenSequence struct {
	BranchID   uuid.UUID `gorm:"type:uuid;primary_key"`
	ServiceID  uuid.UUID `gorm:"type:uuid;primary_key"`
	Day        string    `gorm:"type:varchar(10);primary_key"`
	LastNumber int       `gorm:"not null;default:0"`
}

var transitionMap = map[string][]string{
	StatusInProgress: {StatusWaiting},
	StatusCompleted:  {StatusInProgress},
	StatusCancelled:  {StatusWaiting, StatusInProgress},
}

// ValidTransition reports whether a token may move from fromStatus to
// toStatus. Completed and cancelled are terminal.
func ValidTransition(fromStatus, toStatus string) bool {
	allowed, ok := transitionMap[toStatus]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == fromStatus {
			return true
		}
	}
	return false
}
