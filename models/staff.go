package models

import (
	"time"

	"queueflow-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff roles
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type Staff struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BranchID uuid.UUID `gorm:"type:uuid;index;not null" json:"branch_id"`
	// CounterID is the counter this staff member usually serves from.
	CounterID *uuid.UUID `gorm:"type:uuid;index" json:"counter_id,omitempty"`

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"type:varchar(20);not null;default:'staff'" json:"role"`

	LastLogin *time.Time `json:"last_login,omitempty"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`

	gorm.Model `json:"-"`
}

func (Staff) TableName() string {
	return "staff"
}

// Hash the password before the row is inserted.
func (s *Staff) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(s.Password)
	if err != nil {
		return err
	}
	s.Password = hashed
	return
}
