package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BranchID    uuid.UUID `gorm:"type:uuid;index;not null" json:"branch_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	// Prefix is the short alphabetic code embedded in token numbers.
	// Empty means derive it from the first two letters of Name.
	Prefix            string `gorm:"type:varchar(5)" json:"prefix"`
	EstimatedDuration int    `gorm:"not null;default:15" json:"estimated_duration"` // minutes per customer
	IsActive          bool   `gorm:"default:true" json:"is_active"`

	Tokens []Token `gorm:"foreignKey:ServiceID" json:"-"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
