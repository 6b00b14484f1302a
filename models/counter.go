package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Counter struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BranchID uuid.UUID `gorm:"type:uuid;index;not null" json:"branch_id"`
	Name     string    `gorm:"not null" json:"name"`
	IsActive bool      `gorm:"default:true" json:"is_active"`
}

func (c *Counter) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
