package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Branch struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Address  string    `json:"address"`
	Phone    string    `json:"phone"`
	IsActive bool      `gorm:"default:true" json:"is_active"`

	Services []Service `gorm:"foreignKey:BranchID" json:"-"`
	Counters []Counter `gorm:"foreignKey:BranchID" json:"-"`
	Staff    []Staff   `gorm:"foreignKey:BranchID" json:"-"`
}

func (b *Branch) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
