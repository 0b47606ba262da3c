package models

import "time"

// User authenticates by email; there is no separate username.
type User struct {
	ID          uint   `gorm:"primarykey"`
	Email       string `gorm:"size:255;not null;uniqueIndex"`
	Name        string `gorm:"size:255"`
	Password    string `gorm:"not null"`
	IsActive    bool   `gorm:"not null;default:true"`
	IsStaff     bool   `gorm:"not null;default:false"`
	IsSuperuser bool   `gorm:"not null;default:false"`
	LastLogin   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Tags        []Tag        `gorm:"constraint:OnDelete:CASCADE;"`
	Ingredients []Ingredient `gorm:"constraint:OnDelete:CASCADE;"`
	Recipes     []Recipe     `gorm:"constraint:OnDelete:CASCADE;"`
}
