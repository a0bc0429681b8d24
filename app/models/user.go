package models

import "gorm.io/gorm"

// User is the primary account model.
type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	IsActive bool   `gorm:"default:true" json:"is_active"`
	IsStaff  bool   `gorm:"default:false" json:"is_staff"`
}
