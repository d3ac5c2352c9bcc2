package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username  string `json:"username" gorm:"unique;not null"`
	Password  string `json:"-" gorm:"not null"`
	XP        int    `json:"xp" gorm:"default:0"`    // Accumulated experience points, never decreases
	Level     int    `json:"level" gorm:"default:1"` // Derived from XP by the gamification engine
	IsDeleted bool   `gorm:"default:false"`
}
