package learning

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lesson represents a single lesson within a module
type Lesson struct {
	gorm.Model
	ModuleID          uint           `json:"module_id" gorm:"index;not null"`
	Title             string         `json:"title"`
	Content           string         `json:"content" gorm:"type:text"`
	XPReward          int            `json:"xp_reward" gorm:"default:25"` // Credited exactly once per user on completion
	OrderIndex        int            `json:"order_index" gorm:"default:0"`
	PracticalActivity string         `json:"practical_activity" gorm:"type:text"`
	Resources         datatypes.JSON `json:"resources"` // JSON array of suggested tools/links
	IsDeleted         bool           `gorm:"default:false"`
}
