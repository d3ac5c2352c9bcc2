package learning

import "gorm.io/gorm"

// Module represents a learning module in the training catalog
type Module struct {
	gorm.Model
	Title       string `json:"title"`
	Description string `json:"description"`
	XPReward    int    `json:"xp_reward" gorm:"default:100"` // Informational total; lessons carry the credited XP
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Module order in the catalog
	Grade       string `json:"grade"`                        // Target grade band for personalization, empty = all
	Subject     string `json:"subject"`                      // Target subject for personalization, empty = all
	IsDeleted   bool   `gorm:"default:false"`
}
