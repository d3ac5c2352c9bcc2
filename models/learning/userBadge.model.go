package learning

import (
	"time"

	"gorm.io/gorm"
)

// UserBadge records that a user has earned a badge.
// At most one row exists per (user, badge); awards are never revoked.
type UserBadge struct {
	gorm.Model
	UserID   uint       `json:"user_id" gorm:"index:idx_user_badge,unique;not null"`
	BadgeID  uint       `json:"badge_id" gorm:"index:idx_user_badge,unique;not null"`
	Earned   bool       `json:"earned" gorm:"default:false"`
	EarnedAt *time.Time `json:"earned_at"`
}
