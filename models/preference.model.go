package models

import "gorm.io/gorm"

// UserPreference stores the onboarding personalization choices for a user.
// One row per user, upserted when onboarding completes.
type UserPreference struct {
	gorm.Model
	UserID              uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	Grade               string `json:"grade"`
	Subject             string `json:"subject"`
	Difficulty          string `json:"difficulty"`
	CompletedOnboarding bool   `json:"completed_onboarding" gorm:"default:false"`
}
