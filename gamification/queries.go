package gamification

import (
	"errors"
	"time"

	"teachtech/models"
	"teachtech/models/learning"

	"gorm.io/gorm"
)

// UserStats is the dashboard summary for one user.
type UserStats struct {
	XP               int   `json:"xp"`
	Level            int   `json:"level"`
	XPToNextLevel    int   `json:"xp_to_next_level"`
	CompletedLessons int64 `json:"completed_lessons"`
	EarnedBadges     int64 `json:"earned_badges"`
}

// Stats assembles the user's XP, level and completion counters.
func (e *Engine) Stats(userID uint) (*UserStats, error) {
	var user models.User
	if err := e.db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	stats := &UserStats{
		XP:            user.XP,
		Level:         user.Level,
		XPToNextLevel: XPToNextLevel(user.XP),
	}

	if err := e.db.Model(&learning.UserProgress{}).
		Where("user_id = ? AND lesson_id IS NOT NULL AND completed = ?", userID, true).
		Count(&stats.CompletedLessons).Error; err != nil {
		return nil, err
	}
	if err := e.db.Model(&learning.UserBadge{}).
		Where("user_id = ? AND earned = ?", userID, true).
		Count(&stats.EarnedBadges).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// ProgressEntry is one progress row joined with catalog titles for display.
type ProgressEntry struct {
	ID          uint       `json:"id"`
	UserID      uint       `json:"user_id"`
	ModuleID    uint       `json:"module_id"`
	LessonID    *uint      `json:"lesson_id"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	ModuleTitle string     `json:"module_title"`
	LessonTitle string     `json:"lesson_title"`
}

// ProgressList returns all progress records for the user with module and
// lesson titles attached. Module-level rows have a nil lesson id.
func (e *Engine) ProgressList(userID uint) ([]ProgressEntry, error) {
	var entries []ProgressEntry
	err := e.db.Model(&learning.UserProgress{}).
		Select("user_progresses.id, user_progresses.user_id, user_progresses.module_id, user_progresses.lesson_id, "+
			"user_progresses.completed, user_progresses.completed_at, "+
			"modules.title AS module_title, lessons.title AS lesson_title").
		Joins("LEFT JOIN modules ON modules.id = user_progresses.module_id").
		Joins("LEFT JOIN lessons ON lessons.id = user_progresses.lesson_id").
		Where("user_progresses.user_id = ?", userID).
		Order("user_progresses.completed_at asc").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// BadgeStatus is a catalog badge annotated with the user's earn state.
type BadgeStatus struct {
	learning.Badge
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at"`
}

// BadgeList returns every catalog badge with earned/earnedAt filled in from
// the user's awards. Badges never earned appear with earned=false.
func (e *Engine) BadgeList(userID uint) ([]BadgeStatus, error) {
	var badges []learning.Badge
	if err := e.db.Where("is_deleted = ?", false).Order("id asc").Find(&badges).Error; err != nil {
		return nil, err
	}

	var earned []learning.UserBadge
	if err := e.db.Where("user_id = ?", userID).Find(&earned).Error; err != nil {
		return nil, err
	}
	earnedByBadge := make(map[uint]learning.UserBadge, len(earned))
	for _, ub := range earned {
		earnedByBadge[ub.BadgeID] = ub
	}

	result := make([]BadgeStatus, len(badges))
	for i, badge := range badges {
		result[i] = BadgeStatus{Badge: badge}
		if ub, ok := earnedByBadge[badge.ID]; ok {
			result[i].Earned = ub.Earned
			result[i].EarnedAt = ub.EarnedAt
		}
	}
	return result, nil
}

// PersonalizedModule is a catalog module annotated with the user's
// completion counters.
type PersonalizedModule struct {
	learning.Module
	TotalLessons     int64   `json:"total_lessons"`
	CompletedLessons int64   `json:"completed_lessons"`
	Progress         float64 `json:"progress"` // percentage in [0,100]
	ModuleCompleted  bool    `json:"module_completed"`
}

// PersonalizedModules returns the catalog modules matching the user's saved
// grade and subject preferences, each with per-lesson completion counts and
// a completion percentage. Without saved preferences the full catalog is
// returned.
func (e *Engine) PersonalizedModules(userID uint) ([]PersonalizedModule, error) {
	query := e.db.Where("is_deleted = ?", false).Order("order_index asc")

	var pref models.UserPreference
	err := e.db.Where("user_id = ?", userID).First(&pref).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil && pref.CompletedOnboarding {
		if pref.Grade != "" {
			query = query.Where("(grade = ? OR grade = '')", pref.Grade)
		}
		if pref.Subject != "" {
			query = query.Where("(subject = ? OR subject = '')", pref.Subject)
		}
	}

	var modules []learning.Module
	if err := query.Find(&modules).Error; err != nil {
		return nil, err
	}

	result := make([]PersonalizedModule, len(modules))
	for i, module := range modules {
		entry := PersonalizedModule{Module: module}

		if err := e.db.Model(&learning.Lesson{}).
			Where("module_id = ? AND is_deleted = ?", module.ID, false).
			Count(&entry.TotalLessons).Error; err != nil {
			return nil, err
		}
		if err := e.db.Model(&learning.UserProgress{}).
			Where("user_id = ? AND module_id = ? AND lesson_id IS NOT NULL AND completed = ?", userID, module.ID, true).
			Count(&entry.CompletedLessons).Error; err != nil {
			return nil, err
		}

		if entry.TotalLessons > 0 {
			entry.Progress = float64(entry.CompletedLessons) / float64(entry.TotalLessons) * 100
		}
		if entry.Progress > 100 {
			entry.Progress = 100
		}
		if entry.Progress < 0 {
			entry.Progress = 0
		}
		entry.ModuleCompleted = entry.TotalLessons > 0 && entry.CompletedLessons >= entry.TotalLessons

		result[i] = entry
	}
	return result, nil
}
