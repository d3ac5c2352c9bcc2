package gamification

import (
	"errors"
	"fmt"
	"time"

	"teachtech/models"
	"teachtech/models/learning"

	"gorm.io/gorm"
)

// Engine owns the XP, leveling and badge-award rules. All writes go through
// a single transaction per completion so XP and level are never observed
// out of sync.
type Engine struct {
	db *gorm.DB
}

// NewEngine creates an Engine on top of the given database handle.
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// CompletionResult describes what a completion call changed.
type CompletionResult struct {
	AlreadyCompleted bool             `json:"already_completed"`
	XPAwarded        int              `json:"xp_awarded"`
	TotalXP          int              `json:"total_xp"`
	Level            int              `json:"level"`
	LeveledUp        bool             `json:"leveled_up"`
	ModuleCompleted  bool             `json:"module_completed"`
	NewBadges        []learning.Badge `json:"new_badges"`
}

// CompleteLesson records that a user finished a lesson, credits its XP,
// recomputes the level, evaluates badges and derives module completion.
// Replaying a completion for an already-completed lesson is a no-op, so
// client retries never double-credit XP.
func (e *Engine) CompleteLesson(userID, moduleID, lessonID uint) (*CompletionResult, error) {
	result := &CompletionResult{NewBadges: []learning.Badge{}}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		var lesson learning.Lesson
		if err := tx.Where("id = ? AND module_id = ? AND is_deleted = ?", lessonID, moduleID, false).First(&lesson).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLessonNotFound
			}
			return err
		}

		var user models.User
		if err := tx.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		// Replay of an already-completed lesson: report current state, change nothing.
		var existing learning.UserProgress
		err := tx.Where("user_id = ? AND module_id = ? AND lesson_id = ? AND completed = ?",
			userID, moduleID, lessonID, true).First(&existing).Error
		if err == nil {
			result.AlreadyCompleted = true
			result.TotalXP = user.XP
			result.Level = user.Level
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now()
		if err := upsertLessonProgress(tx, userID, moduleID, lessonID, now); err != nil {
			return err
		}

		newXP := user.XP + lesson.XPReward
		newLevel := Level(newXP)
		if newXP < 0 {
			return &InvariantError{Reason: fmt.Sprintf("negative xp %d for user %d", newXP, userID)}
		}
		if newLevel < 1 || newLevel > MaxLevel {
			return &InvariantError{Reason: fmt.Sprintf("level %d out of range for user %d", newLevel, userID)}
		}

		// XP and level change together or not at all.
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{"xp": newXP, "level": newLevel}).Error; err != nil {
			return err
		}

		result.XPAwarded = lesson.XPReward
		result.TotalXP = newXP
		result.Level = newLevel
		result.LeveledUp = newLevel > user.Level

		awarded, err := evaluateBadges(tx, userID, now)
		if err != nil {
			return err
		}
		result.NewBadges = append(result.NewBadges, awarded...)

		moduleDone, err := completeModuleIfFinished(tx, userID, moduleID, now)
		if err != nil {
			return err
		}
		if moduleDone {
			result.ModuleCompleted = true
			awarded, err := evaluateBadges(tx, userID, now)
			if err != nil {
				return err
			}
			result.NewBadges = append(result.NewBadges, awarded...)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// upsertLessonProgress writes the lesson-level completion record, replacing
// an incomplete row in place so at most one row exists per
// (user, module, lesson).
func upsertLessonProgress(tx *gorm.DB, userID, moduleID, lessonID uint, now time.Time) error {
	var record learning.UserProgress
	err := tx.Where("user_id = ? AND module_id = ? AND lesson_id = ?", userID, moduleID, lessonID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = learning.UserProgress{
			UserID:      userID,
			ModuleID:    moduleID,
			LessonID:    &lessonID,
			Completed:   true,
			CompletedAt: &now,
		}
		return tx.Create(&record).Error
	}
	if err != nil {
		return err
	}

	record.Completed = true
	record.CompletedAt = &now
	return tx.Save(&record).Error
}

// completeModuleIfFinished writes the module-level progress record once
// every lesson of the module has a completed record for the user. The check
// is recomputed from the full lesson set every time, so a replay after the
// module is already complete is a no-op.
func completeModuleIfFinished(tx *gorm.DB, userID, moduleID uint, now time.Time) (bool, error) {
	var totalLessons int64
	if err := tx.Model(&learning.Lesson{}).
		Where("module_id = ? AND is_deleted = ?", moduleID, false).
		Count(&totalLessons).Error; err != nil {
		return false, err
	}
	if totalLessons == 0 {
		return false, nil
	}

	var completedLessons int64
	if err := tx.Model(&learning.UserProgress{}).
		Where("user_id = ? AND module_id = ? AND lesson_id IS NOT NULL AND completed = ?", userID, moduleID, true).
		Count(&completedLessons).Error; err != nil {
		return false, err
	}
	if completedLessons < totalLessons {
		return false, nil
	}

	// Already marked complete earlier
	var moduleRecord learning.UserProgress
	err := tx.Where("user_id = ? AND module_id = ? AND lesson_id IS NULL", userID, moduleID).First(&moduleRecord).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	moduleRecord = learning.UserProgress{
		UserID:      userID,
		ModuleID:    moduleID,
		Completed:   true,
		CompletedAt: &now,
	}
	if err := tx.Create(&moduleRecord).Error; err != nil {
		return false, err
	}
	return true, nil
}

// ReconcileBadges re-runs the badge award pass for one user outside the
// completion workflow. Awards are idempotent, so this is always safe; it
// picks up badges added to the catalog after the user already qualified.
func (e *Engine) ReconcileBadges(userID uint) ([]learning.Badge, error) {
	var awarded []learning.Badge
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var err error
		awarded, err = evaluateBadges(tx, userID, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return awarded, nil
}
