package gamification

import (
	"errors"
	"time"

	"teachtech/models"
	"teachtech/models/learning"

	"gorm.io/gorm"
)

// badgeFacts holds the counters the badge predicates are evaluated against.
type badgeFacts struct {
	XP               int
	CompletedLessons int64
	CompletedModules int64
	TotalModules     int64
}

func loadBadgeFacts(tx *gorm.DB, userID uint) (*badgeFacts, error) {
	var user models.User
	if err := tx.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	facts := &badgeFacts{XP: user.XP}

	if err := tx.Model(&learning.UserProgress{}).
		Where("user_id = ? AND lesson_id IS NOT NULL AND completed = ?", userID, true).
		Count(&facts.CompletedLessons).Error; err != nil {
		return nil, err
	}
	if err := tx.Model(&learning.UserProgress{}).
		Where("user_id = ? AND lesson_id IS NULL AND completed = ?", userID, true).
		Count(&facts.CompletedModules).Error; err != nil {
		return nil, err
	}
	if err := tx.Model(&learning.Module{}).
		Where("is_deleted = ?", false).
		Count(&facts.TotalModules).Error; err != nil {
		return nil, err
	}

	return facts, nil
}

// criteriaMet evaluates one badge predicate against the user's counters.
// The criteria set is a closed enumeration; unknown kinds never match.
func criteriaMet(badge *learning.Badge, facts *badgeFacts) bool {
	switch badge.Criteria {
	case learning.CriteriaCompleteFirstLesson:
		return facts.CompletedLessons >= 1
	case learning.CriteriaCompleteLessons:
		return badge.LessonRequirement > 0 && facts.CompletedLessons >= int64(badge.LessonRequirement)
	case learning.CriteriaCompleteFirstModule:
		return facts.CompletedModules >= 1
	case learning.CriteriaCompleteAllModules:
		return facts.TotalModules > 0 && facts.CompletedModules >= facts.TotalModules
	case learning.CriteriaEarnXP:
		return facts.XP >= badge.XPRequirement
	}
	return false
}

// evaluateBadges checks every badge the user has not earned yet and awards
// the ones whose criteria are now met. Returns the newly awarded badges.
func evaluateBadges(tx *gorm.DB, userID uint, now time.Time) ([]learning.Badge, error) {
	facts, err := loadBadgeFacts(tx, userID)
	if err != nil {
		return nil, err
	}

	var badges []learning.Badge
	if err := tx.Where("is_deleted = ?", false).Find(&badges).Error; err != nil {
		return nil, err
	}

	var earned []learning.UserBadge
	if err := tx.Where("user_id = ?", userID).Find(&earned).Error; err != nil {
		return nil, err
	}
	earnedSet := make(map[uint]bool, len(earned))
	for _, ub := range earned {
		earnedSet[ub.BadgeID] = true
	}

	var awarded []learning.Badge
	for _, badge := range badges {
		if earnedSet[badge.ID] {
			continue
		}
		if !criteriaMet(&badge, facts) {
			continue
		}
		ok, err := awardBadge(tx, userID, badge.ID, now)
		if err != nil {
			return nil, err
		}
		if ok {
			awarded = append(awarded, badge)
		}
	}
	return awarded, nil
}

// awardBadge creates the UserBadge row once per (user, badge). A second
// award attempt is a no-op, so the earned timestamp never changes.
func awardBadge(tx *gorm.DB, userID, badgeID uint, now time.Time) (bool, error) {
	var existing learning.UserBadge
	err := tx.Where("user_id = ? AND badge_id = ?", userID, badgeID).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	record := learning.UserBadge{
		UserID:   userID,
		BadgeID:  badgeID,
		Earned:   true,
		EarnedAt: &now,
	}
	if err := tx.Create(&record).Error; err != nil {
		return false, err
	}
	return true, nil
}
