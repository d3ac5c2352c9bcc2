package gamification

import (
	"testing"

	"teachtech/models"
	"teachtech/models/learning"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserPreference{},
		&learning.Module{},
		&learning.Lesson{},
		&learning.Badge{},
		&learning.UserProgress{},
		&learning.UserBadge{},
	))

	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Password: "x", XP: 0, Level: 1}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createModule(t *testing.T, db *gorm.DB, title string) *learning.Module {
	t.Helper()
	module := &learning.Module{Title: title, OrderIndex: 1}
	require.NoError(t, db.Create(module).Error)
	return module
}

func createLesson(t *testing.T, db *gorm.DB, moduleID uint, title string, xpReward int) *learning.Lesson {
	t.Helper()
	lesson := &learning.Lesson{ModuleID: moduleID, Title: title, XPReward: xpReward}
	require.NoError(t, db.Create(lesson).Error)
	return lesson
}

func createBadge(t *testing.T, db *gorm.DB, name string, criteria learning.BadgeCriteria, xpReq, lessonReq int) *learning.Badge {
	t.Helper()
	badge := &learning.Badge{Name: name, Criteria: criteria, XPRequirement: xpReq, LessonRequirement: lessonReq}
	require.NoError(t, db.Create(badge).Error)
	return badge
}

func seedDefaultBadges(t *testing.T, db *gorm.DB) {
	t.Helper()
	createBadge(t, db, "Getting Started", learning.CriteriaCompleteFirstLesson, 0, 0)
	createBadge(t, db, "Dedicated Learner", learning.CriteriaCompleteLessons, 0, 5)
	createBadge(t, db, "Module Master", learning.CriteriaCompleteFirstModule, 0, 0)
	createBadge(t, db, "Design Novice", learning.CriteriaEarnXP, 500, 0)
	createBadge(t, db, "Tech Explorer", learning.CriteriaCompleteAllModules, 0, 0)
}

func earnedBadgeNames(t *testing.T, db *gorm.DB, userID uint) []string {
	t.Helper()
	var names []string
	require.NoError(t, db.Model(&learning.UserBadge{}).
		Joins("JOIN badges ON badges.id = user_badges.badge_id").
		Where("user_badges.user_id = ? AND user_badges.earned = ?", userID, true).
		Order("badges.id asc").
		Pluck("badges.name", &names).Error)
	return names
}

func TestCompleteLessonCreditsXPAndAwardsBadges(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	seedDefaultBadges(t, db)

	user := createUser(t, db, "teacher1")
	module := createModule(t, db, "Module 1")
	lesson := createLesson(t, db, module.ID, "L1", 50)

	result, err := engine.CompleteLesson(user.ID, module.ID, lesson.ID)
	require.NoError(t, err)

	assert.False(t, result.AlreadyCompleted)
	assert.Equal(t, 50, result.XPAwarded)
	assert.Equal(t, 50, result.TotalXP)
	assert.Equal(t, 1, result.Level)
	assert.False(t, result.LeveledUp)
	assert.True(t, result.ModuleCompleted)

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, 50, updated.XP)
	assert.Equal(t, 1, updated.Level)

	// The sole lesson completed the module, so the module-level record exists
	var moduleRecord learning.UserProgress
	require.NoError(t, db.Where("user_id = ? AND module_id = ? AND lesson_id IS NULL", user.ID, module.ID).First(&moduleRecord).Error)
	assert.True(t, moduleRecord.Completed)
	require.NotNil(t, moduleRecord.CompletedAt)

	// Note: "Tech Explorer" also fires because the catalog has one module and it is complete
	names := earnedBadgeNames(t, db, user.ID)
	assert.Contains(t, names, "Getting Started")
	assert.Contains(t, names, "Module Master")
	assert.NotContains(t, names, "Design Novice")
	assert.NotContains(t, names, "Dedicated Learner")
}

func TestCompleteLessonIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	seedDefaultBadges(t, db)

	user := createUser(t, db, "teacher1")
	module := createModule(t, db, "Module 1")
	lesson := createLesson(t, db, module.ID, "L1", 50)

	first, err := engine.CompleteLesson(user.ID, module.ID, lesson.ID)
	require.NoError(t, err)
	require.False(t, first.AlreadyCompleted)

	var badgeBefore learning.UserBadge
	require.NoError(t, db.Where("user_id = ?", user.ID).Order("id asc").First(&badgeBefore).Error)

	second, err := engine.CompleteLesson(user.ID, module.ID, lesson.ID)
	require.NoError(t, err)

	assert.True(t, second.AlreadyCompleted)
	assert.Equal(t, 0, second.XPAwarded)
	assert.Equal(t, 50, second.TotalXP)
	assert.Empty(t, second.NewBadges)

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, 50, updated.XP)
	assert.Equal(t, 1, updated.Level)

	// Exactly one lesson row and one module row, no duplicates
	var progressCount int64
	require.NoError(t, db.Model(&learning.UserProgress{}).Where("user_id = ?", user.ID).Count(&progressCount).Error)
	assert.Equal(t, int64(2), progressCount)

	// The earned timestamp did not change on replay
	var badgeAfter learning.UserBadge
	require.NoError(t, db.Where("user_id = ?", user.ID).Order("id asc").First(&badgeAfter).Error)
	require.NotNil(t, badgeAfter.EarnedAt)
	assert.Equal(t, badgeBefore.EarnedAt.UnixNano(), badgeAfter.EarnedAt.UnixNano())
}

func TestLevelChangesExactlyAtThreshold(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)

	user := createUser(t, db, "teacher1")
	module := createModule(t, db, "Module 1")
	l1 := createLesson(t, db, module.ID, "L1", 199)
	l2 := createLesson(t, db, module.ID, "L2", 1)

	result, err := engine.CompleteLesson(user.ID, module.ID, l1.ID)
	require.NoError(t, err)
	assert.Equal(t, 199, result.TotalXP)
	assert.Equal(t, 1, result.Level)

	result, err = engine.CompleteLesson(user.ID, module.ID, l2.ID)
	require.NoError(t, err)
	assert.Equal(t, 200, result.TotalXP)
	assert.Equal(t, 2, result.Level)
	assert.True(t, result.LeveledUp)
}

func TestAllModulesBadgeRequiresEveryModule(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	seedDefaultBadges(t, db)

	user := createUser(t, db, "teacher1")

	var lessons []*learning.Lesson
	var modules []*learning.Module
	for i := 0; i < 4; i++ {
		module := createModule(t, db, "Module")
		modules = append(modules, module)
		lessons = append(lessons, createLesson(t, db, module.ID, "L", 10))
	}

	// Complete three of four modules
	for i := 0; i < 3; i++ {
		_, err := engine.CompleteLesson(user.ID, modules[i].ID, lessons[i].ID)
		require.NoError(t, err)
	}
	assert.NotContains(t, earnedBadgeNames(t, db, user.ID), "Tech Explorer")

	// The fourth module completes the set
	result, err := engine.CompleteLesson(user.ID, modules[3].ID, lessons[3].ID)
	require.NoError(t, err)
	assert.True(t, result.ModuleCompleted)
	assert.Contains(t, earnedBadgeNames(t, db, user.ID), "Tech Explorer")

	// Awarded exactly once
	var count int64
	require.NoError(t, db.Model(&learning.UserBadge{}).
		Joins("JOIN badges ON badges.id = user_badges.badge_id").
		Where("user_badges.user_id = ? AND badges.name = ?", user.ID, "Tech Explorer").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEarnXPBadgeAwardedWhenThresholdCrossed(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	createBadge(t, db, "Design Novice", learning.CriteriaEarnXP, 500, 0)

	user := createUser(t, db, "teacher1")
	module := createModule(t, db, "Module 1")
	l1 := createLesson(t, db, module.ID, "L1", 480)
	l2 := createLesson(t, db, module.ID, "L2", 40)

	result, err := engine.CompleteLesson(user.ID, module.ID, l1.ID)
	require.NoError(t, err)
	assert.Empty(t, result.NewBadges)

	result, err = engine.CompleteLesson(user.ID, module.ID, l2.ID)
	require.NoError(t, err)
	assert.Equal(t, 520, result.TotalXP)
	require.Len(t, result.NewBadges, 1)
	assert.Equal(t, "Design Novice", result.NewBadges[0].Name)
}

func TestCompleteLessonsCountBadge(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	createBadge(t, db, "Dedicated Learner", learning.CriteriaCompleteLessons, 0, 2)

	user := createUser(t, db, "teacher1")
	module := createModule(t, db, "Module 1")
	l1 := createLesson(t, db, module.ID, "L1", 10)
	l2 := createLesson(t, db, module.ID, "L2", 10)

	_, err := engine.CompleteLesson(user.ID, module.ID, l1.ID)
	require.NoError(t, err)
	assert.Empty(t, earnedBadgeNames(t, db, user.ID))

	result, err := engine.CompleteLesson(user.ID, module.ID, l2.ID)
	require.NoError(t, err)
	require.Len(t, result.NewBadges, 1)
	assert.Equal(t, "Dedicated Learner", result.NewBadges[0].Name)
}

func TestCompleteLessonUnknownLessonHasNoSideEffects(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	seedDefaultBadges(t, db)

	user := createUser(t, db, "teacher1")
	module := createModule(t, db, "Module 1")

	_, err := engine.CompleteLesson(user.ID, module.ID, 9999)
	assert.ErrorIs(t, err, ErrLessonNotFound)

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, 0, updated.XP)

	var progressCount int64
	require.NoError(t, db.Model(&learning.UserProgress{}).Where("user_id = ?", user.ID).Count(&progressCount).Error)
	assert.Zero(t, progressCount)
}

func TestCompleteLessonWrongModuleRejected(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)

	user := createUser(t, db, "teacher1")
	m1 := createModule(t, db, "Module 1")
	m2 := createModule(t, db, "Module 2")
	lesson := createLesson(t, db, m1.ID, "L1", 10)

	_, err := engine.CompleteLesson(user.ID, m2.ID, lesson.ID)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestModuleRecordOnlyWhenAllLessonsDone(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)

	user := createUser(t, db, "teacher1")
	module := createModule(t, db, "Module 1")
	l1 := createLesson(t, db, module.ID, "L1", 10)
	l2 := createLesson(t, db, module.ID, "L2", 10)

	result, err := engine.CompleteLesson(user.ID, module.ID, l1.ID)
	require.NoError(t, err)
	assert.False(t, result.ModuleCompleted)

	var count int64
	require.NoError(t, db.Model(&learning.UserProgress{}).
		Where("user_id = ? AND module_id = ? AND lesson_id IS NULL", user.ID, module.ID).
		Count(&count).Error)
	assert.Zero(t, count)

	result, err = engine.CompleteLesson(user.ID, module.ID, l2.ID)
	require.NoError(t, err)
	assert.True(t, result.ModuleCompleted)

	require.NoError(t, db.Model(&learning.UserProgress{}).
		Where("user_id = ? AND module_id = ? AND lesson_id IS NULL", user.ID, module.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestReconcileBadgesPicksUpLateCatalogAdditions(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)

	user := createUser(t, db, "teacher1")
	module := createModule(t, db, "Module 1")
	lesson := createLesson(t, db, module.ID, "L1", 10)

	_, err := engine.CompleteLesson(user.ID, module.ID, lesson.ID)
	require.NoError(t, err)

	// Badge seeded after the user already qualified
	createBadge(t, db, "Getting Started", learning.CriteriaCompleteFirstLesson, 0, 0)

	awarded, err := engine.ReconcileBadges(user.ID)
	require.NoError(t, err)
	require.Len(t, awarded, 1)
	assert.Equal(t, "Getting Started", awarded[0].Name)

	// Second sweep awards nothing
	awarded, err = engine.ReconcileBadges(user.ID)
	require.NoError(t, err)
	assert.Empty(t, awarded)
}
