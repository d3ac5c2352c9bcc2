package utils

import (
	"log"

	"teachtech/database"
	"teachtech/gamification"
	"teachtech/models"

	"github.com/robfig/cron/v3"
)

// InitializeBadgeScheduler sets up the nightly badge reconciliation sweep
func InitializeBadgeScheduler() {
	log.Println("[BADGE-SCHEDULER] Initializing badge scheduler...")

	c := cron.New()

	// Run daily at 3 AM to re-evaluate badges for all users
	c.AddFunc("0 3 * * *", func() {
		log.Println("[BADGE-SCHEDULER] Running daily badge reconciliation...")
		ReconcileAllBadges()
	})

	c.Start()
	log.Println("[BADGE-SCHEDULER] Badge scheduler started - runs daily at 3 AM")
}

// ReconcileAllBadges re-runs the badge award pass for every user. Awards are
// idempotent, so the sweep only ever adds badges users already qualify for,
// e.g. after a new badge row is seeded into the catalog.
func ReconcileAllBadges() {
	db := database.Database.Db
	engine := gamification.NewEngine(db)

	var users []models.User
	if err := db.Where("is_deleted = ?", false).Find(&users).Error; err != nil {
		log.Printf("[BADGE-SCHEDULER] Error fetching users: %v", err)
		return
	}

	awardedTotal := 0
	for _, user := range users {
		awarded, err := engine.ReconcileBadges(user.ID)
		if err != nil {
			log.Printf("[BADGE-SCHEDULER] Error reconciling badges for user %d: %v", user.ID, err)
			continue
		}
		awardedTotal += len(awarded)
	}

	log.Printf("[BADGE-SCHEDULER] Reconciliation finished: %d users checked, %d badges awarded", len(users), awardedTotal)
}
