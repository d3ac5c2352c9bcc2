package database

import (
	"log"

	"teachtech/models/learning"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedCatalog inserts the initial learning catalog (modules, lessons, badges)
// when the modules table is empty. Catalog rows are immutable at runtime, so
// the seed never updates existing rows.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&learning.Module{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding learning catalog...")

	modules := []learning.Module{
		{Title: "Introduction to Canva for Education", Description: "Learn the basics of Canva for Education", XPReward: 150, OrderIndex: 1, Grade: "fundamental1", Subject: "multidisciplinar"},
		{Title: "Creating Your First Design", Description: "Create engaging presentations and materials", XPReward: 200, OrderIndex: 2, Grade: "fundamental1", Subject: "multidisciplinar"},
		{Title: "Interactive Educational Materials", Description: "Design quizzes and interactive content", XPReward: 250, OrderIndex: 3, Grade: "fundamental2", Subject: "multidisciplinar"},
	}
	if err := db.Create(&modules).Error; err != nil {
		return err
	}

	lessons := []learning.Lesson{
		{ModuleID: modules[0].ID, Title: "What is Canva for Education?", Content: "Canva for Education is a free design platform...", XPReward: 50, OrderIndex: 1,
			PracticalActivity: "Sign in and explore the template gallery",
			Resources:         datatypes.JSON([]byte(`["https://www.canva.com/education"]`))},
		{ModuleID: modules[0].ID, Title: "Creating Your Account", Content: "Setting up your educator account...", XPReward: 25, OrderIndex: 2},
		{ModuleID: modules[0].ID, Title: "Navigating the Interface", Content: "Understanding the Canva interface...", XPReward: 75, OrderIndex: 3},
		{ModuleID: modules[1].ID, Title: "Creating a Presentation", Content: "Building your first presentation...", XPReward: 100, OrderIndex: 1,
			PracticalActivity: "Build a five-slide presentation for your next class"},
		{ModuleID: modules[1].ID, Title: "Working with Images", Content: "Adding and editing images...", XPReward: 100, OrderIndex: 2},
		{ModuleID: modules[2].ID, Title: "Creating Interactive Quizzes", Content: "Build engaging quizzes...", XPReward: 125, OrderIndex: 1,
			Resources: datatypes.JSON([]byte(`["https://kahoot.com","https://wordwall.net"]`))},
		{ModuleID: modules[2].ID, Title: "Designing Worksheets", Content: "Create educational worksheets...", XPReward: 125, OrderIndex: 2},
	}
	if err := db.Create(&lessons).Error; err != nil {
		return err
	}

	badges := []learning.Badge{
		{Name: "Getting Started", Description: "Complete your first lesson", Icon: "star", Criteria: learning.CriteriaCompleteFirstLesson},
		{Name: "Dedicated Learner", Description: "Complete 5 lessons", Icon: "book", Criteria: learning.CriteriaCompleteLessons, LessonRequirement: 5},
		{Name: "Module Master", Description: "Complete your first module", Icon: "trophy", Criteria: learning.CriteriaCompleteFirstModule},
		{Name: "Design Novice", Description: "Earn 500 XP", Icon: "paintbrush", Criteria: learning.CriteriaEarnXP, XPRequirement: 500},
		{Name: "Tech Explorer", Description: "Complete all modules", Icon: "compass", Criteria: learning.CriteriaCompleteAllModules},
	}
	if err := db.Create(&badges).Error; err != nil {
		return err
	}

	log.Printf("Catalog seeded: %d modules, %d lessons, %d badges", len(modules), len(lessons), len(badges))
	return nil
}
