package learning

import "gorm.io/gorm"

// BadgeCriteria is the closed set of badge-unlock predicate kinds.
// Adding a new kind requires an explicit case in the gamification engine.
type BadgeCriteria string

const (
	CriteriaCompleteFirstLesson BadgeCriteria = "complete_first_lesson"
	CriteriaCompleteLessons     BadgeCriteria = "complete_lessons"
	CriteriaCompleteFirstModule BadgeCriteria = "complete_first_module"
	CriteriaCompleteAllModules  BadgeCriteria = "complete_all_modules"
	CriteriaEarnXP              BadgeCriteria = "earn_xp"
)

// IsValid reports whether the criteria is one of the known kinds.
func (c BadgeCriteria) IsValid() bool {
	switch c {
	case CriteriaCompleteFirstLesson, CriteriaCompleteLessons,
		CriteriaCompleteFirstModule, CriteriaCompleteAllModules, CriteriaEarnXP:
		return true
	}
	return false
}

// Badge represents an achievement definition in the catalog
type Badge struct {
	gorm.Model
	Name              string        `json:"name"`
	Description       string        `json:"description"`
	Icon              string        `json:"icon"`
	Criteria          BadgeCriteria `json:"criteria" gorm:"type:varchar(40);not null"`
	XPRequirement     int           `json:"xp_requirement" gorm:"default:0"`     // Threshold for earn_xp, unused otherwise
	LessonRequirement int           `json:"lesson_requirement" gorm:"default:0"` // Threshold for complete_lessons, unused otherwise
	IsDeleted         bool          `gorm:"default:false"`
}
