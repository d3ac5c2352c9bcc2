package learning

import (
	"time"

	"gorm.io/gorm"
)

// UserProgress records a completion fact for one user.
// A row with LessonID set marks a completed lesson; a row with LessonID nil
// marks the whole module as completed (written only once every lesson in
// the module has its own completed row).
type UserProgress struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"index:idx_progress_user_module;not null"`
	ModuleID    uint       `json:"module_id" gorm:"index:idx_progress_user_module;not null"`
	LessonID    *uint      `json:"lesson_id" gorm:"index"`
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
}

// IsModuleLevel reports whether this row marks a whole-module completion.
func (p *UserProgress) IsModuleLevel() bool {
	return p.LessonID == nil
}
