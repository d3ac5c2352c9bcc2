package gamification

import "errors"

var (
	// ErrUserNotFound is returned when the user id does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrLessonNotFound is returned when the lesson id is absent from the
	// catalog or does not belong to the given module. The completion is
	// rejected before any state changes.
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrModuleNotFound is returned when the module id is absent from the catalog.
	ErrModuleNotFound = errors.New("module not found")
)

// InvariantError signals a broken engine invariant (negative XP, level out
// of range). It aborts the surrounding transaction and is never clamped away.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return "gamification invariant violated: " + e.Reason
}
