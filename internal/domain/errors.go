package domain

import "errors"

// Domain errors
var (
	ErrInvalidRecord        = errors.New("invalid expense record")
	ErrIndexOutOfRange      = errors.New("expense index out of range")
	ErrUnknownPlan          = errors.New("unknown spending plan")
	ErrBudgetRequired       = errors.New("a budget greater than zero is required")
	ErrLocked               = errors.New("locked")
	ErrUnknownCategoryColor = errors.New("no color configured for category")
	ErrPersistenceCorrupt   = errors.New("saved snapshot is corrupt")
	ErrSnapshotNotFound     = errors.New("snapshot not found")
	ErrInvalidBudget        = errors.New("budget must be greater than zero and at most 1000000000000")
	ErrInvalidPlanTable     = errors.New("invalid plan table")
	ErrUnknownLockTarget    = errors.New("unknown lock target")
	ErrUnknownCommand       = errors.New("unknown command")
)

// Validation constants
const (
	MaxNoteLength = 255
	DateLayout    = "2006-01-02"
)
