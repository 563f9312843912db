package tasks

import "errors"

var (
	// ErrValidation marks a draft that cannot become a task. Nothing was
	// changed or written.
	ErrValidation = errors.New("invalid task")

	// ErrEmptyTitle is the validation failure for a blank title.
	ErrEmptyTitle = errors.New("task title must not be empty")

	// ErrNotFound is returned for an id that is not in the collection.
	ErrNotFound = errors.New("task not found")

	// ErrPersist is returned when a mutation was applied in memory but
	// writing the collection failed. The change is lost on restart unless a
	// later write succeeds.
	ErrPersist = errors.New("task collection not persisted")
)

// validationError wraps a specific rule violation so that errors.Is matches
// both ErrValidation and the rule's own sentinel.
type validationError struct {
	err error
}

func (e *validationError) Error() string { return e.err.Error() }

func (e *validationError) Is(target error) bool { return target == ErrValidation }

func (e *validationError) Unwrap() error { return e.err }
