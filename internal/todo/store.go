package todo

import "tagdo/internal/task"

// Store is the persistence port the Controller reads at startup and writes
// after every mutation.
type Store interface {
	// Load returns the last saved list. ok is false when nothing was ever saved.
	Load() (tasks []task.Task, ok bool, err error)
	Save(tasks []task.Task) error
}
