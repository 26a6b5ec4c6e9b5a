// Package tasks is the in-memory status store for background work.
// Entries accumulate for the life of the process; nothing evicts
// completed tasks.
package tasks

import (
	"sync"
	"time"

	"github.com/bakerbass/guitarchops/internal/progress"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// Task is the status record polled by clients. Progress is monotonically
// non-decreasing and reaches 100 exactly once, on success.
type Task struct {
	ID        string      `json:"task_id"`
	Status    Status      `json:"status"`
	Progress  int         `json:"progress"`
	Message   string      `json:"message"`
	Result    interface{} `json:"result,omitempty"`
	Error     string      `json:"error,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Store is a concurrency-safe task registry.
type Store struct {
	mu    sync.RWMutex
	tasks map[string]*Task
}

// NewStore returns an empty task store.
func NewStore() *Store {
	return &Store{tasks: make(map[string]*Task)}
}

// Create registers a new pending task under the given identifier. An
// existing task with the same identifier is replaced.
func (s *Store) Create(id string) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	task := &Task{
		ID:        id,
		Status:    StatusPending,
		Progress:  0,
		Message:   "Queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.tasks[id] = task
	return cloneTask(task)
}

// Get returns a snapshot of the task, if present.
func (s *Store) Get(id string) (*Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, false
	}
	return cloneTask(task), true
}

// SetProgress moves a running task forward. Percent values are clamped
// to [0, 99] and regressions are ignored so observed progress never
// decreases; 100 is reserved for Complete.
func (s *Store) SetProgress(id string, percent int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.Status == StatusCompleted || task.Status == StatusError {
		return
	}

	if percent < 0 {
		percent = 0
	}
	if percent > 99 {
		percent = 99
	}
	if percent > task.Progress {
		task.Progress = percent
	}
	task.Status = StatusRunning
	task.Message = message
	task.UpdatedAt = time.Now().UTC()
}

// Complete marks the task successful with its materialized result.
func (s *Store) Complete(id string, result interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return
	}
	task.Status = StatusCompleted
	task.Progress = 100
	task.Message = "Complete!"
	task.Result = result
	task.UpdatedAt = time.Now().UTC()
}

// Fail marks the task failed with a human-readable message.
func (s *Store) Fail(id string, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return
	}
	task.Status = StatusError
	task.Error = errMsg
	task.Message = "Error: " + errMsg
	task.UpdatedAt = time.Now().UTC()
}

// Sink returns a progress sink that reports into the given task.
func (s *Store) Sink(id string) progress.Sink {
	return progress.Func(func(percent int, message string) {
		s.SetProgress(id, percent, message)
	})
}

func cloneTask(t *Task) *Task {
	copy := *t
	return &copy
}
