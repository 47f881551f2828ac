// Package entity defines the domain entities for the tasks feature.
package entity

import "time"

// Status is the lifecycle state of a task.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// Valid reports whether s is one of the known status values.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Toggle returns the binary toggle of the status: COMPLETED flips back to
// TODO, every other status (including IN_PROGRESS) flips to COMPLETED.
func (s Status) Toggle() Status {
	if s == StatusCompleted {
		return StatusTodo
	}
	return StatusCompleted
}

// Task represents a to-do item owned by exactly one user.
// The owner is set at creation from the authenticated identity and is
// immutable afterwards.
type Task struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"size:1024" json:"description"`
	Status      Status    `gorm:"size:32;not null;default:TODO;index" json:"status"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
