// models/models.go - Core Models
package models

import (
	"time"
)

// Arrival statuses recorded in arrival_log.
const (
	StatusArrived  = "arrived"
	StatusDeparted = "departed"
)

// Team is immutable reference data seeded before the event starts.
type Team struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:100"`
	JoinCode  string    `json:"join_code" gorm:"unique;size:36"`
	CreatedAt time.Time `json:"created_at"`
}

// Checkpoint is a physical station on the course. Position is the
// intended visiting order; the log itself does not enforce it.
type Checkpoint struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:100"`
	Position  int       `json:"position" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
}

// Task is a scored activity belonging to one checkpoint.
type Task struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	CheckpointID uint        `json:"checkpoint_id" gorm:"not null;index"`
	Checkpoint   *Checkpoint `json:"checkpoint,omitempty" gorm:"foreignKey:CheckpointID"`
	Name         string      `json:"name" gorm:"not null;size:100"`
	Points       int         `json:"points" gorm:"not null;default:0"`
	CreatedAt    time.Time   `json:"created_at"`
}

// TaskLog is one append-only completion row per task per submission.
// Deliberately not unique-constrained: a submission repeating a task id
// writes both rows, and scoring sums them as separate contributions.
type TaskLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TaskID    uint      `json:"task_id" gorm:"not null;index"`
	TeamID    uint      `json:"team_id" gorm:"not null;index"`
	Completed bool      `json:"completed" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// ArrivalLog marks a team's presence at a checkpoint. The composite
// unique index allows at most one row per (checkpoint, team, status),
// so a second departed marker can never land, even if two transactions
// race past the read guard.
type ArrivalLog struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CheckpointID uint      `json:"checkpoint_id" gorm:"not null;uniqueIndex:idx_arrival_visit"`
	TeamID       uint      `json:"team_id" gorm:"not null;uniqueIndex:idx_arrival_visit"`
	Status       string    `json:"status" gorm:"not null;size:20;uniqueIndex:idx_arrival_visit"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName methods keep the event schema's singular table names.
func (Team) TableName() string {
	return "team"
}

func (Checkpoint) TableName() string {
	return "checkpoint"
}

func (Task) TableName() string {
	return "task"
}

func (TaskLog) TableName() string {
	return "task_log"
}

func (ArrivalLog) TableName() string {
	return "arrival_log"
}
