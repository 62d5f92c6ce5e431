// services/record_service.go - Checkpoint event log engine
package services

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"racelog/models"
)

// TaskResult is one task outcome in a departure submission.
type TaskResult struct {
	ID        uint `json:"id"`
	Completed bool `json:"completed"`
}

// RecordService writes the append-only checkpoint event log. All
// mutable state lives in the store; the service itself is stateless
// and safe for concurrent use.
type RecordService struct {
	db *gorm.DB
}

func NewRecordService(db *gorm.DB) *RecordService {
	return &RecordService{db: db}
}

var serializable = &sql.TxOptions{Isolation: sql.LevelSerializable}

// LogDeparture records that a team left a checkpoint with the given
// task outcomes. The guard check and every insert run in one
// serializable transaction: either the full set of task_log rows plus
// the single departed marker commit together, or nothing persists.
//
// A duplicate submission fails with ErrAlreadyLogged. When two
// submissions for the same (checkpoint, team) race, the transaction
// isolation lets only one pass the guard; the loser either sees the
// committed marker or hits the unique visit index, and both outcomes
// map to ErrAlreadyLogged. A submission repeating a task id writes
// both rows; scoring treats them as separate contributions.
func (s *RecordService) LogDeparture(ctx context.Context, teamID, checkpointID uint, results []TaskResult) error {
	if teamID == 0 || checkpointID == 0 || len(results) == 0 {
		return ErrInvalidRequest
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prior models.ArrivalLog
		err := tx.Where("checkpoint_id = ? AND team_id = ? AND status = ?",
			checkpointID, teamID, models.StatusDeparted).
			First(&prior).Error
		if err == nil {
			return ErrAlreadyLogged
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		for _, r := range results {
			entry := models.TaskLog{
				TaskID:    r.ID,
				TeamID:    teamID,
				Completed: r.Completed,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}

		mark := models.ArrivalLog{
			CheckpointID: checkpointID,
			TeamID:       teamID,
			Status:       models.StatusDeparted,
		}
		return tx.Create(&mark).Error
	}, serializable)

	return mapRecordErr("log departure", err)
}

// LogArrival records a team reaching a checkpoint. A pair may be
// logged through this path only once, whatever the prior row's status;
// the departed marker is added separately by LogDeparture. The check
// and insert share one transaction so concurrent double arrivals
// cannot both land.
func (s *RecordService) LogArrival(ctx context.Context, teamID, checkpointID uint, status string) error {
	if teamID == 0 || checkpointID == 0 || status == "" {
		return ErrInvalidRequest
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prior models.ArrivalLog
		err := tx.Where("checkpoint_id = ? AND team_id = ?", checkpointID, teamID).
			First(&prior).Error
		if err == nil {
			return ErrAlreadyLogged
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		entry := models.ArrivalLog{
			CheckpointID: checkpointID,
			TeamID:       teamID,
			Status:       status,
		}
		return tx.Create(&entry).Error
	}, serializable)

	return mapRecordErr("log arrival", err)
}

// mapRecordErr keeps the taxonomy: guard trips and duplicate-key
// losses are ErrAlreadyLogged, anything else from the store is a
// StorageError. Serialization conflicts stay StorageError; callers
// resubmit and then see ErrAlreadyLogged.
func mapRecordErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrAlreadyLogged):
		return ErrAlreadyLogged
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrAlreadyLogged
	default:
		return &StorageError{Op: op, Err: err}
	}
}
