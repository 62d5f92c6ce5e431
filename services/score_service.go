// services/score_service.go - Read-side score projection
package services

import (
	"context"

	"gorm.io/gorm"

	"racelog/models"
)

// TeamStanding is a team augmented with its replayed point total.
type TeamStanding struct {
	models.Team
	Points int `json:"points"`
}

// ScoreService derives point totals by replaying the committed task
// log. No running total is stored anywhere; the log is the only
// source of truth.
type ScoreService struct {
	db *gorm.DB
}

func NewScoreService(db *gorm.DB) *ScoreService {
	return &ScoreService{db: db}
}

// ComputeScores returns team id -> total points, summing task points
// over completed task_log rows. Duplicate rows for the same task are
// counted as separate contributions (the log does not deduplicate;
// flagged to product owners, kept as-is). Teams with no completions
// are absent from the map.
func (s *ScoreService) ComputeScores(ctx context.Context) (map[uint]int, error) {
	var rows []struct {
		TeamID uint
		Points int
	}

	err := s.db.WithContext(ctx).Raw(`
		SELECT
			task_log.team_id AS team_id,
			COALESCE(SUM(task.points), 0) AS points
		FROM
			task_log
		LEFT JOIN
			task
		ON
			task.id = task_log.task_id
		WHERE
			task_log.completed = ?
		GROUP BY
			task_log.team_id`, true).
		Scan(&rows).Error
	if err != nil {
		return nil, &StorageError{Op: "compute scores", Err: err}
	}

	scores := make(map[uint]int, len(rows))
	for _, r := range rows {
		scores[r.TeamID] = r.Points
	}
	return scores, nil
}

// Standings returns every team with its point total, zero for teams
// that have not completed anything yet.
func (s *ScoreService) Standings(ctx context.Context) ([]TeamStanding, error) {
	var teams []models.Team
	if err := s.db.WithContext(ctx).Order("id").Find(&teams).Error; err != nil {
		return nil, &StorageError{Op: "list teams", Err: err}
	}

	scores, err := s.ComputeScores(ctx)
	if err != nil {
		return nil, err
	}

	standings := make([]TeamStanding, 0, len(teams))
	for _, team := range teams {
		standings = append(standings, TeamStanding{
			Team:   team,
			Points: scores[team.ID],
		})
	}
	return standings, nil
}
