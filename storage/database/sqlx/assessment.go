package sqlxrepos

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/assessment"
)

var newestFirst = core.DBOrdering{Field: "completed_at", Ascending: false}

type responseRow struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	Kind          string    `db:"questionnaire_type"`
	Answers       string    `db:"answers"` // JSON array
	TotalScore    int       `db:"total_score"`
	SeverityLevel string    `db:"severity_level"`
	CompletedAt   time.Time `db:"completed_at"`
}

type assessmentRepository struct {
	db *sqlx.DB
}

var _ assessment.Repository = (*assessmentRepository)(nil)

func NewAssessmentRepository(db *sqlx.DB) assessment.Repository {
	return &assessmentRepository{db: db}
}

func (repo *assessmentRepository) CompletedKinds(ctx context.Context, userID string) ([]assessment.Kind, error) {
	var kinds []assessment.Kind
	query := repo.db.Rebind("SELECT DISTINCT questionnaire_type FROM questionnaire_responses WHERE user_id = ?")
	if err := repo.db.SelectContext(ctx, &kinds, query, userID); err != nil {
		return nil, errors.Wrap(err, "selecting questionnaire types")
	}
	return kinds, nil
}

func (repo *assessmentRepository) RecentScores(ctx context.Context, userID string, limit int) ([]assessment.Score, error) {
	scores := make([]assessment.Score, 0, limit)
	query := repo.db.Rebind(
		"SELECT questionnaire_type, total_score, severity_level, completed_at FROM questionnaire_responses " +
			"WHERE user_id = ? ORDER BY " + newestFirst.String() + " LIMIT ?",
	)
	if err := repo.db.SelectContext(ctx, &scores, query, userID, limit); err != nil {
		return nil, errors.Wrap(err, "selecting recent scores")
	}
	for i := range scores {
		scores[i].CompletedAt = scores[i].CompletedAt.UTC()
	}
	return scores, nil
}

func (repo *assessmentRepository) CreateResponse(ctx context.Context, resp assessment.Response) (assessment.Response, error) {
	answers, err := json.Marshal(resp.Answers)
	if err != nil {
		return assessment.Response{}, errors.Wrap(err, "encoding answers")
	}
	row := responseRow{
		ID:            resp.ID,
		UserID:        resp.UserID,
		Kind:          string(resp.Kind),
		Answers:       string(answers),
		TotalScore:    resp.TotalScore,
		SeverityLevel: resp.SeverityLevel,
		CompletedAt:   resp.CompletedAt.UTC(),
	}
	_, err = repo.db.NamedExecContext(ctx,
		"INSERT INTO questionnaire_responses (id, user_id, questionnaire_type, answers, total_score, severity_level, completed_at) "+
			"VALUES (:id, :user_id, :questionnaire_type, :answers, :total_score, :severity_level, :completed_at)",
		row,
	)
	if err != nil {
		return assessment.Response{}, errors.Wrap(err, "inserting questionnaire response")
	}
	return resp, nil
}
