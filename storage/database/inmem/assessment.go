package inmemdb

import (
	"context"
	"sort"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/assessment"
)

type assessmentRepository struct {
	db *responseTable
}

func NewAssessmentRepository(db *DB) assessment.Repository {
	return &assessmentRepository{db: db.assessment}
}

func (repo *assessmentRepository) CompletedKinds(_ context.Context, userID string) ([]assessment.Kind, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	seen := make(map[assessment.Kind]bool)
	kinds := make([]assessment.Kind, 0, len(assessment.AllKinds))
	for _, r := range repo.db.rows {
		if r.UserID == userID && !seen[r.Kind] {
			seen[r.Kind] = true
			kinds = append(kinds, r.Kind)
		}
	}
	return kinds, nil
}

func (repo *assessmentRepository) RecentScores(_ context.Context, userID string, limit int) ([]assessment.Score, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	scores := make([]assessment.Score, 0, limit)
	for i := len(repo.db.rows) - 1; i >= 0; i-- {
		if r := repo.db.rows[i]; r.UserID == userID {
			scores = append(scores, r.Score())
		}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].CompletedAt.After(scores[j].CompletedAt) })
	if len(scores) > limit {
		scores = scores[:limit]
	}
	return scores, nil
}

func (repo *assessmentRepository) CreateResponse(_ context.Context, resp assessment.Response) (assessment.Response, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	resp.Answers = append([]int(nil), resp.Answers...)
	repo.db.rows = append(repo.db.rows, resp)
	return resp, nil
}
