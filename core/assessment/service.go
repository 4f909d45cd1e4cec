package assessment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/session"
)

type (
	Repository interface {
		// CompletedKinds returns the distinct questionnaire types the user has responses for.
		CompletedKinds(ctx context.Context, userID string) ([]Kind, error)
		// RecentScores returns at most `limit` scores of the user, newest first.
		RecentScores(ctx context.Context, userID string, limit int) ([]Score, error)
		CreateResponse(ctx context.Context, resp Response) (Response, error)
	}

	Service struct {
		repo Repository
		now  func() time.Time
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Submit scores and stores a questionnaire for the signed-in user.
func (svc *Service) Submit(ctx context.Context, nr NewResponse) (Response, error) {
	id := session.FromContext(ctx)
	if id.IsZero() {
		return Response{}, session.ErrNoIdentity
	}

	total, severity, err := Evaluate(nr.Kind, nr.Answers)
	if err != nil {
		return Response{}, err
	}
	resp := Response{
		ID:            uuid.NewString(),
		UserID:        id.UserID,
		Kind:          nr.Kind,
		Answers:       nr.Answers,
		TotalScore:    total,
		SeverityLevel: severity,
		CompletedAt:   svc.now().UTC(),
	}
	resp, err = svc.repo.CreateResponse(ctx, resp)
	return resp, errors.Wrap(err, "storing questionnaire response")
}

// Recent returns the newest scores of the signed-in user.
func (svc *Service) Recent(ctx context.Context) ([]Score, error) {
	id := session.FromContext(ctx)
	if id.IsZero() {
		return nil, session.ErrNoIdentity
	}
	scores, err := svc.repo.RecentScores(ctx, id.UserID, RecentLimit)
	return scores, errors.Wrap(err, "fetching recent scores")
}
