package assessment

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/session"
)

// RecentLimit is the number of scores the dashboard shows.
const RecentLimit = 10

// Result is what the dashboard needs from the store on load.
type Result struct {
	Scores                 []Score
	CompletedKinds         []Kind
	NeedsInitialAssessment bool
	Loaded                 bool // false when no user is signed in
}

type Loader struct {
	repo Repository
}

func NewLoader(repo Repository) *Loader {
	return &Loader{repo: repo}
}

// Load fetches the kinds the user ever completed and their newest scores.
// Without an identity it returns an empty Result and issues no query.
func (l *Loader) Load(ctx context.Context, id session.Identity) (Result, error) {
	if id.IsZero() {
		return Result{}, nil
	}

	kinds, err := l.repo.CompletedKinds(ctx, id.UserID)
	if err != nil {
		return Result{}, errors.Wrap(err, "fetching completed questionnaire types")
	}
	scores, err := l.repo.RecentScores(ctx, id.UserID, RecentLimit)
	if err != nil {
		return Result{}, errors.Wrap(err, "fetching recent scores")
	}
	return Result{
		Scores:                 scores,
		CompletedKinds:         kinds,
		NeedsInitialAssessment: NeedsInitialAssessment(kinds),
		Loaded:                 true,
	}, nil
}

// FetchScores only re-reads the newest scores, as done after a questionnaire closes.
func (l *Loader) FetchScores(ctx context.Context, id session.Identity) ([]Score, error) {
	if id.IsZero() {
		return nil, nil
	}
	scores, err := l.repo.RecentScores(ctx, id.UserID, RecentLimit)
	return scores, errors.Wrap(err, "fetching recent scores")
}

// NeedsInitialAssessment is true unless both PHQ9 and GAD7 were completed at least once.
func NeedsInitialAssessment(kinds []Kind) bool {
	var hasPHQ9, hasGAD7 bool
	for _, k := range kinds {
		switch k {
		case PHQ9:
			hasPHQ9 = true
		case GAD7:
			hasGAD7 = true
		}
	}
	return !(hasPHQ9 && hasGAD7)
}

// Latest returns the first score of `kind` in a newest-first list.
func Latest(scores []Score, kind Kind) (Score, bool) {
	for _, s := range scores {
		if s.Kind == kind {
			return s, true
		}
	}
	return Score{}, false
}
