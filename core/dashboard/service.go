package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/assessment"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/avatar"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/journal"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/mood"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/session"
)

// SessionIdleTimeout is how long an untouched dashboard session is kept.
const SessionIdleTimeout = 30 * time.Minute

var NowFunc = time.Now // mockable

// Session is the dashboard state of one signed-in user.
type Session struct {
	mu       sync.Mutex
	identity session.Identity
	machine  Machine
	scores   []assessment.Score
	mood     *mood.Rating
	pending  []Notification
	lastSeen time.Time // guarded by Service.mu

	// generation increases with every fetch; only the latest fetch may apply its result.
	generation uint64
	cancel     context.CancelFunc
}

type Service struct {
	loader        *assessment.Loader
	journal       *journal.Service
	logger        core.Logger
	avatarService string

	mu        sync.Mutex
	sessions  map[string]*Session // by user ID
	lastSweep time.Time
}

func NewService(loader *assessment.Loader, journalSvc *journal.Service, logger core.Logger, conf *core.Config) *Service {
	return &Service{
		loader:        loader,
		journal:       journalSvc,
		logger:        logger,
		avatarService: conf.AvatarService,
		sessions:      make(map[string]*Session),
	}
}

func (svc *Service) sessionOf(id session.Identity) *Session {
	now := NowFunc()

	svc.mu.Lock()
	if now.Sub(svc.lastSweep) >= SessionIdleTimeout/2 {
		svc.evictIdle(now)
	}
	s, ok := svc.sessions[id.UserID]
	if !ok {
		s = &Session{}
		svc.sessions[id.UserID] = s
	}
	s.lastSeen = now
	svc.mu.Unlock()

	s.mu.Lock()
	s.identity = id
	s.mu.Unlock()
	return s
}

// evictIdle drops the sessions not used for SessionIdleTimeout. svc.mu must be held.
func (svc *Service) evictIdle(now time.Time) {
	for userID, s := range svc.sessions {
		if now.Sub(s.lastSeen) >= SessionIdleTimeout {
			delete(svc.sessions, userID)
		}
	}
	svc.lastSweep = now
}

// Load runs the assessment loader for the signed-in user and renders the dashboard.
// Every successful load of a user with a missing questionnaire raises the welcome prompt,
// unless a questionnaire is already open.
func (svc *Service) Load(ctx context.Context) (Snapshot, error) {
	id := session.FromContext(ctx)
	if id.IsZero() {
		return svc.render(&Session{}), nil
	}
	s := svc.sessionOf(id)
	svc.fetch(ctx, s, false)
	return svc.render(s), nil
}

// Dispatch applies a user action to the view state machine.
func (svc *Service) Dispatch(ctx context.Context, e Event) (Snapshot, error) {
	id := session.FromContext(ctx)
	if id.IsZero() {
		return Snapshot{}, session.ErrNoIdentity
	}
	s := svc.sessionOf(id)

	s.mu.Lock()
	_, err := s.machine.Fire(e)
	s.mu.Unlock()
	if err != nil {
		return Snapshot{}, err
	}

	if e.Refetch() {
		svc.fetch(ctx, s, true)
	}
	return svc.render(s), nil
}

// SelectMood keeps the rating for the session only.
func (svc *Service) SelectMood(ctx context.Context, r mood.Rating) (Snapshot, error) {
	id := session.FromContext(ctx)
	if id.IsZero() {
		return Snapshot{}, session.ErrNoIdentity
	}
	if !r.Valid() {
		return Snapshot{}, core.NewValidationError(mood.ErrOutOfRange, core.FieldError{Field: "rating", Error: mood.ErrOutOfRange.Error()})
	}
	s := svc.sessionOf(id)

	s.mu.Lock()
	s.mood = &r
	s.mu.Unlock()
	return svc.render(s), nil
}

// SaveJournal stores a journal entry, attaching the selected mood when the entry has none.
// A store failure is reported as a notification, not as an error.
func (svc *Service) SaveJournal(ctx context.Context, ne journal.NewEntry) (JournalResult, error) {
	id := session.FromContext(ctx)
	if id.IsZero() {
		return JournalResult{}, nil
	}
	s := svc.sessionOf(id)

	if ne.MoodRating == nil {
		s.mu.Lock()
		if s.mood != nil {
			r := int(*s.mood)
			ne.MoodRating = &r
		}
		s.mu.Unlock()
	}

	entry, saved, err := svc.journal.Save(ctx, ne)
	if err != nil {
		svc.logger.Error("saving journal entry", err, id)
		n := journalFailed
		return JournalResult{Notification: &n}, nil
	}
	if !saved {
		return JournalResult{}, nil
	}

	s.mu.Lock()
	s.mood = nil
	s.mu.Unlock()

	n := journalSaved
	return JournalResult{Saved: true, Entry: &entry, Notification: &n}, nil
}

// AssessmentCompleted closes an active questionnaire and re-reads the scores.
func (svc *Service) AssessmentCompleted(ctx context.Context) (Snapshot, error) {
	id := session.FromContext(ctx)
	if id.IsZero() {
		return Snapshot{}, session.ErrNoIdentity
	}
	s := svc.sessionOf(id)

	s.mu.Lock()
	if st := s.machine.State(); st == PHQ9Active || st == GAD7Active {
		if _, err := s.machine.Fire(Complete); err != nil {
			s.mu.Unlock()
			return Snapshot{}, errors.Wrap(err, "completing assessment")
		}
	}
	s.mu.Unlock()

	svc.fetch(ctx, s, true)
	return svc.render(s), nil
}

// fetch reads the store for s. Starting a fetch cancels the one in flight
// and a superseded fetch never applies its result.
func (svc *Service) fetch(ctx context.Context, s *Session, scoresOnly bool) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	gen := s.generation
	id := s.identity
	fctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	var (
		res assessment.Result
		err error
	)
	if scoresOnly {
		res.Scores, err = svc.loader.FetchScores(fctx, id)
	} else {
		res, err = svc.loader.Load(fctx, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	s.cancel = nil

	if err != nil {
		svc.logger.Error("loading assessments", err, id)
		s.pending = append(s.pending, loadFailed)
		return
	}
	s.scores = res.Scores
	if !scoresOnly && res.NeedsInitialAssessment && s.machine.State() == Normal {
		_, _ = s.machine.Fire(PromptRequired)
	}
}

// render builds the Snapshot of s and hands out its pending notifications.
func (svc *Service) render(s *Session) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	online := true
	snap := Snapshot{
		State:    s.machine.State(),
		Greeting: "Welcome back, " + s.identity.FirstName() + "!",
		Avatar: avatar.Render(svc.avatarService, avatar.Options{
			Name:          s.identity.DisplayName(),
			Mood:          avatar.MoodHappy,
			ShowMoodBadge: true,
			Online:        &online,
			Size:          avatar.SizeLarge,
		}),
		RecentScores:  make([]assessment.Score, 0, len(s.scores)),
		MoodScale:     mood.Scale(),
		Notifications: make([]Notification, 0, len(s.pending)),
	}
	snap.RecentScores = append(snap.RecentScores, s.scores...)
	snap.Notifications = append(snap.Notifications, s.pending...)
	s.pending = nil

	if sc, ok := assessment.Latest(s.scores, assessment.PHQ9); ok {
		snap.PHQ9 = newScoreCard(sc)
	}
	if sc, ok := assessment.Latest(s.scores, assessment.GAD7); ok {
		snap.GAD7 = newScoreCard(sc)
	}
	if s.mood != nil {
		snap.Mood = &MoodView{
			Rating:         *s.mood,
			Emoji:          s.mood.Emoji(),
			Acknowledgment: mood.Acknowledgment(*s.mood),
		}
	}
	return snap
}
