package journal

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/session"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type Entry struct {
	ID         string    `db:"id" json:"id"`
	OwnerID    string    `db:"user_id" json:"user_id"`
	Content    string    `db:"content" json:"content"`
	MoodRating *int      `db:"mood_rating" json:"mood_rating"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"` // UTC
}

// NewEntry is a journal submission. MoodRating is stored as given.
type NewEntry struct {
	Content    string `json:"content"`
	MoodRating *int   `json:"mood_rating"`
}

// IsBlank reports whether there is nothing to save.
func (ne NewEntry) IsBlank() bool {
	return strings.TrimSpace(ne.Content) == ""
}

type (
	Repository interface {
		CreateEntry(ctx context.Context, e Entry) (Entry, error)
		// ListEntries returns the owner's entries, newest first.
		ListEntries(ctx context.Context, ownerID string, limit int) ([]Entry, error)
	}

	Service struct {
		repo Repository
		now  func() time.Time
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Save stores a journal entry for the signed-in user.
// Blank content or a missing identity skip the write and report saved == false.
func (svc *Service) Save(ctx context.Context, ne NewEntry) (Entry, bool, error) {
	id := session.FromContext(ctx)
	if id.IsZero() || ne.IsBlank() {
		return Entry{}, false, nil
	}

	e := Entry{
		ID:         uuid.NewString(),
		OwnerID:    id.UserID,
		Content:    ne.Content,
		MoodRating: ne.MoodRating,
		CreatedAt:  svc.now().UTC(),
	}
	e, err := svc.repo.CreateEntry(ctx, e)
	if err != nil {
		return Entry{}, false, errors.Wrap(err, "inserting journal entry")
	}
	return e, true, nil
}

func (svc *Service) List(ctx context.Context, limit int) ([]Entry, error) {
	id := session.FromContext(ctx)
	if id.IsZero() {
		return nil, session.ErrNoIdentity
	}
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	entries, err := svc.repo.ListEntries(ctx, id.UserID, limit)
	return entries, errors.Wrap(err, "listing journal entries")
}
