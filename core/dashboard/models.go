package dashboard

import (
	"time"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/assessment"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/avatar"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/journal"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/mood"
)

// Notification variants
const (
	VariantDefault     = "default"
	VariantDestructive = "destructive"
)

// Notification is a toast: shown once, never blocking.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

var (
	journalSaved  = Notification{Title: "Journal entry saved", Description: "Your thoughts have been recorded.", Variant: VariantDefault}
	journalFailed = Notification{Title: "Error", Description: "Failed to save journal entry.", Variant: VariantDestructive}
	loadFailed    = Notification{Title: "Error", Description: "Failed to load your assessments.", Variant: VariantDestructive}
)

type ScoreCard struct {
	Kind          assessment.Kind `json:"kind"`
	Title         string          `json:"title"`
	TotalScore    int             `json:"total_score"`
	MaxScore      int             `json:"max_score"`
	SeverityLevel string          `json:"severity_level"`
	BadgeVariant  string          `json:"badge_variant"`
	CompletedAt   time.Time       `json:"completed_at"`
}

func newScoreCard(s assessment.Score) *ScoreCard {
	variant := VariantDestructive
	if s.SeverityLevel == assessment.SeverityMinimal {
		variant = VariantDefault
	}
	return &ScoreCard{
		Kind:          s.Kind,
		Title:         s.Kind.Title(),
		TotalScore:    s.TotalScore,
		MaxScore:      s.Kind.MaxScore(),
		SeverityLevel: s.SeverityLevel,
		BadgeVariant:  variant,
		CompletedAt:   s.CompletedAt,
	}
}

type MoodView struct {
	Rating         mood.Rating `json:"rating"`
	Emoji          string      `json:"emoji"`
	Acknowledgment string      `json:"acknowledgment"`
}

// Snapshot is the rendered dashboard of one user.
type Snapshot struct {
	State         State              `json:"state"`
	Greeting      string             `json:"greeting"`
	Avatar        avatar.View        `json:"avatar"`
	PHQ9          *ScoreCard         `json:"phq9"`
	GAD7          *ScoreCard         `json:"gad7"`
	RecentScores  []assessment.Score `json:"recent_scores"`
	Mood          *MoodView          `json:"mood"`
	MoodScale     []mood.Option      `json:"mood_scale"`
	Notifications []Notification     `json:"notifications"`
}

// JournalResult is the outcome of a journal save. Notification is nil when nothing was attempted.
type JournalResult struct {
	Saved        bool           `json:"saved"`
	Entry        *journal.Entry `json:"entry,omitempty"`
	Notification *Notification  `json:"notification,omitempty"`
}
