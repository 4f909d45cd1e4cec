package assessment

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Kind is a questionnaire instrument.
type Kind string

const (
	PHQ9 Kind = "PHQ9"
	GAD7 Kind = "GAD7"
)

var AllKinds = []Kind{PHQ9, GAD7}

type instrument struct {
	title    string
	items    int
	maxScore int
	bands    []band
}

type band struct {
	upTo     int
	severity string
}

// Severity labels
const (
	SeverityMinimal          = "Minimal"
	SeverityMild             = "Mild"
	SeverityModerate         = "Moderate"
	SeverityModeratelySevere = "Moderately Severe"
	SeveritySevere           = "Severe"
)

var instruments = map[Kind]instrument{
	PHQ9: {
		title:    "Depression Assessment",
		items:    9,
		maxScore: 27,
		bands: []band{
			{4, SeverityMinimal},
			{9, SeverityMild},
			{14, SeverityModerate},
			{19, SeverityModeratelySevere},
			{27, SeveritySevere},
		},
	},
	GAD7: {
		title:    "Anxiety Assessment",
		items:    7,
		maxScore: 21,
		bands: []band{
			{4, SeverityMinimal},
			{9, SeverityMild},
			{14, SeverityModerate},
			{21, SeveritySevere},
		},
	},
}

func (k Kind) Valid() bool {
	_, ok := instruments[k]
	return ok
}

// Items is the number of questions of the instrument.
func (k Kind) Items() int { return instruments[k].items }

func (k Kind) MaxScore() int { return instruments[k].maxScore }

func (k Kind) Title() string { return instruments[k].title }

// Score is the summary of a completed questionnaire, as read by the dashboard.
type Score struct {
	Kind          Kind      `db:"questionnaire_type" json:"questionnaire_type"`
	TotalScore    int       `db:"total_score" json:"total_score"`
	SeverityLevel string    `db:"severity_level" json:"severity_level"`
	CompletedAt   time.Time `db:"completed_at" json:"completed_at"` // UTC
}

// Response is a stored questionnaire submission.
type Response struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Kind          Kind      `json:"questionnaire_type"`
	Answers       []int     `json:"answers"`
	TotalScore    int       `json:"total_score"`
	SeverityLevel string    `json:"severity_level"`
	CompletedAt   time.Time `json:"completed_at"` // UTC
}

func (r Response) Score() Score {
	return Score{
		Kind:          r.Kind,
		TotalScore:    r.TotalScore,
		SeverityLevel: r.SeverityLevel,
		CompletedAt:   r.CompletedAt,
	}
}

// NewResponse is a questionnaire submitted by the signed-in user.
type NewResponse struct {
	Kind    Kind  `json:"kind" validate:"required,kind"`
	Answers []int `json:"answers" validate:"required,dive,min=0,max=3"`
}

func (nr NewResponse) Validate(validate *validator.Validate) error {
	if err := validate.Struct(nr); err != nil {
		return err
	}
	_, _, err := Evaluate(nr.Kind, nr.Answers)
	return err
}
