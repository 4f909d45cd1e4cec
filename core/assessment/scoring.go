package assessment

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core"
)

var (
	ErrUnknownKind    = errors.New("unknown questionnaire type")
	ErrAnswerCount    = errors.New("wrong number of answers")
	ErrAnswerOutRange = errors.New("answers must be between 0 and 3")
)

const maxItemScore = 3

// Evaluate sums the item answers and maps the total onto the instrument's severity bands.
func Evaluate(kind Kind, answers []int) (total int, severity string, err error) {
	inst, ok := instruments[kind]
	if !ok {
		return 0, "", core.NewValidationError(ErrUnknownKind, core.FieldError{Field: "kind", Error: ErrUnknownKind.Error()})
	}
	if len(answers) != inst.items {
		msg := fmt.Sprintf("%s requires %d answers", kind, inst.items)
		return 0, "", core.NewValidationError(ErrAnswerCount, core.FieldError{Field: "answers", Error: msg})
	}
	for _, a := range answers {
		if a < 0 || a > maxItemScore {
			return 0, "", core.NewValidationError(ErrAnswerOutRange, core.FieldError{Field: "answers", Error: ErrAnswerOutRange.Error()})
		}
		total += a
	}
	return total, Severity(kind, total), nil
}

// Severity returns the severity label of a total score, "" for an unknown kind.
func Severity(kind Kind, total int) string {
	inst, ok := instruments[kind]
	if !ok {
		return ""
	}
	for _, b := range inst.bands {
		if total <= b.upTo {
			return b.severity
		}
	}
	return inst.bands[len(inst.bands)-1].severity
}
