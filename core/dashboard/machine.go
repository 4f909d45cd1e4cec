package dashboard

import (
	"github.com/pkg/errors"
)

var (
	ErrInvalidTransition = errors.New("invalid dashboard transition")
	ErrUnknownEvent      = errors.New("unknown dashboard action")
)

// State is what the dashboard shows on top of its cards.
type State int

const (
	Normal State = iota
	WelcomePrompt
	PHQ9Active
	GAD7Active
)

var stateNames = map[State]string{
	Normal:        "normal",
	WelcomePrompt: "welcome_prompt",
	PHQ9Active:    "phq9_active",
	GAD7Active:    "gad7_active",
}

func (s State) String() string {
	return stateNames[s]
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type Event string

const (
	PromptRequired Event = "prompt_required"
	StartPHQ9      Event = "start_phq9"
	StartGAD7      Event = "start_gad7"
	SkipPrompt     Event = "skip_prompt"
	Complete       Event = "complete"
	Close          Event = "close"
)

// ParseEvent accepts the user-facing actions; PromptRequired is internal.
func ParseEvent(s string) (Event, error) {
	switch e := Event(s); e {
	case StartPHQ9, StartGAD7, SkipPrompt, Complete, Close:
		return e, nil
	}
	return "", ErrUnknownEvent
}

// Refetch reports whether the scores must be re-read after the event.
func (e Event) Refetch() bool {
	return e == Complete || e == Close
}

var transitions = map[State]map[Event]State{
	Normal: {
		PromptRequired: WelcomePrompt,
		StartPHQ9:      PHQ9Active,
		StartGAD7:      GAD7Active,
	},
	WelcomePrompt: {
		StartPHQ9:  PHQ9Active,
		StartGAD7:  GAD7Active,
		SkipPrompt: Normal,
	},
	PHQ9Active: {
		Complete: Normal,
		Close:    Normal,
	},
	GAD7Active: {
		Complete: Normal,
		Close:    Normal,
	},
}

// Machine is not safe for concurrent use; the owning Session guards it.
type Machine struct {
	state State
}

func (m *Machine) State() State { return m.state }

// Fire applies e and returns the new state, or ErrInvalidTransition leaving the state unchanged.
func (m *Machine) Fire(e Event) (State, error) {
	next, ok := transitions[m.state][e]
	if !ok {
		return m.state, errors.Wrapf(ErrInvalidTransition, "%s from %s", e, m.state)
	}
	m.state = next
	return next, nil
}
