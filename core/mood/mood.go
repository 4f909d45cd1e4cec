// Package mood maps the 1 to 10 mood scale to emojis and acknowledgment texts.
package mood

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	MinRating Rating = 1
	MaxRating Rating = 10
)

var ErrOutOfRange = errors.Errorf("mood rating must be between %d and %d", MinRating, MaxRating)

// Rating is a self-reported mood, 1 (worst) to 10 (best).
type Rating int

func (r Rating) Valid() bool {
	return r >= MinRating && r <= MaxRating
}

type Band string

const (
	BandVerySad Band = "very_sad"
	BandSad     Band = "sad"
	BandNeutral Band = "neutral"
	BandHappy   Band = "happy"
	BandJoyful  Band = "joyful"
)

// bands are ordered by their inclusive upper bound.
var bands = []struct {
	upTo  Rating
	band  Band
	emoji string
}{
	{2, BandVerySad, "😢"},
	{4, BandSad, "😔"},
	{5, BandNeutral, "😐"},
	{8, BandHappy, "🙂"},
	{10, BandJoyful, "😊"},
}

func BandOf(r Rating) Band {
	for _, b := range bands {
		if r <= b.upTo {
			return b.band
		}
	}
	return BandJoyful
}

func (r Rating) Emoji() string {
	for _, b := range bands {
		if r <= b.upTo {
			return b.emoji
		}
	}
	return bands[len(bands)-1].emoji
}

// Acknowledgment is the text shown after a rating is picked.
func Acknowledgment(r Rating) string {
	return fmt.Sprintf("You selected: %s (%d/%d)", r.Emoji(), r, MaxRating)
}

type Option struct {
	Value Rating `json:"value"`
	Emoji string `json:"emoji"`
}

// Scale lists the selectable ratings in ascending order.
func Scale() []Option {
	opts := make([]Option, 0, MaxRating)
	for r := MinRating; r <= MaxRating; r++ {
		opts = append(opts, Option{Value: r, Emoji: r.Emoji()})
	}
	return opts
}
