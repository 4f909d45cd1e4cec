package video

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrInvalidTransition = errors.New("invalid player transition")

type PlayerState int

const (
	Collapsed PlayerState = iota
	Expanded
)

func (s PlayerState) String() string {
	if s == Expanded {
		return "expanded"
	}
	return "collapsed"
}

func (s PlayerState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Player is one video player: a thumbnail until played, then an embedded frame.
// A modal player sits in an overlay that can be closed, an inline one cannot.
type Player struct {
	ID       string
	Video    Video
	Modal    bool
	Autoplay bool

	mu      sync.Mutex
	state   PlayerState
	onClose func()
}

func NewPlayer(v Video, modal, autoplay bool, onClose func()) *Player {
	return &Player{
		ID:       uuid.NewString(),
		Video:    v,
		Modal:    modal,
		Autoplay: autoplay,
		onClose:  onClose,
	}
}

func (p *Player) State() PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Play expands a collapsed player.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Collapsed {
		return errors.Wrap(ErrInvalidTransition, "play: already expanded")
	}
	p.state = Expanded
	return nil
}

// Close collapses an expanded modal player and then runs the close callback.
func (p *Player) Close() error {
	p.mu.Lock()
	if !p.Modal {
		p.mu.Unlock()
		return errors.Wrap(ErrInvalidTransition, "close: inline players cannot be closed")
	}
	if p.state != Expanded {
		p.mu.Unlock()
		return errors.Wrap(ErrInvalidTransition, "close: player is not expanded")
	}
	p.state = Collapsed
	onClose := p.onClose
	p.mu.Unlock()

	if onClose != nil {
		onClose()
	}
	return nil
}

// EmbedURL is the frame source on the video host.
func EmbedURL(host, videoID string, autoplay bool) string {
	ap := 0
	if autoplay {
		ap = 1
	}
	return fmt.Sprintf("%s/embed/%s?autoplay=%d&rel=0", host, videoID, ap)
}

type PlayerView struct {
	ID           string      `json:"id"`
	State        PlayerState `json:"state"`
	Modal        bool        `json:"modal"`
	Video        Video       `json:"video"`
	Style        Style       `json:"style"`
	ThumbnailURL string      `json:"thumbnail,omitempty"`
	EmbedURL     string      `json:"embed_url,omitempty"`
}

// View shows the thumbnail while collapsed and the embed URL once expanded.
func (p *Player) View(host string) PlayerView {
	state := p.State()
	v := PlayerView{
		ID:    p.ID,
		State: state,
		Modal: p.Modal,
		Video: p.Video,
		Style: StyleOf(p.Video.Category),
	}
	if state == Expanded {
		v.EmbedURL = EmbedURL(host, p.Video.VideoID, p.Autoplay)
	} else {
		v.ThumbnailURL = p.Video.ThumbnailURL
	}
	return v
}
