package video

import (
	"sync"

	"github.com/pkg/errors"
)

var ErrPlayerNotFound = errors.New("player not found")

// maxPlayersPerOwner bounds the open players of one user; the oldest is dropped first.
const maxPlayersPerOwner = 16

// Registry keeps the open players of every user and the video each one has up in a modal.
type Registry struct {
	mu         sync.RWMutex
	players    map[string]*Player  // by player ID
	owners     map[string]string   // player ID -> owner ID
	byOwner    map[string][]string // owner ID -> player IDs, oldest first
	nowPlaying map[string]string   // owner ID -> player ID
}

func NewRegistry() *Registry {
	return &Registry{
		players:    make(map[string]*Player),
		owners:     make(map[string]string),
		byOwner:    make(map[string][]string),
		nowPlaying: make(map[string]string),
	}
}

// Open creates a collapsed player for ownerID.
func (r *Registry) Open(ownerID, videoID string, modal, autoplay bool) (*Player, error) {
	v, err := Get(videoID)
	if err != nil {
		return nil, err
	}

	var p *Player
	p = NewPlayer(v, modal, autoplay, func() { r.closed(ownerID, p.ID) })

	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[p.ID] = p
	r.owners[p.ID] = ownerID
	ids := append(r.byOwner[ownerID], p.ID)
	for len(ids) > maxPlayersPerOwner {
		r.evict(ownerID, ids[0])
		ids = ids[1:]
	}
	r.byOwner[ownerID] = ids
	return p, nil
}

func (r *Registry) Get(ownerID, playerID string) (*Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.players[playerID]; ok && r.owners[playerID] == ownerID {
		return p, nil
	}
	return nil, ErrPlayerNotFound
}

func (r *Registry) Play(ownerID, playerID string) (*Player, error) {
	p, err := r.Get(ownerID, playerID)
	if err != nil {
		return nil, err
	}
	if err := p.Play(); err != nil {
		return nil, err
	}
	if p.Modal {
		r.mu.Lock()
		r.nowPlaying[ownerID] = p.ID
		r.mu.Unlock()
	}
	return p, nil
}

func (r *Registry) Close(ownerID, playerID string) (*Player, error) {
	p, err := r.Get(ownerID, playerID)
	if err != nil {
		return nil, err
	}
	if err := p.Close(); err != nil {
		return nil, err
	}
	return p, nil
}

// NowPlaying returns the video in the owner's open modal, if any.
func (r *Registry) NowPlaying(ownerID string) (Video, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.players[r.nowPlaying[ownerID]]; ok {
		return p.Video, true
	}
	return Video{}, false
}

// closed is the close callback of every modal player.
func (r *Registry) closed(ownerID, playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nowPlaying[ownerID] == playerID {
		delete(r.nowPlaying, ownerID)
	}
}

func (r *Registry) evict(ownerID, playerID string) {
	delete(r.players, playerID)
	delete(r.owners, playerID)
	if r.nowPlaying[ownerID] == playerID {
		delete(r.nowPlaying, ownerID)
	}
}
