package journal

import (
	"context"
	"errors"
	"slices"
	"sync"
)

var ErrEmptyGame = errors.New("journal: empty game id")

// Journal is an append-only event feed per game.
type Journal interface {
	Append(ctx context.Context, game string, events ...Event) error
	Events(ctx context.Context, game string) ([]Event, error)
}

// Memory keeps events in process, for tests and runs without Redis.
type Memory struct {
	mu     sync.RWMutex
	events map[string][]Event
}

var _ Journal = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{events: make(map[string][]Event)}
}

func (m *Memory) Append(_ context.Context, game string, events ...Event) error {
	if game == "" {
		return ErrEmptyGame
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range events {
		e.Game = game
		m.events[game] = append(m.events[game], e)
	}
	return nil
}

func (m *Memory) Events(_ context.Context, game string) ([]Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.events[game]), nil
}

// Games returns the ids of every game recorded so far.
func (m *Memory) Games() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.events))
	for id := range m.events {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
