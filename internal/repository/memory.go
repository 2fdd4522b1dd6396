package repository

import (
	"context"
	"sync"
)

// MemoryGateway keeps values in a map. It backs tests and throwaway runs.
type MemoryGateway struct {
	mu      sync.Mutex
	values  map[string]string
	saveErr error
	saves   int
}

// NewMemoryGateway creates a gateway pre-populated with entries.
func NewMemoryGateway(entries ...Entry) *MemoryGateway {
	g := &MemoryGateway{values: make(map[string]string)}
	for _, e := range entries {
		g.values[e.Key] = e.Value
	}
	return g
}

// Load implements Gateway.
func (g *MemoryGateway) Load(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	value, ok := g.values[key]
	return value, ok, nil
}

// Save implements Gateway.
func (g *MemoryGateway) Save(ctx context.Context, entries ...Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.saveErr != nil {
		return g.saveErr
	}
	for _, e := range entries {
		g.values[e.Key] = e.Value
	}
	g.saves++
	return nil
}

// Close implements Gateway.
func (g *MemoryGateway) Close() error { return nil }

// FailSaves makes every following Save return err. Pass nil to recover.
func (g *MemoryGateway) FailSaves(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.saveErr = err
}

// SaveCount returns the number of successful Save calls.
func (g *MemoryGateway) SaveCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saves
}

// Value returns the raw stored value for key.
func (g *MemoryGateway) Value(key string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	v, ok := g.values[key]
	return v, ok
}
