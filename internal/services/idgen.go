package services

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// UUIDGenerator issues random version 4 UUIDs
type UUIDGenerator struct{}

// NewID implements IDGenerator
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator issues prefix1, prefix2, ... in order
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequenceGenerator creates a deterministic generator
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix, next: 1}
}

// NewID implements IDGenerator
func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.prefix + strconv.Itoa(g.next)
	g.next++
	return id
}
