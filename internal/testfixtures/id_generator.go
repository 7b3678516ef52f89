package testfixtures

import (
	"fmt"
	"sync"
)

// IDGenerator produces deterministic prefixed identifiers for tests,
// mirroring the shape produced by the identity package.
type IDGenerator struct {
	mu      sync.Mutex
	counter uint64
}

// NewIDGenerator constructs a deterministic generator.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Next returns the next identifier carrying the supplied prefix.
func (g *IDGenerator) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	if prefix == "" {
		return fmt.Sprintf("%d", g.counter)
	}
	return fmt.Sprintf("%s-%d", prefix, g.counter)
}

// NextFunc exposes Next as a function suitable for dependency injection.
func (g *IDGenerator) NextFunc() func(prefix string) string {
	if g == nil {
		return func(string) string { return "" }
	}
	return g.Next
}

// SetCounter overrides the internal counter, enabling deterministic resets.
func (g *IDGenerator) SetCounter(counter uint64) {
	g.mu.Lock()
	g.counter = counter
	g.mu.Unlock()
}

// TokenGenerator yields deterministic invitation tokens for tests.
type TokenGenerator struct {
	mu      sync.Mutex
	counter uint64
}

// NewTokenGenerator constructs a deterministic token generator.
func NewTokenGenerator() *TokenGenerator {
	return &TokenGenerator{}
}

// Next returns the next token in the sequence.
func (g *TokenGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("token-%d", g.counter)
}

// NextFunc exposes Next as a function suitable for dependency injection.
func (g *TokenGenerator) NextFunc() func() string {
	if g == nil {
		return func() string { return "" }
	}
	return g.Next
}
