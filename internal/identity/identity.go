// Package identity allocates the opaque identifiers and redemption tokens
// used across all collections. Callers must never parse an ID for meaning.
package identity

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"time"
)

const (
	idEntropyBytes    = 3
	tokenEntropyBytes = 24
)

// Generator produces identifiers of the form
// <prefix->millisecond-timestamp>-<random-hex> and long random hex tokens.
// The zero value is not usable; construct with NewGenerator.
type Generator struct {
	now  func() time.Time
	rand io.Reader
}

// NewGenerator wires a generator with the given time source and randomness.
// Nil arguments fall back to time.Now and crypto/rand.
func NewGenerator(now func() time.Time, random io.Reader) *Generator {
	if now == nil {
		now = time.Now
	}
	if random == nil {
		random = rand.Reader
	}
	return &Generator{now: now, rand: random}
}

// NewID returns a fresh identifier. The prefix is optional; when empty the
// ID is just the timestamp-suffix pair. Collisions are ruled out with
// overwhelming probability by the millisecond timestamp plus random suffix.
func (g *Generator) NewID(prefix string) string {
	suffix := strconv.FormatInt(g.now().UnixMilli(), 10) + "-" + g.randomHex(idEntropyBytes)
	if prefix == "" {
		return suffix
	}
	return prefix + "-" + suffix
}

// NewToken returns an unguessable redemption token: 48 hex characters of
// cryptographic randomness.
func (g *Generator) NewToken() string {
	return g.randomHex(tokenEntropyBytes)
}

func (g *Generator) randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := io.ReadFull(g.rand, buf); err != nil {
		// crypto/rand never fails on supported platforms; keep the ID unique
		// if an injected reader runs dry.
		return fmt.Sprintf("fallback-%d", g.now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
