// Package passage provides the reference texts for typing tests.
package passage

import (
	"math/rand"
	"sync"
	"time"

	"github.com/verte-zerg/typespeed/internal/model"
)

// Provider selects passages from the built-in corpus. It is safe for
// concurrent use.
type Provider struct {
	mu     sync.Mutex
	rnd    *rand.Rand
	corpus []string
}

// New returns a Provider seeded with the current time.
func New() *Provider {
	return NewWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand returns a Provider using the given random source.
func NewWithRand(rnd *rand.Rand) *Provider {
	return &Provider{rnd: rnd, corpus: corpus}
}

// Random selects a passage uniformly.
func (p *Provider) Random() model.Passage {
	p.mu.Lock()
	idx := p.rnd.Intn(len(p.corpus))
	p.mu.Unlock()
	return model.Passage{Index: idx, Text: p.corpus[idx]}
}

// ByIndex returns the passage at i, or a random one when i is out of range.
func (p *Provider) ByIndex(i int) model.Passage {
	if i >= 0 && i < len(p.corpus) {
		return model.Passage{Index: i, Text: p.corpus[i]}
	}
	return p.Random()
}

// Count returns the corpus size.
func (p *Provider) Count() int {
	return len(p.corpus)
}

// All returns every passage in corpus order.
func (p *Provider) All() []model.Passage {
	out := make([]model.Passage, 0, len(p.corpus))
	for i, text := range p.corpus {
		out = append(out, model.Passage{Index: i, Text: text})
	}
	return out
}
