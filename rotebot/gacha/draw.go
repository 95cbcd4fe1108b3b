package gacha

import (
	"math/rand"
	"sync"
	"time"
)

// Engine performs the weighted random draw. It holds no state between
// draws beyond its random source; the mutex exists because sessions for
// different users share one engine.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine returns an engine backed by the given source. Pass nil for a
// time-seeded source; tests inject a fixed seed for reproducible draws.
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rng: rng}
}

// BuildPool flattens the tier lists into a weighted pool by replicating
// each tier's members Weight() times. Draw probability of a character is
// its copy count over the pool size.
func BuildPool(rare, uncommon, common []string) []string {
	pool := make([]string, 0,
		len(rare)*RarityRare.Weight()+
			len(uncommon)*RarityUncommon.Weight()+
			len(common)*RarityCommon.Weight())

	for i := 0; i < RarityRare.Weight(); i++ {
		pool = append(pool, rare...)
	}
	for i := 0; i < RarityUncommon.Weight(); i++ {
		pool = append(pool, uncommon...)
	}
	for i := 0; i < RarityCommon.Weight(); i++ {
		pool = append(pool, common...)
	}
	return pool
}

// DefaultPool builds the pool from the built-in roster tier lists.
func DefaultPool() []string {
	return BuildPool(RareCharacters, UncommonCharacters, CommonCharacters)
}

// Draw selects one pool member uniformly at random.
func (e *Engine) Draw(pool []string) (string, error) {
	if len(pool) == 0 {
		return "", ErrEmptyPool
	}
	e.mu.Lock()
	idx := e.rng.Intn(len(pool))
	e.mu.Unlock()
	return pool[idx], nil
}
