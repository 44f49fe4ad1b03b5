package engine

import (
	"log/slog"
	"math/rand/v2"

	"github.com/withley/courier/internal/catalog"
	"github.com/withley/courier/internal/logging"
)

// Rand is the random source the engine draws from. *rand.Rand satisfies it;
// tests substitute scripted sources.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a seeded source. A zero seed picks a fresh one.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// Engine applies the rules of a playthrough to a session.
type Engine struct {
	catalog *catalog.Catalog
	rng     Rand
	log     *slog.Logger
}

func NewEngine(cat *catalog.Catalog, rng Rand) *Engine {
	return &Engine{
		catalog: cat,
		rng:     rng,
		log:     logging.New("engine"),
	}
}

// Catalog returns the content the engine was built with.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

func pick[T any](rng Rand, pool []T) T {
	return pool[rng.IntN(len(pool))]
}
