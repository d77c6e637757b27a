package selection

import (
	"fmt"
	"math/rand/v2"
)

// Ordering arranges the selected cases
type Ordering interface {
	Order(cases []Case) []Case
	String() string
}

// Declared keeps registration order
type Declared struct{}

func (Declared) Order(cases []Case) []Case {
	return append([]Case(nil), cases...)
}

func (Declared) String() string { return "declared" }

// Random shuffles the whole run with Seed. The same seed over the same cases
// always yields the same order.
type Random struct {
	Seed uint64
}

func (r Random) Order(cases []Case) []Case {
	out := append([]Case(nil), cases...)
	rng := rand.New(rand.NewPCG(r.Seed, r.Seed^0x9e3779b97f4a7c15))
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func (r Random) String() string { return fmt.Sprintf("random (seed %d)", r.Seed) }
