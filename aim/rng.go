package aim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// SearchKey uniquely identifies a reproducible optimization run.
// Two runs with the same SearchKey and identical configuration MUST
// produce bit-for-bit identical results.
type SearchKey int64

// NewSearchKey creates a SearchKey from a seed value.
func NewSearchKey(seed int64) SearchKey {
	return SearchKey(seed)
}

const (
	// SubsystemSearch is the RNG subsystem driving CEM candidate draws.
	// Uses the master seed directly so --seed alone reproduces a search.
	SubsystemSearch = "search"

	// SubsystemDispersion is the RNG subsystem for any stochastic
	// perturbation of dispersion clouds (the default Halton generator
	// is deterministic and does not consume it).
	SubsystemDispersion = "dispersion"
)

// SubsystemIteration returns the subsystem name for CEM iteration N,
// so per-iteration draws stay isolated from each other.
func SubsystemIteration(i int) string {
	return fmt.Sprintf("iteration_%d", i)
}

// PartitionedRNG provides deterministic, isolated RNG instances per
// subsystem, so adding draws to one subsystem never shifts another's
// stream.
//
// Derivation formula:
//   - For SubsystemSearch: uses the master seed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine.
type PartitionedRNG struct {
	key        SearchKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SearchKey.
func NewPartitionedRNG(key SearchKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same name always returns the same *rand.Rand instance
// (cached). Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var derivedSeed int64
	if name == SubsystemSearch {
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SearchKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SearchKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
