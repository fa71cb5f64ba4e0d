// Package pairing partitions a participant pool into disjoint pairs for one
// round. Strategies are pure: they perform no I/O and draw all randomness
// from the *rand.Rand they are handed, so a seeded source makes them fully
// deterministic.
package pairing

import (
	"math/rand"

	"github.com/google/uuid"
)

// Strategy names accepted by the round-start request
const (
	StrategyRandom          = "random"
	StrategyHistoryAvoiding = "history_avoiding"
)

// Pair is one matched unit. Second is nil when First drew the bye slot.
type Pair struct {
	First  uuid.UUID
	Second *uuid.UUID
}

// History records which participants have already been paired in earlier
// rounds. A nil History reports no prior meetings.
type History map[uuid.UUID]map[uuid.UUID]struct{}

// Add records that a and b were paired
func (h History) Add(a, b uuid.UUID) {
	if h[a] == nil {
		h[a] = make(map[uuid.UUID]struct{})
	}
	if h[b] == nil {
		h[b] = make(map[uuid.UUID]struct{})
	}
	h[a][b] = struct{}{}
	h[b][a] = struct{}{}
}

// Met reports whether a and b were paired in an earlier round
func (h History) Met(a, b uuid.UUID) bool {
	if h == nil {
		return false
	}
	_, ok := h[a][b]
	return ok
}

// Strategy maps a set of participant ids to a round's pairing list. Every
// input id appears in exactly one output pair; output length is
// ceil(len(ids)/2), with exactly one bye pair iff the count is odd.
type Strategy interface {
	Name() string
	Pair(ids []uuid.UUID, history History, rng *rand.Rand) []Pair
}

// Random shuffles the pool and pairs consecutive entries. Memoryless: the
// same two people may be re-paired round after round.
type Random struct{}

func (Random) Name() string {
	return StrategyRandom
}

func (Random) Pair(ids []uuid.UUID, _ History, rng *rand.Rand) []Pair {
	if len(ids) == 0 {
		return nil
	}

	pool := make([]uuid.UUID, len(ids))
	copy(pool, ids)
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	pairs := make([]Pair, 0, (len(pool)+1)/2)
	for i := 0; i+1 < len(pool); i += 2 {
		second := pool[i+1]
		pairs = append(pairs, Pair{First: pool[i], Second: &second})
	}
	if len(pool)%2 == 1 {
		// the shuffled leftover sits this round out
		pairs = append(pairs, Pair{First: pool[len(pool)-1]})
	}
	return pairs
}

// HistoryAvoiding shuffles the pool, then pairs each participant with the
// first remaining candidate they have not met before, falling back to an
// already-met partner only when no fresh one remains.
type HistoryAvoiding struct{}

func (HistoryAvoiding) Name() string {
	return StrategyHistoryAvoiding
}

func (HistoryAvoiding) Pair(ids []uuid.UUID, history History, rng *rand.Rand) []Pair {
	if len(ids) == 0 {
		return nil
	}

	pool := make([]uuid.UUID, len(ids))
	copy(pool, ids)
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	used := make([]bool, len(pool))
	pairs := make([]Pair, 0, (len(pool)+1)/2)
	for i := range pool {
		if used[i] {
			continue
		}
		used[i] = true

		partner := -1
		fallback := -1
		for j := i + 1; j < len(pool); j++ {
			if used[j] {
				continue
			}
			if fallback == -1 {
				fallback = j
			}
			if !history.Met(pool[i], pool[j]) {
				partner = j
				break
			}
		}
		if partner == -1 {
			partner = fallback
		}
		if partner == -1 {
			// odd pool size leaves exactly one participant without a partner
			pairs = append(pairs, Pair{First: pool[i]})
			continue
		}

		used[partner] = true
		second := pool[partner]
		pairs = append(pairs, Pair{First: pool[i], Second: &second})
	}
	return pairs
}
