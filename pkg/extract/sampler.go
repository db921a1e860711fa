package extract

import (
	"math/rand"
	"sort"
	"time"
)

// DefaultSampleSize bounds how many rare words one run reports.
const DefaultSampleSize = 30

// Sampler draws a bounded random sample from the batch-wide rarities:
// candidates whose (lemma, POS) pair occurred exactly once across every
// processed document. Randomness decides which words are chosen; the
// returned order is always lemma-ascending so runs present consistently.
type Sampler struct {
	K    int
	rand *rand.Rand
}

// NewSampler creates a sampler keeping at most k words. A nil rng gets a
// time-seeded source; tests inject a fixed seed.
func NewSampler(k int, rng *rand.Rand) *Sampler {
	if k <= 0 {
		k = DefaultSampleSize
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Sampler{K: k, rand: rng}
}

// Sample counts candidates across the whole batch, keeps the singletons,
// and returns min(K, len(singletons)) of them without replacement, sorted
// by lemma. An empty batch or a batch with no singletons returns nil.
func (s *Sampler) Sample(candidates []Candidate) []Candidate {
	counts := make(map[Candidate]int, len(candidates))
	for _, c := range candidates {
		counts[c]++
	}

	rarities := make([]Candidate, 0, len(counts))
	for c, n := range counts {
		if n == 1 {
			rarities = append(rarities, c)
		}
	}
	if len(rarities) == 0 {
		return nil
	}

	// Map iteration order is random; sort before shuffling so a seeded
	// rng selects reproducibly.
	sort.Slice(rarities, func(i, j int) bool {
		if rarities[i].Lemma != rarities[j].Lemma {
			return rarities[i].Lemma < rarities[j].Lemma
		}
		return rarities[i].POS < rarities[j].POS
	})

	n := s.K
	if n > len(rarities) {
		n = len(rarities)
	}

	// Partial Fisher-Yates: the first n positions become the sample.
	for i := 0; i < n; i++ {
		j := i + s.rand.Intn(len(rarities)-i)
		rarities[i], rarities[j] = rarities[j], rarities[i]
	}
	sample := rarities[:n]

	sort.Slice(sample, func(i, j int) bool { return sample[i].Lemma < sample[j].Lemma })
	return sample
}
