package main

import (
	"context"
	"log"
	"sort"
	"strings"
)

// AnswerProvider is the external answer-retrieval collaborator: given clue
// text, the required answer length and the known-letter pattern, it returns
// candidate words with confidence scores. The provider is not trusted to
// honor the length; the cache and the solver's fit check are the gates.
type AnswerProvider interface {
	GetAnswers(ctx context.Context, clueText string, length int, pattern string) ([]Candidate, error)
}

// cacheKey scopes memoized lookups: the same clue re-queried with an
// unchanged pattern must not re-invoke the provider.
type cacheKey struct {
	dir     Direction
	number  int
	pattern string
}

// CandidateCache memoizes candidate lookups per (direction, number, pattern).
// A nil provider is valid: clues without a fixed candidate list then simply
// have zero candidates.
type CandidateCache struct {
	provider AnswerProvider
	entries  map[cacheKey][]Candidate
}

// NewCandidateCache creates an empty cache backed by the given provider.
func NewCandidateCache(provider AnswerProvider) *CandidateCache {
	return &CandidateCache{
		provider: provider,
		entries:  make(map[cacheKey][]Candidate),
	}
}

// Fetch returns the candidates for a clue under the given pattern, sorted by
// confidence descending (stable, so ties keep their input order). A fixed
// candidate list on the clue is used verbatim; otherwise the provider is
// consulted once and the result cached. Provider failure counts as zero
// candidates, which is a normal state, not an error.
func (cc *CandidateCache) Fetch(ctx context.Context, clue *Clue, pattern string) []Candidate {
	key := cacheKey{clue.Direction, clue.Number, pattern}
	if cached, ok := cc.entries[key]; ok {
		return cached
	}

	var candidates []Candidate
	if len(clue.Candidates) > 0 {
		candidates = append([]Candidate(nil), clue.Candidates...)
	} else if cc.provider != nil {
		fetched, err := cc.provider.GetAnswers(ctx, clue.Text, clue.Length, pattern)
		if err != nil {
			log.Printf("answer provider failed for clue %d %s: %v", clue.Number, clue.Direction, err)
		}
		for _, cand := range fetched {
			word := strings.ToUpper(strings.TrimSpace(cand.Word))
			if len(word) != clue.Length {
				continue
			}
			candidates = append(candidates, Candidate{Word: word, Confidence: cand.Confidence})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	cc.entries[key] = candidates
	return candidates
}

// Prepopulate eagerly fetches and caches up to topN candidates for every
// provider-backed clue using the fully-unknown pattern, amortizing expensive
// lookups before search begins. Purely an optimization.
func (cc *CandidateCache) Prepopulate(ctx context.Context, grid *Grid, topN int) {
	for _, clue := range grid.Clues {
		if len(clue.Candidates) > 0 {
			continue
		}
		pattern := strings.Repeat(string(unknownMarker), clue.Length)
		candidates := cc.Fetch(ctx, clue, pattern)
		if topN > 0 && len(candidates) > topN {
			cc.entries[cacheKey{clue.Direction, clue.Number, pattern}] = candidates[:topN]
		}
	}
}

// Len returns the number of cached entries.
func (cc *CandidateCache) Len() int {
	return len(cc.entries)
}
