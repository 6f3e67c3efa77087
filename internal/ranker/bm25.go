// Package ranker implements Okapi BM25 scoring over an inverted index's
// postings.
package ranker

import (
	"math"
	"sort"

	"github.com/lexisearch/lexisearch/internal/index"
)

// fixed BM25 parameters (Okapi defaults).
const (
	k1 = 1.5
	b  = 0.75
)

// PostingSource is the read surface the ranker needs from an inverted
// index. *index.InvertedIndex satisfies it; tests can substitute a fake.
type PostingSource interface {
	GetPostings(term string) index.PostingList
	GetDocLength(doc index.DocID) int
	DocFreq(term string) int
	AllDocIDs() []index.DocID
	DocumentCount() int
}

// ScoredDoc pairs a document with its BM25 score.
type ScoredDoc struct {
	DocID index.DocID
	Score float64
}

// BM25 is a stateless scorer bound to fixed k1/b.
type BM25 struct{}

// New returns a BM25 ranker.
func New() *BM25 { return &BM25{} }

// idf computes the Okapi BM25 inverse document frequency for a term with
// document frequency df over a corpus of n documents (n floored at 1 so an
// empty corpus never divides by zero).
func idf(n, df int) float64 {
	nf := math.Max(1, float64(n))
	dff := float64(df)
	return math.Log((nf-dff+0.5)/(dff+0.5) + 1.0)
}

// averageLength returns the mean document length across the corpus, or 0
// for an empty corpus.
func averageLength(src PostingSource) float64 {
	ids := src.AllDocIDs()
	if len(ids) == 0 {
		return 0
	}
	var total int
	for _, id := range ids {
		total += src.GetDocLength(id)
	}
	return float64(total) / float64(len(ids))
}

// ScoreTerms computes BM25 scores for every document touched by any
// distinct term in terms (a multiset — duplicates collapse to one idf
// computation and one contribution per posting, so a term appearing three
// times in the query scores the same as it appearing once). Results are
// sorted by score descending, then DocID ascending.
func (r *BM25) ScoreTerms(src PostingSource, terms []string) []ScoredDoc {
	avgLen := averageLength(src)
	n := src.DocumentCount()

	distinct := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		distinct[t] = struct{}{}
	}

	scores := make(map[index.DocID]float64)
	for term := range distinct {
		df := src.DocFreq(term)
		if df == 0 {
			continue
		}
		termIDF := idf(n, df)

		for _, posting := range src.GetPostings(term) {
			tf := float64(posting.TermFrequency())
			dl := float64(src.GetDocLength(posting.DocID))
			ratio := 0.0
			if avgLen > 0 {
				ratio = dl / avgLen
			}
			denom := tf + k1*(1-b+b*ratio)
			contrib := termIDF * (tf * (k1 + 1)) / denom
			scores[posting.DocID] += contrib
		}
	}

	out := make([]ScoredDoc, 0, len(scores))
	for doc, score := range scores {
		out = append(out, ScoredDoc{DocID: doc, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].DocID < out[j].DocID
	})
	return out
}

// ScoreAll computes BM25 scores for every document in the corpus against
// terms, including documents that match none of them (score 0). Used by
// the search service's advisory ranked_suggestions fallback.
func (r *BM25) ScoreAll(src PostingSource, terms []string) []ScoredDoc {
	scored := r.ScoreTerms(src, terms)
	seen := make(map[index.DocID]struct{}, len(scored))
	for _, s := range scored {
		seen[s.DocID] = struct{}{}
	}
	for _, id := range src.AllDocIDs() {
		if _, ok := seen[id]; !ok {
			scored = append(scored, ScoredDoc{DocID: id, Score: 0})
		}
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].DocID < scored[j].DocID
	})
	return scored
}
