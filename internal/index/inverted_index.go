package index

import (
	"sort"
	"strings"
	"sync"
)

// InvertedIndex is the single owner of all postings, document lengths and
// document metadata. Writes come from exactly one Indexer at a time; reads
// may run concurrently with each other but never with a write. A
// sync.RWMutex enforces that discipline: the DocID counter itself
// lives in the Indexer, not here, since assigning an ID is a distinct
// concern from recording postings for it.
type InvertedIndex struct {
	mu       sync.RWMutex
	postings map[string]PostingList
	lengths  map[DocID]int
	metas    map[DocID]DocumentMeta
}

// New returns an empty InvertedIndex.
func New() *InvertedIndex {
	return &InvertedIndex{
		postings: make(map[string]PostingList),
		lengths:  make(map[DocID]int),
		metas:    make(map[DocID]DocumentMeta),
	}
}

// AddTerm appends position to the Posting of (term, doc), creating a new
// Posting when the term's last Posting belongs to a different document (or
// none exists yet). Callers — the Indexer — must add positions for a given
// (term, doc) pair in strictly increasing order; this is not re-validated
// here.
func (idx *InvertedIndex) AddTerm(term string, doc DocID, position int) {
	key := strings.ToLower(term)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	list := idx.postings[key]
	if n := len(list); n > 0 && list[n-1].DocID == doc {
		list[n-1].Positions = append(list[n-1].Positions, position)
	} else {
		list = append(list, Posting{DocID: doc, Positions: []int{position}})
	}
	idx.postings[key] = list
}

// SetDocLength records the emitted-token count for doc.
func (idx *InvertedIndex) SetDocLength(doc DocID, length int) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.lengths[doc] = length
}

// GetDocLength returns the recorded length for doc, or 0 if absent.
func (idx *InvertedIndex) GetDocLength(doc DocID) int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.lengths[doc]
}

// AddDocMeta records metadata for a document.
func (idx *InvertedIndex) AddDocMeta(meta DocumentMeta) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.metas[meta.ID] = meta
}

// GetDocMeta returns the metadata for doc and whether it exists.
func (idx *InvertedIndex) GetDocMeta(doc DocID) (DocumentMeta, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	meta, ok := idx.metas[doc]
	return meta, ok
}

// GetPostings returns the (case-insensitively looked up) posting list for
// term, or an empty list if the term was never indexed. The returned slice
// is a fresh copy: callers may not observe partial writes and the index
// never hands out its internal backing array.
func (idx *InvertedIndex) GetPostings(term string) PostingList {
	key := strings.ToLower(term)

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	list := idx.postings[key]
	out := make(PostingList, len(list))
	for i, p := range list {
		positions := make([]int, len(p.Positions))
		copy(positions, p.Positions)
		out[i] = Posting{DocID: p.DocID, Positions: positions}
	}
	return out
}

// DocFreq returns the number of documents containing term.
func (idx *InvertedIndex) DocFreq(term string) int {
	return len(idx.GetPostings(term))
}

// AllDocIDs returns every DocID known to the index, in ascending order.
func (idx *InvertedIndex) AllDocIDs() []DocID {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	ids := make([]DocID, 0, len(idx.lengths))
	for id := range idx.lengths {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DocumentCount returns the number of indexed documents.
func (idx *InvertedIndex) DocumentCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.lengths)
}
