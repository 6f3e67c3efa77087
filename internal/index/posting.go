package index

// DocID uniquely identifies a document within one process's lifetime.
// Values are assigned by an Indexer, are strictly increasing starting at 1,
// and are never reused.
type DocID uint64

// Posting associates a term with one document and the ordered positions at
// which it occurs. Positions are strictly increasing and all refer to the
// same DocID.
type Posting struct {
	DocID     DocID
	Positions []int
}

// TermFrequency is the number of occurrences of the posting's term in its
// document — derived from Positions, never stored redundantly.
func (p Posting) TermFrequency() int {
	return len(p.Positions)
}

// PostingList is the sequence of Postings for one term, ordered by DocID
// ascending, with at most one Posting per DocID.
type PostingList []Posting

// DocumentMeta records identity and shape for one indexed document.
type DocumentMeta struct {
	ID     DocID
	Path   string
	Title  string
	Length int
}
