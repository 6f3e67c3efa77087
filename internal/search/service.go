// Package search evaluates a parsed query AST against an inverted index
// and a BM25 ranker, producing ranked SearchHits.
package search

import (
	"log/slog"
	"os"
	"strings"

	"github.com/lexisearch/lexisearch/internal/index"
	"github.com/lexisearch/lexisearch/internal/query"
	"github.com/lexisearch/lexisearch/internal/ranker"
	"github.com/lexisearch/lexisearch/internal/tokenizer"
)

const previewRunes = 150

// DocumentReader is the narrow read surface the search service needs to
// build a result preview. indexer.CompositeReader and friends satisfy it.
type DocumentReader interface {
	Read(path string) (string, error)
}

// SearchHit is one ranked result.
type SearchHit struct {
	DocID   index.DocID
	Title   string
	Path    string
	Score   float64
	Preview string
}

// Service evaluates queries against one InvertedIndex.
type Service struct {
	index  *index.InvertedIndex
	ranker *ranker.BM25
	reader DocumentReader
	logger *slog.Logger
}

// New builds a Service. reader may be nil, in which case previews are
// always the "unavailable" sentinel.
func New(idx *index.InvertedIndex, r *ranker.BM25, reader DocumentReader) *Service {
	return &Service{
		index:  idx,
		ranker: r,
		reader: reader,
		logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
}

// SetLogger overrides the service's logger.
func (s *Service) SetLogger(l *slog.Logger) { s.logger = l }

// Search parses query, collects every leaf's text into one term bag
// regardless of boolean operator (a permissive, recall-oriented evaluator),
// unions the candidate documents that contain any distinct term, and
// returns them BM25-ranked. Lexer/parser failures propagate to the caller;
// an empty or whitespace-only query, or one with no term or phrase left
// after the lexer drops stopwords, returns an empty result with no error.
// A panic during evaluation is logged at Error and yields an empty result.
func (s *Service) Search(q string) (hits []SearchHit, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("search failed", "query", q, "panic", r)
			hits, err = nil, nil
		}
	}()

	if strings.TrimSpace(q) == "" {
		return nil, nil
	}

	tokens, err := query.NewLexer(q).Lex()
	if err != nil {
		return nil, err
	}
	hasTerm := false
	for _, tok := range tokens {
		if tok.Type == query.Keyword || tok.Type == query.Phrase {
			hasTerm = true
			break
		}
	}
	if !hasTerm {
		return nil, nil
	}

	ast, err := query.NewParser(tokens).ParseQuery()
	if err != nil {
		return nil, err
	}

	bag := tokenizer.Tokenize(collectText(ast))
	if len(bag) == 0 {
		return nil, nil
	}

	candidates := s.candidateSet(bag)
	if len(candidates) == 0 {
		return nil, nil
	}

	scored := s.ranker.ScoreTerms(s.index, bag)
	hits = make([]SearchHit, 0, len(scored))
	for _, sd := range scored {
		if _, ok := candidates[sd.DocID]; !ok {
			continue
		}
		hits = append(hits, s.toHit(sd))
	}
	return hits, nil
}

// RankedSuggestions is an advisory fallback: when Search would return no
// hits, this scores the whole corpus against the tokenized query and
// returns it in BM25 order (ties at zero permitted). It never returns an
// error: it tokenizes the raw query text without lexing or parsing it, so
// query syntax (operators, parentheses, quotes) plays no part, and a query
// with no terms left after tokenization yields an empty suggestion list.
func (s *Service) RankedSuggestions(q string) []SearchHit {
	bag := tokenizer.Tokenize(q)
	if len(bag) == 0 {
		return nil
	}
	scored := s.ranker.ScoreAll(s.index, bag)
	hits := make([]SearchHit, 0, len(scored))
	for _, sd := range scored {
		hits = append(hits, s.toHit(sd))
	}
	return hits
}

func (s *Service) candidateSet(bag []string) map[index.DocID]struct{} {
	distinct := make(map[string]struct{}, len(bag))
	for _, t := range bag {
		distinct[t] = struct{}{}
	}
	candidates := make(map[index.DocID]struct{})
	for term := range distinct {
		for _, p := range s.index.GetPostings(term) {
			candidates[p.DocID] = struct{}{}
		}
	}
	return candidates
}

func (s *Service) toHit(sd ranker.ScoredDoc) SearchHit {
	meta, _ := s.index.GetDocMeta(sd.DocID)
	hit := SearchHit{
		DocID: sd.DocID,
		Title: meta.Title,
		Path:  meta.Path,
		Score: sd.Score,
	}
	hit.Preview = s.preview(meta.Path)
	return hit
}

// preview re-reads the document and returns its first 150 code points, with
// a trailing ellipsis if the text was longer, or an "unavailable" sentinel
// if the reader fails or is absent.
func (s *Service) preview(path string) string {
	if s.reader == nil || path == "" {
		return "unavailable"
	}
	text, err := s.reader.Read(path)
	if err != nil {
		s.logger.Warn("preview read failed", "path", path, "err", err)
		return "unavailable"
	}
	runes := []rune(text)
	if len(runes) <= previewRunes {
		return text
	}
	return string(runes[:previewRunes]) + "…"
}

// collectText walks the AST and concatenates every TermNode/PhraseNode's
// text, ignoring boolean structure entirely — And/Or/Not all recurse into
// every child without applying boolean semantics at this layer.
func collectText(n query.Node) string {
	var sb strings.Builder
	var walk func(query.Node)
	walk = func(n query.Node) {
		switch v := n.(type) {
		case query.TermNode:
			sb.WriteString(v.Term)
			sb.WriteByte(' ')
		case query.PhraseNode:
			sb.WriteString(v.Phrase)
			sb.WriteByte(' ')
		case query.AndNode:
			walk(v.Left)
			walk(v.Right)
		case query.OrNode:
			walk(v.Left)
			walk(v.Right)
		case query.NotNode:
			walk(v.Child)
		}
	}
	walk(n)
	return sb.String()
}
