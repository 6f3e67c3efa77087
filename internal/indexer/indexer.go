package indexer

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lexisearch/lexisearch/internal/index"
	"github.com/lexisearch/lexisearch/internal/tokenizer"
)

// Catalog records ingest history outside the process-lifetime index. It is
// purely diagnostic: a failing or nil Catalog never affects IndexFile's
// return value or the InvertedIndex's state.
type Catalog interface {
	Record(meta index.DocumentMeta) error
}

// Metrics observes ingest operations. A nil Metrics is a legal no-op.
type Metrics interface {
	ObserveIngest(status string, duration time.Duration)
}

// Indexer drives ingest for one InvertedIndex: it owns the DocID counter,
// holds a DocumentReader and the tokenizer pipeline, and is the only writer
// permitted to mutate its Index.
type Indexer struct {
	reader  DocumentReader
	index   *index.InvertedIndex
	nextID  uint64
	catalog Catalog
	metrics Metrics
	logger  *slog.Logger

	// writeMu is held while one document's postings, length and metadata
	// are written, so concurrent IndexFile calls never interleave them.
	writeMu sync.Mutex
}

// Option configures optional Indexer collaborators.
type Option func(*Indexer)

// WithCatalog attaches an ingest audit catalog.
func WithCatalog(c Catalog) Option {
	return func(ix *Indexer) { ix.catalog = c }
}

// WithMetrics attaches a metrics sink.
func WithMetrics(m Metrics) Option {
	return func(ix *Indexer) { ix.metrics = m }
}

// WithLogger overrides the default logger (os.Stderr text handler).
func WithLogger(l *slog.Logger) Option {
	return func(ix *Indexer) { ix.logger = l }
}

// New builds an Indexer over idx, reading documents through reader. The
// DocID counter starts at 1.
func New(reader DocumentReader, idx *index.InvertedIndex, opts ...Option) *Indexer {
	ix := &Indexer{
		reader: reader,
		index:  idx,
		logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// IndexFile reads path, tokenizes it, assigns a fresh DocID, and records
// the resulting postings, length and metadata into the InvertedIndex. On
// reader failure it returns the reader's error unchanged (a *ReaderError
// for the readers in this package) and the index is left untouched.
func (ix *Indexer) IndexFile(path string) (index.DocID, error) {
	start := time.Now()

	text, err := ix.reader.Read(path)
	if err != nil {
		ix.observeIngest("error", start)
		ix.logger.Warn("ingest failed", "path", path, "err", err)
		return 0, err
	}

	tokens := tokenizer.Tokenize(text)

	ix.writeMu.Lock()
	doc := index.DocID(atomic.AddUint64(&ix.nextID, 1))

	for i, tok := range tokens {
		ix.index.AddTerm(tok, doc, i)
	}
	ix.index.SetDocLength(doc, len(tokens))

	meta := index.DocumentMeta{
		ID:     doc,
		Path:   path,
		Title:  filepath.Base(path),
		Length: len(tokens),
	}
	ix.index.AddDocMeta(meta)
	ix.writeMu.Unlock()

	if ix.catalog != nil {
		if err := ix.catalog.Record(meta); err != nil {
			ix.logger.Warn("catalog record failed", "path", path, "err", err)
		}
	}

	ix.observeIngest("ok", start)
	ix.logger.Debug("indexed document", "path", path, "doc_id", doc, "tokens", len(tokens))
	return doc, nil
}

func (ix *Indexer) observeIngest(status string, start time.Time) {
	if ix.metrics != nil {
		ix.metrics.ObserveIngest(status, time.Since(start))
	}
}

// DirectoryResult summarizes a best-effort index_directory run.
type DirectoryResult struct {
	Indexed []index.DocID
	Skipped map[string]error
}

// IndexDirectory walks root recursively, indexing every file whose
// lowercased extension is in SupportedExtensions. A failure on one file is
// logged and skipped, never fatal to the batch. Files are discovered by a
// sequential walk; reading and tokenization for distinct files then run
// concurrently (bounded by a worker pool), but every write into the
// InvertedIndex funnels through IndexFile's writeMu section, so one
// document's writes never interleave with another's even though I/O
// overlaps.
func (ix *Indexer) IndexDirectory(root string) (DirectoryResult, error) {
	var paths []string
	walkErr := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(p)), ".")
		if _, ok := SupportedExtensions[ext]; !ok {
			return nil
		}
		paths = append(paths, p)
		return nil
	})
	if walkErr != nil {
		return DirectoryResult{}, walkErr
	}

	result := DirectoryResult{Skipped: make(map[string]error)}
	var resultMu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(4)
	for _, p := range paths {
		p := p
		g.Go(func() error {
			doc, err := ix.IndexFile(p)
			resultMu.Lock()
			defer resultMu.Unlock()
			if err != nil {
				result.Skipped[p] = err
			} else {
				result.Indexed = append(result.Indexed, doc)
			}
			return nil
		})
	}
	_ = g.Wait()

	return result, nil
}
