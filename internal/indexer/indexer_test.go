package indexer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lexisearch/lexisearch/internal/index"
)

type stubReader struct {
	texts map[string]string
	fail  map[string]error
}

func (s stubReader) Read(path string) (string, error) {
	if err, ok := s.fail[path]; ok {
		return "", &ReaderError{Path: path, Err: err}
	}
	return s.texts[path], nil
}

func TestIndexFileAssignsIncreasingDocIDs(t *testing.T) {
	idx := index.New()
	reader := stubReader{texts: map[string]string{
		"a.txt": "The quick brown fox",
		"b.txt": "Fast brown foxes leap",
	}}
	ix := New(reader, idx)

	id1, err := ix.IndexFile("a.txt")
	if err != nil {
		t.Fatalf("IndexFile(a) error: %v", err)
	}
	id2, err := ix.IndexFile("b.txt")
	if err != nil {
		t.Fatalf("IndexFile(b) error: %v", err)
	}
	if id1 != 1 || id2 != 2 {
		t.Fatalf("doc ids = %d, %d; want 1, 2", id1, id2)
	}

	meta, ok := idx.GetDocMeta(id1)
	if !ok {
		t.Fatalf("meta for doc 1 missing")
	}
	if meta.Title != "a.txt" || meta.Length != 3 {
		t.Fatalf("meta = %#v; want title a.txt length 3", meta)
	}
	if got := idx.GetDocLength(id1); got != 3 {
		t.Fatalf("GetDocLength(1) = %d; want 3", got)
	}
}

func TestIndexFilePropagatesReaderError(t *testing.T) {
	idx := index.New()
	reader := stubReader{fail: map[string]error{"missing.txt": os.ErrNotExist}}
	ix := New(reader, idx)

	if _, err := ix.IndexFile("missing.txt"); err == nil {
		t.Fatalf("expected ReaderError")
	}
	if idx.DocumentCount() != 0 {
		t.Fatalf("index should be untouched after a reader failure")
	}
}

func TestIndexDirectorySkipsFailuresAndUnsupportedExtensions(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "a.txt"), "The quick brown fox")
	mustWrite(t, filepath.Join(dir, "b.txt"), "Fast brown foxes leap")
	mustWrite(t, filepath.Join(dir, "ignore.bin"), "irrelevant")

	idx := index.New()
	ix := New(NewCompositeReader(), idx)

	result, err := ix.IndexDirectory(dir)
	if err != nil {
		t.Fatalf("IndexDirectory error: %v", err)
	}
	if len(result.Indexed) != 2 {
		t.Fatalf("indexed = %v; want 2 files", result.Indexed)
	}
	if len(result.Skipped) != 0 {
		t.Fatalf("skipped = %v; want none", result.Skipped)
	}
	if idx.DocumentCount() != 2 {
		t.Fatalf("DocumentCount() = %d; want 2", idx.DocumentCount())
	}
}

func TestIndexDirectoryReportsUnsupportedFormatAsSkip(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "a.txt"), "hello world")
	mustWrite(t, filepath.Join(dir, "b.pdf"), "not a real pdf")

	idx := index.New()
	ix := New(NewCompositeReader(), idx)

	result, err := ix.IndexDirectory(dir)
	if err != nil {
		t.Fatalf("IndexDirectory error: %v", err)
	}
	if len(result.Indexed) != 1 {
		t.Fatalf("indexed = %v; want 1 file", result.Indexed)
	}
	if len(result.Skipped) != 1 {
		t.Fatalf("skipped = %v; want 1 file", result.Skipped)
	}
}

func mustWrite(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}
