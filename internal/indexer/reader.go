// Package indexer drives ingest: reading raw document text, tokenizing it,
// and recording the result into an InvertedIndex under a freshly assigned
// DocID.
package indexer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// SupportedExtensions is the closed set of file extensions IndexDirectory
// will attempt to ingest, lowercased and without the dot.
var SupportedExtensions = map[string]struct{}{
	"txt": {}, "pdf": {}, "docx": {}, "doc": {}, "pptx": {}, "ppt": {},
	"xlsx": {}, "xls": {}, "html": {}, "htm": {}, "xml": {},
}

// ReaderError wraps a failure to read or extract text from a path.
type ReaderError struct {
	Path string
	Err  error
}

func (e *ReaderError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReaderError) Unwrap() error { return e.Err }

// DocumentReader yields raw UTF-8 text for a path. Document format
// extraction (PDF/DOCX/XLS/HTML/XML -> text) lives entirely behind this
// interface — the core Indexer never inspects a document's bytes itself.
type DocumentReader interface {
	Read(path string) (string, error)
}

// PlainTextReader reads a .txt file verbatim.
type PlainTextReader struct{}

func (PlainTextReader) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ReaderError{Path: path, Err: err}
	}
	return string(data), nil
}

// HTMLReader extracts visible text from an HTML/XML document, skipping
// <script> and <style> subtrees, and remembers the hrefs seen in the last
// document it read (exposed for callers outside the core that might want
// to crawl; the Indexer itself never consults Hrefs).
type HTMLReader struct {
	lastHrefs []string
}

func (r *HTMLReader) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ReaderError{Path: path, Err: err}
	}

	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", &ReaderError{Path: path, Err: err}
	}

	var words []string
	var hrefs []string
	var skipDepth int

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (strings.EqualFold(n.Data, "script") || strings.EqualFold(n.Data, "style")) {
			skipDepth++
		}

		if skipDepth == 0 {
			if n.Type == html.TextNode {
				if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
					words = append(words, trimmed)
				}
			}
			if n.Type == html.ElementNode && strings.EqualFold(n.Data, "a") {
				for _, a := range n.Attr {
					if strings.EqualFold(a.Key, "href") {
						if val := strings.TrimSpace(a.Val); val != "" {
							hrefs = append(hrefs, val)
						}
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && (strings.EqualFold(n.Data, "script") || strings.EqualFold(n.Data, "style")) {
			skipDepth--
		}
	}
	walk(root)

	r.lastHrefs = hrefs
	return strings.Join(words, " "), nil
}

// Hrefs returns the link targets collected during the most recent Read.
func (r *HTMLReader) Hrefs() []string { return r.lastHrefs }

// UnsupportedFormatReader always fails; it is a placeholder for the binary
// office formats (PDF/DOCX/XLS/PPT) this repo does not vendor a parser for.
// index_directory still recognizes their extensions so a caller can swap in
// a real implementation through CompositeReader without touching the core.
type UnsupportedFormatReader struct {
	Format string
}

func (r UnsupportedFormatReader) Read(path string) (string, error) {
	return "", &ReaderError{Path: path, Err: fmt.Errorf("no %s extractor configured", r.Format)}
}

// CompositeReader dispatches to a sub-reader by lowercased file extension.
type CompositeReader struct {
	byExt map[string]DocumentReader
}

// NewCompositeReader builds the default reader set: plain text and HTML/XML
// are handled natively; the remaining supported extensions fail with a
// named ReaderError until a real extractor is registered for them.
func NewCompositeReader() *CompositeReader {
	c := &CompositeReader{byExt: make(map[string]DocumentReader)}
	c.Register("txt", PlainTextReader{})
	html := &HTMLReader{}
	c.Register("html", html)
	c.Register("htm", html)
	c.Register("xml", html)
	for _, ext := range []string{"pdf", "doc", "docx", "ppt", "pptx", "xls", "xlsx"} {
		c.Register(ext, UnsupportedFormatReader{Format: ext})
	}
	return c
}

// Register installs reader for the given lowercased extension (without a
// leading dot), overriding any existing registration.
func (c *CompositeReader) Register(ext string, reader DocumentReader) {
	c.byExt[strings.ToLower(ext)] = reader
}

func (c *CompositeReader) Read(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	reader, ok := c.byExt[ext]
	if !ok {
		return "", &ReaderError{Path: path, Err: fmt.Errorf("unsupported extension %q", ext)}
	}
	return reader.Read(path)
}
