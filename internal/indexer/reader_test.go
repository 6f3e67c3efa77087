package indexer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPlainTextReader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0o644); err != nil {
		t.Fatal(err)
	}
	text, err := (PlainTextReader{}).Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if text != "hello world" {
		t.Fatalf("text = %q; want %q", text, "hello world")
	}
}

func TestPlainTextReaderMissingFile(t *testing.T) {
	if _, err := (PlainTextReader{}).Read("/does/not/exist.txt"); err == nil {
		t.Fatalf("expected ReaderError for missing file")
	}
}

func TestHTMLReaderSkipsScriptAndStyle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.html")
	body := `<html><head><style>body{color:red}</style><script>var x=1</script></head>
		<body><p>Hello, world!</p><a href="a.html">A</a></body></html>`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	r := &HTMLReader{}
	text, err := r.Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if !strings.Contains(text, "Hello, world!") {
		t.Fatalf("text = %q; want it to contain visible text", text)
	}
	if strings.Contains(text, "color:red") || strings.Contains(text, "var x=1") {
		t.Fatalf("text = %q; should exclude script/style content", text)
	}
	if len(r.Hrefs()) != 1 || r.Hrefs()[0] != "a.html" {
		t.Fatalf("Hrefs() = %v; want [a.html]", r.Hrefs())
	}
}

func TestCompositeReaderDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	txtPath := filepath.Join(dir, "doc.txt")
	os.WriteFile(txtPath, []byte("plain text"), 0o644)
	pdfPath := filepath.Join(dir, "doc.pdf")
	os.WriteFile(pdfPath, []byte("%PDF-1.4"), 0o644)

	c := NewCompositeReader()

	text, err := c.Read(txtPath)
	if err != nil || text != "plain text" {
		t.Fatalf("Read(txt) = %q, %v; want plain text, nil", text, err)
	}

	if _, err := c.Read(pdfPath); err == nil {
		t.Fatalf("expected ReaderError for unregistered pdf extractor")
	}

	if _, err := c.Read(filepath.Join(dir, "doc.unknown")); err == nil {
		t.Fatalf("expected ReaderError for unsupported extension")
	}
}
