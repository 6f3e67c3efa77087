// Command lexisearch indexes a corpus of documents and answers boolean and
// phrase queries against it, either as a one-shot CLI or as an HTTP
// service.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lexisearch/lexisearch/internal/catalog"
	"github.com/lexisearch/lexisearch/internal/config"
	"github.com/lexisearch/lexisearch/internal/httpapi"
	"github.com/lexisearch/lexisearch/internal/index"
	"github.com/lexisearch/lexisearch/internal/indexer"
	"github.com/lexisearch/lexisearch/internal/logging"
	"github.com/lexisearch/lexisearch/internal/metrics"
	"github.com/lexisearch/lexisearch/internal/ranker"
	"github.com/lexisearch/lexisearch/internal/search"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "index":
		err = runIndex(os.Args[2:])
	case "query":
		err = runQuery(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "lexisearch:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: lexisearch index <dir> | query <dir> \"<query>\" | serve --config <path>")
}

func runIndex(args []string) error {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("index requires exactly one directory argument")
	}
	root := fs.Arg(0)

	logger := logging.New("info")
	idx := index.New()
	reader := newReader()
	ix := indexer.New(reader, idx, indexer.WithLogger(logger))

	result, err := ix.IndexDirectory(root)
	if err != nil {
		return err
	}
	fmt.Printf("indexed %d documents, skipped %d\n", len(result.Indexed), len(result.Skipped))
	for path, skipErr := range result.Skipped {
		logger.Warn("skipped", "path", path, "err", skipErr)
	}
	return nil
}

func runQuery(args []string) error {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("query requires a directory and a query string")
	}
	root, q := fs.Arg(0), fs.Arg(1)

	idx := index.New()
	reader := newReader()
	ix := indexer.New(reader, idx)
	if _, err := ix.IndexDirectory(root); err != nil {
		return err
	}

	svc := search.New(idx, ranker.New(), reader)
	hits, err := svc.Search(q)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		hits = svc.RankedSuggestions(q)
	}
	return json.NewEncoder(os.Stdout).Encode(hits)
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to YAML config file")
	fs.Parse(args)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger := logging.New(cfg.LogLevel)
	mtr := metrics.New()

	cat, err := catalog.Open(cfg.CatalogPath)
	if err != nil {
		logger.Warn("catalog unavailable, continuing without ingest history", "err", err)
		cat = nil
	}

	idx := index.New()
	reader := newReader()
	opts := []indexer.Option{indexer.WithLogger(logger), indexer.WithMetrics(mtr)}
	if cat != nil {
		opts = append(opts, indexer.WithCatalog(cat))
	}
	ix := indexer.New(reader, idx, opts...)

	if _, err := ix.IndexDirectory(cfg.CorpusRoot); err != nil {
		logger.Warn("initial corpus scan failed", "err", err)
	}
	mtr.SetIndexSize(idx.DocumentCount())

	svc := search.New(idx, ranker.New(), reader)
	svc.SetLogger(logger)

	srv := httpapi.New(ix, svc,
		httpapi.WithLogger(logger),
		httpapi.WithMetrics(mtr),
		httpapi.WithMetricsHandler(mtr.Handler()),
	)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Handler(),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.ListenAddr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		return httpServer.Shutdown(context.Background())
	}
	return nil
}

func newReader() *indexer.CompositeReader {
	return indexer.NewCompositeReader()
}
