// Package catalog persists a diagnostic ingest history to SQLite. It never
// stores the inverted index itself; the index remains process-lifetime
// only. The catalog just answers "what was ingested, and when".
package catalog

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lexisearch/lexisearch/internal/index"
)

// CatalogError wraps a failure to open or write to the catalog database.
type CatalogError struct {
	Op  string
	Err error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
}

func (e *CatalogError) Unwrap() error { return e.Err }

// IngestRecord is one row of ingest history.
type IngestRecord struct {
	ID        uint `gorm:"primaryKey"`
	DocID     uint64
	Path      string
	Title     string
	Length    int
	IngestedAt time.Time
}

// Catalog is a gorm-backed ingest history store. Its zero value is not
// usable; construct one with Open.
type Catalog struct {
	db *gorm.DB
}

// Open opens (creating if absent) a SQLite database at path and migrates
// the ingest_records table.
func Open(path string) (*Catalog, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, &CatalogError{Op: "open", Err: err}
	}
	if err := db.AutoMigrate(&IngestRecord{}); err != nil {
		return nil, &CatalogError{Op: "migrate", Err: err}
	}
	return &Catalog{db: db}, nil
}

// Record satisfies indexer.Catalog: it appends one ingest history row.
// Callers treat a failing Catalog as purely diagnostic — this method's
// error is logged by the indexer, never propagated to the ingest result.
func (c *Catalog) Record(meta index.DocumentMeta) error {
	rec := IngestRecord{
		DocID:      uint64(meta.ID),
		Path:       meta.Path,
		Title:      meta.Title,
		Length:     meta.Length,
		IngestedAt: time.Now(),
	}
	if err := c.db.Create(&rec).Error; err != nil {
		return &CatalogError{Op: "record", Err: err}
	}
	return nil
}

// Recent returns the most recently ingested records, newest first.
func (c *Catalog) Recent(limit int) ([]IngestRecord, error) {
	var records []IngestRecord
	if err := c.db.Order("ingested_at desc").Limit(limit).Find(&records).Error; err != nil {
		return nil, &CatalogError{Op: "query", Err: err}
	}
	return records, nil
}

// Close releases the underlying database handle.
func (c *Catalog) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return &CatalogError{Op: "close", Err: err}
	}
	return sqlDB.Close()
}
