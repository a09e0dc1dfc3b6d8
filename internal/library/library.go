// Package library loads named corpora from disk and caches the parsed text.
package library

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/haikuwriter/internal/corpus"
	"github.com/dgallion1/haikuwriter/internal/parser"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Library resolves corpus names through a manifest to files under dir.
type Library struct {
	dir         string
	manifest    corpus.Manifest
	cache       *lru.Cache[string, *corpus.Document]
	pdfFallback bool
	log         *slog.Logger
}

// New creates a Library. With an empty manifest every supported file in dir
// becomes a corpus named after the file.
func New(dir string, manifest corpus.Manifest, cacheSize int, pdfFallback bool, log *slog.Logger) (*Library, error) {
	if len(manifest.Corpora) == 0 {
		found, err := corpus.Discover(dir, parser.IsSupportedExtension)
		if err != nil {
			return nil, err
		}
		manifest = found
	}
	if cacheSize <= 0 {
		cacheSize = 16
	}

	l := &Library{
		dir:         dir,
		manifest:    manifest,
		pdfFallback: pdfFallback,
		log:         log,
	}
	cache, err := lru.NewWithEvict[string, *corpus.Document](cacheSize, l.handleEviction)
	if err != nil {
		return nil, fmt.Errorf("create corpus cache: %w", err)
	}
	l.cache = cache
	return l, nil
}

// Entries returns the manifest entries.
func (l *Library) Entries() []corpus.Entry {
	out := make([]corpus.Entry, len(l.manifest.Corpora))
	copy(out, l.manifest.Corpora)
	return out
}

// Names returns the corpus names in manifest order.
func (l *Library) Names() []string {
	return l.manifest.Names()
}

// Load returns the parsed corpus called name.
func (l *Library) Load(name string) (*corpus.Document, error) {
	if doc, ok := l.cache.Get(name); ok {
		return doc, nil
	}

	entry, err := l.manifest.Find(name)
	if err != nil {
		return nil, err
	}

	p, err := parser.ForFile(entry.File, l.pdfFallback)
	if err != nil {
		return nil, fmt.Errorf("corpus %q: %w", name, err)
	}

	f, err := os.Open(filepath.Join(l.dir, entry.File))
	if err != nil {
		return nil, fmt.Errorf("open corpus %q: %w", name, err)
	}
	defer f.Close()

	doc, err := p.Parse(f, entry.File)
	if err != nil {
		return nil, fmt.Errorf("parse corpus %q: %w", name, err)
	}

	l.cache.Add(name, doc)
	l.log.Info("corpus loaded", "corpus", name, "file", entry.File, "lines", len(doc.Lines))
	return doc, nil
}

func (l *Library) handleEviction(name string, _ *corpus.Document) {
	l.log.Debug("corpus evicted from cache", "corpus", name)
}
