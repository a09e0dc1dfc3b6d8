// Package generator serializes access to one haiku engine and ties it to
// named corpora, metrics and latency stats.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/dgallion1/haikuwriter/internal/corpus"
	"github.com/dgallion1/haikuwriter/internal/haiku"
	"github.com/dgallion1/haikuwriter/internal/metrics"
	"github.com/dgallion1/haikuwriter/internal/stats"
	"github.com/google/uuid"
)

var (
	// ErrNoCorpusSelected is returned when a haiku is requested while the
	// vocabulary is empty.
	ErrNoCorpusSelected = errors.New("no corpus selected")

	// ErrEmptySelection is returned by Select without names.
	ErrEmptySelection = errors.New("at least one corpus is required")
)

// Loader resolves a corpus name to its parsed text.
type Loader interface {
	Load(name string) (*corpus.Document, error)
}

// Result is one generated haiku.
type Result struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Lines     []string `json:"lines"`
	Corpora   []string `json:"corpora"`
	ElapsedMs int64    `json:"elapsed_ms"`
}

// Service owns an Engine. All engine calls happen under one mutex, so a
// generation always sees a complete vocabulary.
type Service struct {
	mu        sync.Mutex
	engine    *haiku.Engine
	loader    Loader
	selection []string

	stats   *stats.Window
	metrics *metrics.Metrics
	log     *slog.Logger
}

// NewService wraps engine. The engine should carry an attempt budget
// (haiku.WithMaxAttempts) when the service answers interactive requests.
func NewService(loader Loader, engine *haiku.Engine, st *stats.Window, m *metrics.Metrics, log *slog.Logger) *Service {
	return &Service{
		engine:  engine,
		loader:  loader,
		stats:   st,
		metrics: m,
		log:     log,
	}
}

// Select replaces the vocabulary with the concatenation of the named corpora.
// On error the vocabulary is left empty.
func (s *Service) Select(names ...string) error {
	if len(names) == 0 {
		return ErrEmptySelection
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.Reset()
	s.selection = nil

	total := 0
	for _, name := range names {
		doc, err := s.loader.Load(name)
		if err != nil {
			s.engine.Reset()
			s.metrics.Vocabulary.Set(0)
			return fmt.Errorf("select %q: %w", name, err)
		}
		n := s.engine.Ingest(doc.Text())
		s.metrics.IngestedWords.WithLabelValues(name).Add(float64(n))
		total += n
	}
	s.engine.Shuffle()
	s.selection = slices.Clone(names)
	s.metrics.Vocabulary.Set(float64(s.engine.Size()))

	s.log.Info("corpora selected", "corpora", names, "words", total, "vocabulary", s.engine.Size())
	return nil
}

// Ingest adds text on top of the current vocabulary and records source in
// the selection. It returns the number of words consumed.
func (s *Service) Ingest(source, text string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.engine.Ingest(text)
	if n > 0 {
		s.selection = append(s.selection, source)
	}
	s.metrics.IngestedWords.WithLabelValues(source).Add(float64(n))
	s.metrics.Vocabulary.Set(float64(s.engine.Size()))
	s.log.Info("text ingested", "source", source, "words", n, "vocabulary", s.engine.Size())
	return n
}

// Reset empties the vocabulary.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.Reset()
	s.selection = nil
	s.metrics.Vocabulary.Set(0)
	s.log.Info("vocabulary reset")
}

// VocabularySize returns the number of distinct words.
func (s *Service) VocabularySize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Size()
}

// Selection returns the sources that make up the vocabulary.
func (s *Service) Selection() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.selection)
}

// Haiku writes one finished haiku. ctx is checked before the engine lock is
// taken; the walk itself is not interruptible.
func (s *Service) Haiku(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		s.metrics.Failures.WithLabelValues(metrics.ReasonCanceled).Inc()
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		s.metrics.Failures.WithLabelValues(metrics.ReasonCanceled).Inc()
		return Result{}, err
	}
	if s.engine.Size() == 0 {
		s.metrics.Failures.WithLabelValues(metrics.ReasonEmpty).Inc()
		return Result{}, ErrNoCorpusSelected
	}

	start := time.Now()
	text, err := s.engine.Compose()
	elapsed := time.Since(start)
	if err != nil {
		s.stats.RecordFailure(elapsed.Milliseconds())
		reason := metrics.ReasonSparse
		if errors.Is(err, haiku.ErrEmptyVocabulary) {
			reason = metrics.ReasonEmpty
		}
		s.metrics.Failures.WithLabelValues(reason).Inc()
		s.log.Warn("haiku generation failed", "error", err, "elapsed_ms", elapsed.Milliseconds())
		return Result{}, err
	}

	s.stats.Record(elapsed.Milliseconds())
	s.metrics.Generated.Inc()
	s.metrics.Duration.Observe(elapsed.Seconds())

	return Result{
		ID:        uuid.NewString(),
		Text:      text,
		Lines:     haiku.Lines(text),
		Corpora:   slices.Clone(s.selection),
		ElapsedMs: elapsed.Milliseconds(),
	}, nil
}
