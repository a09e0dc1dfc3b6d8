package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dgallion1/haikuwriter/internal/config"
	"github.com/dgallion1/haikuwriter/internal/logging"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestNewJob(t *testing.T) {
	job := NewJob("poe.txt", "", []byte("once upon a midnight"))
	if job.ID == "" {
		t.Fatal("expected a job ID")
	}
	if job.Status != StatusQueued {
		t.Errorf("expected status %q, got %q", StatusQueued, job.Status)
	}
	other := NewJob("poe.txt", "", nil)
	if other.ID == job.ID {
		t.Error("expected distinct job IDs")
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := NewJob("a.txt", "", nil)

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusParsing, "parsing"},
		{StatusIngesting, "ingesting"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJob_SnapshotCopiesErrors(t *testing.T) {
	job := NewJob("a.txt", "", nil)
	snap := job.Snapshot()
	if snap.Progress.Errors == nil || len(snap.Progress.Errors) != 0 {
		t.Fatalf("expected empty non-nil errors, got %v", snap.Progress.Errors)
	}

	job.AddError("parse: bad input")
	snap = job.Snapshot()
	job.AddError("second")
	if len(snap.Progress.Errors) != 1 || snap.Progress.Errors[0] != "parse: bad input" {
		t.Errorf("snapshot changed after later AddError: %v", snap.Progress.Errors)
	}
}

func TestJob_TakeFileData(t *testing.T) {
	job := NewJob("a.txt", "", []byte("content"))
	if got := string(job.takeFileData()); got != "content" {
		t.Errorf("expected file data %q, got %q", "content", got)
	}
	if job.takeFileData() != nil {
		t.Error("expected file data to be released after take")
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := NewJob("a.txt", "", nil)
	store.Put(job)

	if got := store.Get(job.ID); got != job {
		t.Fatal("expected to get job back")
	}
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := NewJob("old.txt", "", nil)
	store.Put(expired)

	time.Sleep(100 * time.Millisecond)

	fresh := NewJob("new.txt", "", nil)
	store.Put(fresh)

	store.Cleanup()

	if store.Get(expired.ID) != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get(fresh.ID) == nil {
		t.Error("expected fresh job to survive cleanup")
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 job left, got %d", store.Len())
	}
}

type recordingSink struct {
	mu      sync.Mutex
	sources []string
	texts   []string
}

func (s *recordingSink) Ingest(source, text string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources = append(s.sources, source)
	s.texts = append(s.texts, text)
	return len(strings.Fields(text))
}

func TestWorker_ProcessText(t *testing.T) {
	sink := &recordingSink{}
	w := NewWorker(sink, logging.NewNop(), false)
	job := NewJob("Raven.txt", "", []byte("once upon a midnight dreary\n\nwhile i pondered\n"))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q (errors %v)", snap.Status, snap.Progress.Errors)
	}
	if snap.Progress.Lines != 2 || snap.Progress.Words != 8 || snap.Progress.Ingested != 8 {
		t.Errorf("unexpected progress %+v", snap.Progress)
	}
	if snap.ContentHash == "" {
		t.Error("expected content hash")
	}
	if len(sink.sources) != 1 || sink.sources[0] != "Raven" {
		t.Errorf("expected source %q, got %v", "Raven", sink.sources)
	}
	if sink.texts[0] != "once upon a midnight dreary\nwhile i pondered" {
		t.Errorf("unexpected ingested text %q", sink.texts[0])
	}
}

func TestWorker_TitleOverride(t *testing.T) {
	sink := &recordingSink{}
	w := NewWorker(sink, logging.NewNop(), false)
	job := NewJob("upload.txt", "Nevermore", []byte("quoth the raven"))

	w.Process(context.Background(), job)

	if len(sink.sources) != 1 || sink.sources[0] != "Nevermore" {
		t.Errorf("expected source %q, got %v", "Nevermore", sink.sources)
	}
}

func TestWorker_UnsupportedFormat(t *testing.T) {
	sink := &recordingSink{}
	w := NewWorker(sink, logging.NewNop(), false)
	job := NewJob("image.png", "", []byte{0x89, 0x50})

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Errorf("expected failed, got %q", snap.Status)
	}
	if len(snap.Progress.Errors) == 0 {
		t.Error("expected an error to be recorded")
	}
	if len(sink.texts) != 0 {
		t.Error("expected nothing ingested")
	}
}

func TestWorker_EmptyText(t *testing.T) {
	sink := &recordingSink{}
	w := NewWorker(sink, logging.NewNop(), false)
	job := NewJob("blank.txt", "", []byte("\n   \n"))

	w.Process(context.Background(), job)

	if got := job.Snapshot().Status; got != StatusFailed {
		t.Errorf("expected failed, got %q", got)
	}
	if len(sink.texts) != 0 {
		t.Error("expected nothing ingested")
	}
}

func TestOrchestrator_SubmitProcesses(t *testing.T) {
	sink := &recordingSink{}
	cfg := config.Config{WorkerCount: 2, MaxQueueSize: 4, JobTTL: time.Hour}
	o := NewOrchestrator(cfg, sink, logging.NewNop())
	o.Start(context.Background())
	defer o.Stop()

	job := NewJob("a.txt", "", []byte("old pond frog jumps in"))
	if err := o.Submit(job); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if o.GetJob(job.ID) != job {
		t.Fatal("expected job to be registered")
	}

	deadline := time.Now().Add(2 * time.Second)
	for job.Snapshot().Status != StatusCompleted {
		if time.Now().After(deadline) {
			t.Fatalf("job did not complete, status %q", job.Snapshot().Status)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	cfg := config.Config{WorkerCount: 1, MaxQueueSize: 1, JobTTL: time.Hour}
	// Not started, so nothing drains the queue.
	o := NewOrchestrator(cfg, &recordingSink{}, logging.NewNop())

	if err := o.Submit(NewJob("a.txt", "", nil)); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second := NewJob("b.txt", "", nil)
	if err := o.Submit(second); err == nil {
		t.Fatal("expected queue full error")
	}
	if got := second.Snapshot().Status; got != StatusFailed {
		t.Errorf("expected failed, got %q", got)
	}
	if o.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", o.QueueDepth())
	}
}

func TestCleanupInterval(t *testing.T) {
	tests := []struct {
		ttl  time.Duration
		want time.Duration
	}{
		{time.Hour, 5 * time.Minute},
		{4 * time.Minute, time.Minute},
		{100 * time.Millisecond, time.Second},
		{0, time.Second},
	}
	for _, tt := range tests {
		if got := cleanupInterval(tt.ttl); got != tt.want {
			t.Errorf("cleanupInterval(%s) = %s, want %s", tt.ttl, got, tt.want)
		}
	}
}
