package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/haikuwriter/internal/parser"
)

// Sink receives parsed upload text. generator.Service satisfies it.
type Sink interface {
	Ingest(source, text string) int
}

// Worker processes a single upload job.
type Worker struct {
	sink        Sink
	log         *slog.Logger
	pdfFallback bool
}

func NewWorker(sink Sink, log *slog.Logger, pdfFallback bool) *Worker {
	return &Worker{
		sink:        sink,
		log:         log,
		pdfFallback: pdfFallback,
	}
}

// Process parses the job's file and ingests its text into the sink.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, w.pdfFallback)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	doc, err := p.Parse(bytes.NewReader(job.takeFileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if job.Title != "" {
		doc.Title = job.Title
	}

	text := doc.Text()
	job.SetParsed(len(doc.Lines), doc.WordCount(), ContentHashHex([]byte(text)))
	if len(doc.Lines) == 0 {
		log.Warn("no text extracted")
		job.AddError("no extractable text")
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	if err := ctx.Err(); err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "canceled")
		return
	}

	// Phase 2: Ingest
	job.SetStatus(StatusIngesting, "ingesting")
	source := doc.Title
	if source == "" {
		source = job.Filename
	}
	n := w.sink.Ingest(source, text)
	job.SetIngested(n)
	log.Info("upload ingested", "lines", len(doc.Lines), "words", n)

	job.SetStatus(StatusCompleted, "done")
}
