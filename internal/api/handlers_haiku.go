package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/haikuwriter/internal/corpus"
	"github.com/dgallion1/haikuwriter/internal/generator"
	"github.com/dgallion1/haikuwriter/internal/haiku"
)

type selectionRequest struct {
	Corpora []string `json:"corpora"`
}

func (s *Server) handleListCorpora(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"corpora":  s.catalog.Entries(),
		"selected": nonNil(s.service.Selection()),
	})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64*1024)).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.service.Select(req.Corpora...); err != nil {
		switch {
		case errors.Is(err, generator.ErrEmptySelection):
			jsonError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, corpus.ErrUnknownCorpus):
			jsonError(w, err.Error(), http.StatusNotFound)
		default:
			s.log.Error("select corpora", "corpora", req.Corpora, "error", err)
			jsonError(w, "failed to load corpora: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	s.writeVocabulary(w)
}

func (s *Server) handleVocabulary(w http.ResponseWriter, r *http.Request) {
	s.writeVocabulary(w)
}

func (s *Server) handleResetVocabulary(w http.ResponseWriter, r *http.Request) {
	s.service.Reset()
	s.writeVocabulary(w)
}

func (s *Server) writeVocabulary(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]any{
		"words":   s.service.VocabularySize(),
		"corpora": nonNil(s.service.Selection()),
	})
}

func (s *Server) handleHaiku(w http.ResponseWriter, r *http.Request) {
	res, err := s.service.Haiku(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, generator.ErrNoCorpusSelected), errors.Is(err, haiku.ErrEmptyVocabulary):
			jsonError(w, "no corpus selected", http.StatusConflict)
		case errors.Is(err, haiku.ErrCorpusTooSparse):
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			jsonError(w, "request canceled", http.StatusServiceUnavailable)
		default:
			s.log.Error("haiku generation", "error", err)
			jsonError(w, "generation failed", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
