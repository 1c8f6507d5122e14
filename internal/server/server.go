// Package server exposes the extraction pipeline and the interaction
// store over HTTP. Handlers are thin: validation, one pipeline or store
// call, JSON out. Extraction degradation is invisible here because the
// pipeline always returns a complete result.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fieldrx/hcplog/internal/export"
	"github.com/fieldrx/hcplog/internal/logger"
	"github.com/fieldrx/hcplog/internal/model"
	"github.com/fieldrx/hcplog/internal/pipeline"
	"github.com/fieldrx/hcplog/internal/store"
)

const loggedMessage = "Interaction logged successfully. The details (HCP Name, Date, Sentiment, and Materials) " +
	"have been automatically populated based on your summary."

// Server wires the HTTP API
type Server struct {
	pipeline *pipeline.Pipeline
	store    *store.Store
	log      *logger.Logger
}

// New creates the API server
func New(p *pipeline.Pipeline, st *store.Store, lg *logger.Logger) *Server {
	return &Server{pipeline: p, store: st, log: lg}
}

// Router builds the chi route tree
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)
	r.Use(allowCORS)

	r.Get("/", s.handleStatus)

	r.Route("/api/interactions", func(r chi.Router) {
		r.Post("/chat", s.handleChat)
		r.Post("/edit/{id}", s.handleEdit)
		r.Post("/summarize", s.handleSummarize)
		r.Post("/next-best-action", s.handleNextBestAction)
		r.Post("/entities", s.handleEntities)
		r.Get("/", s.handleList)
		r.Get("/export", s.handleExport)
		r.Get("/{id}", s.handleGet)
	})

	return r
}

type textPayload struct {
	Text string `json:"text"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "hcplog backend running"})
}

// handleChat is the main logging endpoint: free text in, extracted and
// persisted interaction out
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	text, ok := s.requireText(w, r)
	if !ok {
		return
	}

	extracted := s.pipeline.Run(r.Context(), text)

	rec, err := s.store.CreateInteraction(r.Context(), text, extracted)
	if err != nil {
		s.log.WithError(err).Error("create interaction")
		writeError(w, http.StatusInternalServerError, "failed to save interaction")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"message":        loggedMessage,
		"interaction_id": rec.ID,
		"data":           extracted,
	})
}

// handleEdit re-runs extraction over corrected text and updates the record
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	text, ok := s.requireText(w, r)
	if !ok {
		return
	}

	if _, err := s.store.GetInteraction(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "interaction not found")
			return
		}
		s.log.WithError(err).Error("get interaction")
		writeError(w, http.StatusInternalServerError, "failed to load interaction")
		return
	}

	updates := s.pipeline.Run(r.Context(), text)

	rec, err := s.store.UpdateInteraction(r.Context(), id, text, updates)
	if err != nil {
		s.log.WithError(err).Error("update interaction")
		writeError(w, http.StatusInternalServerError, "failed to update interaction")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"updated": rec,
	})
}

// handleSummarize runs only the summary tool
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	text, ok := s.requireText(w, r)
	if !ok {
		return
	}

	res, err := s.pipeline.Extractor().Dispatch(r.Context(), "summary", text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"summary": res.Summary})
}

// handleNextBestAction suggests a follow-up keyed off sentiment
func (s *Server) handleNextBestAction(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Data *model.ExtractionResult `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var actions []string
	if payload.Data != nil && payload.Data.Sentiment != nil && *payload.Data.Sentiment == string(model.SentimentPositive) {
		actions = append(actions, "Schedule product trial / follow-up meeting")
	} else {
		actions = append(actions, "Send additional informational materials")
	}

	writeJSON(w, http.StatusOK, map[string]any{"next_best_actions": actions})
}

// handleEntities runs only the materials/topics tool
func (s *Server) handleEntities(w http.ResponseWriter, r *http.Request) {
	text, ok := s.requireText(w, r)
	if !ok {
		return
	}

	res, err := s.pipeline.Extractor().Dispatch(r.Context(), "materials", text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entities": res})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetInteraction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "interaction not found")
			return
		}
		s.log.WithError(err).Error("get interaction")
		writeError(w, http.StatusInternalServerError, "failed to load interaction")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListInteractions(r.Context())
	if err != nil {
		s.log.WithError(err).Error("list interactions")
		writeError(w, http.StatusInternalServerError, "failed to list interactions")
		return
	}
	if records == nil {
		records = []model.InteractionRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"interactions": records})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListInteractions(r.Context())
	if err != nil {
		s.log.WithError(err).Error("list interactions")
		writeError(w, http.StatusInternalServerError, "failed to list interactions")
		return
	}

	workbook, err := export.InteractionsXLSX(records)
	if err != nil {
		s.log.WithError(err).Error("export interactions")
		writeError(w, http.StatusInternalServerError, "failed to build export")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="interactions.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}

// requireText decodes {"text": ...} and rejects empty input
func (s *Server) requireText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var payload textPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return "", false
	}
	text := strings.TrimSpace(payload.Text)
	if text == "" {
		writeError(w, http.StatusBadRequest, "text field required")
		return "", false
	}
	return text, true
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.WithRequest(r).Debug("request")
		next.ServeHTTP(w, r)
	})
}

func allowCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
