package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/fieldrx/hcplog/internal/extract"
	"github.com/fieldrx/hcplog/internal/logger"
	"github.com/fieldrx/hcplog/internal/model"
	"github.com/fieldrx/hcplog/internal/pipeline"
	"github.com/fieldrx/hcplog/internal/store"
)

// newTestServer wires a real store against a fallback-only pipeline
func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"), time.Minute)
	if err != nil {
		t.Fatalf("Expected store to open, got %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	p := pipeline.New(extract.New(nil, nil), nil)
	lg := logger.New(model.LogConfig{Level: "error"})

	return New(p, st, lg).Router()
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Expected body to marshal, got %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestChat_LogsInteraction(t *testing.T) {
	h := newTestServer(t)

	rec := postJSON(t, h, "/api/interactions/chat", map[string]string{
		"text": "Met Dr. Smith on 12th Jan 2025 at 2 pm, positive sentiment, shared brochure.",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success       bool                   `json:"success"`
		InteractionID string                 `json:"interaction_id"`
		Data          model.ExtractionResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Expected JSON response, got %v", err)
	}
	if !resp.Success || resp.InteractionID == "" {
		t.Errorf("Unexpected response envelope: %+v", resp)
	}
	if resp.Data.HCPName == nil || *resp.Data.HCPName != "Dr. Smith" {
		t.Errorf("Expected Dr. Smith, got %v", resp.Data.HCPName)
	}
	if resp.Data.Date == nil || *resp.Data.Date != "2025-01-12" {
		t.Errorf("Expected 2025-01-12, got %v", resp.Data.Date)
	}

	// Logged record is retrievable
	getReq := httptest.NewRequest(http.MethodGet, "/api/interactions/"+resp.InteractionID, nil)
	getRec := httptest.NewRecorder()
	h.ServeHTTP(getRec, getReq)
	if getRec.Code != http.StatusOK {
		t.Errorf("Expected 200 on get, got %d", getRec.Code)
	}
}

func TestChat_RejectsEmptyText(t *testing.T) {
	h := newTestServer(t)

	for _, body := range []map[string]string{{}, {"text": "   "}} {
		rec := postJSON(t, h, "/api/interactions/chat", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for %v, got %d", body, rec.Code)
		}
	}
}

func TestEdit_UnknownID(t *testing.T) {
	h := newTestServer(t)

	rec := postJSON(t, h, "/api/interactions/edit/no-such-id", map[string]string{"text": "corrected"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestEdit_ReExtracts(t *testing.T) {
	h := newTestServer(t)

	created := postJSON(t, h, "/api/interactions/chat", map[string]string{
		"text": "Met Dr. Smith, positive sentiment.",
	})
	var createdResp struct {
		InteractionID string `json:"interaction_id"`
	}
	if err := json.Unmarshal(created.Body.Bytes(), &createdResp); err != nil {
		t.Fatalf("Expected JSON response, got %v", err)
	}

	rec := postJSON(t, h, "/api/interactions/edit/"+createdResp.InteractionID, map[string]string{
		"text": "Correction: met Prof. Rao, no interest in the trial.",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Updated model.InteractionRecord `json:"updated"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Expected JSON response, got %v", err)
	}
	if resp.Updated.HCPName == nil || *resp.Updated.HCPName != "Prof. Rao" {
		t.Errorf("Expected Prof. Rao after edit, got %v", resp.Updated.HCPName)
	}
	if resp.Updated.Sentiment == nil || *resp.Updated.Sentiment != "Negative" {
		t.Errorf("Expected Negative after edit, got %v", resp.Updated.Sentiment)
	}
}

func TestSummarize(t *testing.T) {
	h := newTestServer(t)

	rec := postJSON(t, h, "/api/interactions/summarize", map[string]string{
		"text": "Great meeting. Lots of detail.",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		Summary *string `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Expected JSON response, got %v", err)
	}
	if resp.Summary == nil || *resp.Summary != "Great meeting" {
		t.Errorf("Expected one-sentence summary, got %v", resp.Summary)
	}
}

func TestNextBestAction(t *testing.T) {
	h := newTestServer(t)

	positive := model.NewExtractionResult()
	positive.Sentiment = model.String("Positive")

	rec := postJSON(t, h, "/api/interactions/next-best-action", map[string]any{"data": positive})
	var resp struct {
		Actions []string `json:"next_best_actions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Expected JSON response, got %v", err)
	}
	if len(resp.Actions) != 1 || resp.Actions[0] != "Schedule product trial / follow-up meeting" {
		t.Errorf("Unexpected actions for positive sentiment: %v", resp.Actions)
	}

	rec = postJSON(t, h, "/api/interactions/next-best-action", map[string]any{"data": nil})
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Expected JSON response, got %v", err)
	}
	if len(resp.Actions) != 1 || resp.Actions[0] != "Send additional informational materials" {
		t.Errorf("Unexpected default actions: %v", resp.Actions)
	}
}

func TestEntities(t *testing.T) {
	h := newTestServer(t)

	rec := postJSON(t, h, "/api/interactions/entities", map[string]string{
		"text": "Shared brochure and left 5 samples, discussed renal dosing.",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		Entities model.ExtractionResult `json:"entities"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Expected JSON response, got %v", err)
	}
	if len(resp.Entities.MaterialsShared) != 1 || resp.Entities.MaterialsShared[0] != "Brochure" {
		t.Errorf("Unexpected materials: %v", resp.Entities.MaterialsShared)
	}
}

func TestListAndStatus(t *testing.T) {
	h := newTestServer(t)

	for i := 0; i < 2; i++ {
		postJSON(t, h, "/api/interactions/chat", map[string]string{
			"text": fmt.Sprintf("Visit %d with Dr. Smith.", i),
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/interactions/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp struct {
		Interactions []model.InteractionRecord `json:"interactions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Expected JSON response, got %v", err)
	}
	if len(resp.Interactions) != 2 {
		t.Errorf("Expected 2 interactions, got %d", len(resp.Interactions))
	}

	statusReq := httptest.NewRequest(http.MethodGet, "/", nil)
	statusRec := httptest.NewRecorder()
	h.ServeHTTP(statusRec, statusReq)
	if statusRec.Code != http.StatusOK {
		t.Errorf("Expected 200 on status, got %d", statusRec.Code)
	}
}

func TestExportEndpoint(t *testing.T) {
	h := newTestServer(t)

	postJSON(t, h, "/api/interactions/chat", map[string]string{
		"text": "Met Dr. Smith, shared brochure.",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/interactions/export", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Unexpected content type: %s", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("Expected workbook bytes")
	}
}
