package pipeline

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fieldrx/hcplog/internal/extract"
	"github.com/fieldrx/hcplog/internal/model"
)

// fallbackOnly builds a pipeline whose gateway has no provider, so
// every extractor runs its deterministic path
func fallbackOnly() *Pipeline {
	return New(extract.New(nil, nil), nil)
}

var resultKeys = []string{
	"hcp_name", "date", "time", "topics_discussed",
	"materials_shared", "samples_distributed",
	"sentiment", "sentiment_source", "summary",
}

func assertAllKeys(t *testing.T, res model.ExtractionResult) {
	t.Helper()

	b, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Expected result to marshal, got %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("Expected result to round-trip, got %v", err)
	}
	for _, key := range resultKeys {
		if _, ok := m[key]; !ok {
			t.Errorf("Expected key %q in serialized result", key)
		}
	}
	if string(m["materials_shared"]) == "null" || string(m["samples_distributed"]) == "null" {
		t.Error("Expected list fields to serialize as arrays, not null")
	}
}

func TestRun_EndToEndFallbacks(t *testing.T) {
	text := "Met Dr. Smith on 12th Jan 2025 at 2 pm, discussed Product-X efficacy, " +
		"positive sentiment, shared brochure and 5 samples."

	res := fallbackOnly().Run(context.Background(), text)
	assertAllKeys(t, res)

	if res.HCPName == nil || *res.HCPName != "Dr. Smith" {
		t.Errorf("Expected Dr. Smith, got %v", res.HCPName)
	}
	if res.Date == nil || *res.Date != "2025-01-12" {
		t.Errorf("Expected 2025-01-12, got %v", res.Date)
	}
	if res.Time == nil || *res.Time != "14:00" {
		t.Errorf("Expected 14:00, got %v", res.Time)
	}
	if res.Sentiment == nil || *res.Sentiment != "Positive" {
		t.Errorf("Expected Positive, got %v", res.Sentiment)
	}
	if res.SentimentSource == nil || *res.SentimentSource != "inferred" {
		t.Errorf("Expected inferred, got %v", res.SentimentSource)
	}

	foundBrochure := false
	for _, m := range res.MaterialsShared {
		if m == "Brochure" {
			foundBrochure = true
		}
	}
	if !foundBrochure {
		t.Errorf("Expected Brochure in materials, got %v", res.MaterialsShared)
	}

	foundFive := false
	for _, s := range res.SamplesDistributed {
		if s == "5 sample(s)" {
			foundFive = true
		}
	}
	if !foundFive {
		t.Errorf("Expected an entry derived from 5, got %v", res.SamplesDistributed)
	}

	if res.Summary == nil {
		t.Error("Expected a summary")
	}
}

func TestRun_EmptyInput(t *testing.T) {
	res := fallbackOnly().Run(context.Background(), "")
	assertAllKeys(t, res)

	if res.HCPName != nil || res.Date != nil || res.Time != nil {
		t.Error("Expected nil scalar fields for empty input")
	}
	if res.Summary == nil {
		t.Error("Expected a (possibly empty) summary for empty input")
	}
}

func TestRun_NonEnglishText(t *testing.T) {
	res := fallbackOnly().Run(context.Background(), "Встреча прошла хорошо, без деталей.")
	assertAllKeys(t, res)
}

func TestRun_NoExtractableFields(t *testing.T) {
	res := fallbackOnly().Run(context.Background(), "zzz qqq ---")
	assertAllKeys(t, res)
	if res.Sentiment != nil {
		t.Errorf("Expected nil sentiment, got %v", *res.Sentiment)
	}
}

func TestRun_HTMLInput(t *testing.T) {
	text := "<html><body><p>Met Dr. Smith on 12th Jan 2025.</p>" +
		"<script>alert('x')</script></body></html>"

	res := fallbackOnly().Run(context.Background(), text)
	if res.HCPName == nil || *res.HCPName != "Dr. Smith" {
		t.Errorf("Expected Dr. Smith from flattened HTML, got %v", res.HCPName)
	}
	if res.Date == nil || *res.Date != "2025-01-12" {
		t.Errorf("Expected 2025-01-12 from flattened HTML, got %v", res.Date)
	}
}

func TestFlatten(t *testing.T) {
	if got := Flatten("plain text, no markup"); got != "plain text, no markup" {
		t.Errorf("Expected passthrough, got %q", got)
	}

	got := Flatten("<p>Shared <b>brochure</b> today.</p><style>p{}</style>")
	if got != "Shared brochure today." {
		t.Errorf("Expected visible text only, got %q", got)
	}
}
