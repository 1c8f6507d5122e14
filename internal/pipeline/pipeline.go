// Package pipeline orchestrates the six field extractors over one
// interaction note and merges their results into a single record.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fieldrx/hcplog/internal/debuglog"
	"github.com/fieldrx/hcplog/internal/extract"
	"github.com/fieldrx/hcplog/internal/llm"
	"github.com/fieldrx/hcplog/internal/model"
)

// Pipeline runs the full extraction over raw note text
type Pipeline struct {
	extractor *extract.Extractor
	diag      *debuglog.Logger
}

// New creates a pipeline around an existing extractor
func New(extractor *extract.Extractor, diag *debuglog.Logger) *Pipeline {
	if diag == nil {
		diag = debuglog.Nop()
	}
	return &Pipeline{extractor: extractor, diag: diag}
}

// NewFromConfig wires provider, gateway and extractor from service
// configuration. A provider construction failure disables the LLM path
// rather than failing: extraction always remains available.
func NewFromConfig(cfg model.Config) *Pipeline {
	diag := debuglog.New(cfg.LLM.DebugLog)

	llmCfg := llm.ConfigFromModel(cfg.LLM)
	provider, err := llm.NewProvider(llmCfg)
	if err != nil {
		diag.Printf("LLM provider init failed, falling back to rules: %v", err)
		provider = nil
	}

	gateway := llm.NewGateway(provider, llmCfg, diag)
	return New(extract.New(gateway, diag), diag)
}

// Extractor exposes the underlying extractor for single-tool dispatch
func (p *Pipeline) Extractor() *extract.Extractor {
	return p.extractor
}

// Run extracts all six field groups from text and merges them into one
// result. Each extractor is isolated: a failure in one leaves its
// fields at their defaults and the rest proceed. Run never fails; even
// a fatal internal error yields a minimal result carrying a truncated
// copy of the input as the summary. All nine fields are always present
// in the output.
func (p *Pipeline) Run(ctx context.Context, rawText string) (out model.ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			p.diag.Printf("run_extraction fatal (shouldn't happen): %v", r)
			out = model.NewExtractionResult()
			out.Summary = model.String(extract.TruncateRunes(rawText, 200))
		}
	}()

	out = model.NewExtractionResult()
	text := Flatten(rawText)

	p.step("hcp_name", func() {
		out.HCPName = p.extractor.HCPName(ctx, text).HCPName
	})
	p.step("date", func() {
		out.Date = p.extractor.Date(ctx, text).Date
	})
	p.step("time", func() {
		out.Time = p.extractor.Time(ctx, text).Time
	})
	p.step("sentiment", func() {
		r := p.extractor.Sentiment(ctx, text)
		out.Sentiment = r.Sentiment
		out.SentimentSource = r.SentimentSource
	})
	p.step("materials_and_topics", func() {
		r := p.extractor.MaterialsAndTopics(ctx, text)
		out.MaterialsShared = r.MaterialsShared
		out.SamplesDistributed = r.SamplesDistributed
		out.TopicsDiscussed = r.TopicsDiscussed
	})
	p.step("summary", func() {
		out.Summary = p.extractor.Summarize(ctx, text).Summary
	})
	if out.Summary == nil {
		out.Summary = model.String(extract.TruncateRunes(rawText, 200))
	}

	if b, err := json.Marshal(out); err == nil {
		p.diag.Printf("extracted: %s", debuglog.Truncate(string(b), 4000))
	}
	return out
}

// step isolates one extractor invocation so a panic in it cannot stop
// the others or escape the pipeline
func (p *Pipeline) step(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			p.diag.Printf("extract %s error: %s", name, fmt.Sprint(r))
		}
	}()
	fn()
}
