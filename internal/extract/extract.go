// Package extract implements the six field extractors for HCP
// interaction notes. Every extractor follows the same two-tier policy:
// ask the LLM gateway for a narrowly scoped JSON answer, leniently
// parse it, and fall back to a deterministic regex or keyword heuristic
// when the LLM path yields nothing usable. Extractors never return
// errors; a field that cannot be derived stays at its default.
package extract

import (
	"context"

	"github.com/fieldrx/hcplog/internal/debuglog"
	"github.com/fieldrx/hcplog/internal/llm"
)

// Extractor derives structured interaction fields from free text
type Extractor struct {
	gateway *llm.Gateway
	diag    *debuglog.Logger
}

// New creates an extractor backed by the given gateway. A disabled
// gateway is valid: every extraction then runs fallback-only.
func New(gateway *llm.Gateway, diag *debuglog.Logger) *Extractor {
	if gateway == nil {
		gateway = llm.NewGateway(nil, llm.DefaultConfig(), diag)
	}
	if diag == nil {
		diag = debuglog.Nop()
	}
	return &Extractor{gateway: gateway, diag: diag}
}

// llmObject runs one gateway call with the given system instruction and
// leniently parses the response into a JSON object
func (e *Extractor) llmObject(ctx context.Context, instruction, text string) (map[string]any, bool) {
	resp, ok := e.gateway.Call(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: instruction},
		{Role: llm.RoleUser, Content: text},
	})
	if !ok {
		return nil, false
	}
	return decodeObject(resp)
}
