package llm

import (
	"context"
	"encoding/json"

	"golang.org/x/time/rate"

	"github.com/fieldrx/hcplog/internal/debuglog"
)

// Gateway is the single entry point extractors use to reach the LLM.
// It never returns an error: configuration gaps, network failures,
// malformed responses and timeouts all collapse to ok=false, and every
// attempt is traced to the diagnostic log.
type Gateway struct {
	provider Provider
	config   Config
	diag     *debuglog.Logger
	limiter  *rate.Limiter
}

// NewGateway creates a gateway around the given provider. A nil
// provider produces a permanently disabled gateway, which is a valid,
// recognized state (every caller proceeds to its fallback path).
func NewGateway(provider Provider, config Config, diag *debuglog.Logger) *Gateway {
	if diag == nil {
		diag = debuglog.Nop()
	}

	var limiter *rate.Limiter
	if config.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}

	return &Gateway{
		provider: provider,
		config:   config,
		diag:     diag,
		limiter:  limiter,
	}
}

// Enabled reports whether a provider is configured
func (g *Gateway) Enabled() bool {
	return g != nil && g.provider != nil
}

// Call issues one synchronous completion request and returns the
// assistant's raw text. There is no retry: on any failure the second
// return value is false and the caller is expected to fall back.
func (g *Gateway) Call(ctx context.Context, messages []Message) (string, bool) {
	if !g.Enabled() {
		g.diag.Printf("gateway call aborted: no provider configured")
		return "", false
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			g.diag.Printf("gateway rate limit wait: %v", err)
			return "", false
		}
	}

	req := CompletionRequest{
		Messages:    messages,
		Model:       g.config.Model,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	if preview, err := json.Marshal(messages); err == nil {
		g.diag.Printf("LLM REQUEST -> provider=%s model=%s messages=%s",
			g.provider.Name(), req.Model, debuglog.Truncate(string(preview), 2000))
	}

	text, err := g.provider.Complete(ctx, req)
	if err != nil {
		g.diag.Printf("LLM CALL FAILED: %v", err)
		return "", false
	}

	g.diag.Printf("LLM RESPONSE <- %s", debuglog.Truncate(text, 4000))
	return text, true
}

// Ping issues a trivial round trip, used by the self-test
func (g *Gateway) Ping(ctx context.Context) bool {
	_, ok := g.Call(ctx, []Message{
		{Role: RoleSystem, Content: "Ping"},
		{Role: RoleUser, Content: "Hello"},
	})
	return ok
}
