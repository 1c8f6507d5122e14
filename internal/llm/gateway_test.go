package llm

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fieldrx/hcplog/internal/debuglog"
)

type stubProvider struct {
	response string
	err      error
	calls    int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubProvider) IsAvailable(ctx context.Context) bool { return s.err == nil }

func ping() []Message {
	return []Message{
		{Role: RoleSystem, Content: "Ping"},
		{Role: RoleUser, Content: "Hello"},
	}
}

func TestGateway_DisabledWithoutProvider(t *testing.T) {
	g := NewGateway(nil, DefaultConfig(), nil)

	if g.Enabled() {
		t.Error("Expected gateway to be disabled")
	}
	if text, ok := g.Call(context.Background(), ping()); ok || text != "" {
		t.Errorf("Expected failure, got %q", text)
	}
}

func TestGateway_SuccessReturnsText(t *testing.T) {
	stub := &stubProvider{response: `{"sentiment":"Positive"}`}
	g := NewGateway(stub, DefaultConfig(), nil)

	text, ok := g.Call(context.Background(), ping())
	if !ok {
		t.Fatal("Expected success")
	}
	if text != `{"sentiment":"Positive"}` {
		t.Errorf("Unexpected text: %q", text)
	}
	if stub.calls != 1 {
		t.Errorf("Expected 1 call, got %d", stub.calls)
	}
}

func TestGateway_ProviderErrorCollapses(t *testing.T) {
	stub := &stubProvider{err: errors.New("dial tcp: connection refused")}
	g := NewGateway(stub, DefaultConfig(), nil)

	if _, ok := g.Call(context.Background(), ping()); ok {
		t.Error("Expected failure on provider error")
	}
}

func TestGateway_TracesToDebugLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	stub := &stubProvider{response: "pong"}
	g := NewGateway(stub, DefaultConfig(), debuglog.New(path))

	if _, ok := g.Call(context.Background(), ping()); !ok {
		t.Fatal("Expected success")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected trace file, got %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "LLM REQUEST") {
		t.Error("Expected request entry in trace")
	}
	if !strings.Contains(content, "LLM RESPONSE") || !strings.Contains(content, "pong") {
		t.Error("Expected response entry in trace")
	}
}

func TestGateway_PingUsesCall(t *testing.T) {
	stub := &stubProvider{response: "hello"}
	g := NewGateway(stub, DefaultConfig(), nil)
	if !g.Ping(context.Background()) {
		t.Error("Expected ping to succeed")
	}

	g = NewGateway(nil, DefaultConfig(), nil)
	if g.Ping(context.Background()) {
		t.Error("Expected ping to fail when disabled")
	}
}

func TestNewProvider_Selection(t *testing.T) {
	if p, err := NewProvider(Config{}); err != nil || p != nil {
		t.Errorf("Expected disabled provider, got %v / %v", p, err)
	}

	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Error("Expected error without API key")
	}

	p, err := NewProvider(Config{Provider: "openai", APIKey: "test-key"})
	if err != nil || p == nil {
		t.Fatalf("Expected openai provider, got %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("Expected openai, got %s", p.Name())
	}

	p, err = NewProvider(Config{Provider: "ollama"})
	if err != nil || p == nil {
		t.Fatalf("Expected ollama provider, got %v", err)
	}
	if p.Name() != "ollama" {
		t.Errorf("Expected ollama, got %s", p.Name())
	}

	if _, err := NewProvider(Config{Provider: "carrier-pigeon"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}
