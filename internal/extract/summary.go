package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/fieldrx/hcplog/internal/model"
)

const summaryInstruction = `Summarize interaction in 1-2 sentences. Return JSON {"summary":"..."} only.`

var sentenceSplitRe = regexp.MustCompile(`[.\n]`)

// Summarize produces a short structured summary of the interaction.
// Fallback is the first sentence of the input, or its first 200
// characters when no sentence boundary exists.
func (e *Extractor) Summarize(ctx context.Context, text string) model.ExtractionResult {
	out := model.NewExtractionResult()

	if obj, ok := e.llmObject(ctx, summaryInstruction, text); ok {
		if v, present := obj["summary"]; present {
			out.Summary = asString(v)
			return out
		}
	}

	out.Summary = model.String(FirstSentence(text))
	return out
}

// FirstSentence returns the first sentence of text, or its first 200
// characters when no sentence boundary exists (or the leading segment
// is empty)
func FirstSentence(text string) string {
	segments := sentenceSplitRe.Split(strings.TrimSpace(text), -1)
	if len(segments) > 1 {
		if s := strings.TrimSpace(segments[0]); s != "" {
			return s
		}
	}
	return TruncateRunes(text, 200)
}

// TruncateRunes shortens s to at most n runes
func TruncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
