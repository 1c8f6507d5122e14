package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/fieldrx/hcplog/internal/model"
)

const sentimentInstruction = `Classify as Positive, Neutral or Negative. Return ONLY JSON {"sentiment":"..."}.`

// Keyword rules, checked in this order. Positive runs before negative,
// so "not interested" classifies through the "interested" keyword.
// Do not reorder.
var (
	observedSentimentRe = regexp.MustCompile(`(?i)\b(?:observed|inferred)(?:\s*/\s*inferred)?\s+(?:hcp\s+)?sentiment\s*[:\-]?\s*(positive|negative|neutral)\b`)
	positiveRe          = regexp.MustCompile(`(?i)\b(positive|liked|interested|good|favourable|favorable)\b`)
	negativeRe          = regexp.MustCompile(`(?i)\b(negative|not interested|did not|disliked|no interest)\b`)
	neutralRe           = regexp.MustCompile(`(?i)\bneutral\b`)
)

// Sentiment classifies the interaction. Unlike the other extractors the
// keyword rules run FIRST; the LLM is only consulted when no rule
// matched, and its answer is mapped through pos/neg/neu substrings.
func (e *Extractor) Sentiment(ctx context.Context, text string) model.ExtractionResult {
	out := model.NewExtractionResult()

	if m := observedSentimentRe.FindStringSubmatch(text); m != nil {
		label := strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:])
		return withSentiment(out, label, model.SourceObserved)
	}

	if positiveRe.MatchString(text) {
		return withSentiment(out, string(model.SentimentPositive), model.SourceInferred)
	}
	if negativeRe.MatchString(text) {
		return withSentiment(out, string(model.SentimentNegative), model.SourceInferred)
	}
	if neutralRe.MatchString(text) {
		return withSentiment(out, string(model.SentimentNeutral), model.SourceInferred)
	}

	if obj, ok := e.llmObject(ctx, sentimentInstruction, text); ok {
		if s := asString(obj["sentiment"]); s != nil {
			ss := strings.ToLower(strings.TrimSpace(*s))
			switch {
			case strings.Contains(ss, "pos"):
				return withSentiment(out, string(model.SentimentPositive), model.SourceInferred)
			case strings.Contains(ss, "neg"):
				return withSentiment(out, string(model.SentimentNegative), model.SourceInferred)
			case strings.Contains(ss, "neu"):
				return withSentiment(out, string(model.SentimentNeutral), model.SourceInferred)
			}
		}
	}

	return out
}

func withSentiment(out model.ExtractionResult, label string, source model.SentimentSource) model.ExtractionResult {
	out.Sentiment = model.String(label)
	out.SentimentSource = model.String(string(source))
	return out
}
