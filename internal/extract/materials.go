package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/fieldrx/hcplog/internal/model"
)

const materialsInstruction = `Return JSON with keys: materials_shared (array), samples_distributed (array), topics_discussed (string|null).`

var (
	brochureRe = regexp.MustCompile(`(?i)\bbrochure\b`)
	leafletRe  = regexp.MustCompile(`(?i)\bleaflet\b`)
	samplesRe  = regexp.MustCompile(`(?i)(\d+)\s*(?:samples|sample|vials|packs)`)
	topicsRe   = regexp.MustCompile(`(?i)(discussed|about|regarding)\s+([A-Za-z0-9 \-,.&]+?)(?:\.|,|$)`)
)

// MaterialsAndTopics extracts shared materials, distributed samples and
// the topics discussed, as one field group
func (e *Extractor) MaterialsAndTopics(ctx context.Context, text string) model.ExtractionResult {
	out := model.NewExtractionResult()

	if obj, ok := e.llmObject(ctx, materialsInstruction, text); ok {
		out.MaterialsShared = asStringSlice(obj["materials_shared"])
		out.SamplesDistributed = asStringSlice(obj["samples_distributed"])
		out.TopicsDiscussed = asString(obj["topics_discussed"])
		return out
	}

	if brochureRe.MatchString(text) {
		out.MaterialsShared = append(out.MaterialsShared, "Brochure")
	}
	if leafletRe.MatchString(text) {
		out.MaterialsShared = append(out.MaterialsShared, "Leaflet")
	}

	for _, m := range samplesRe.FindAllStringSubmatch(text, -1) {
		out.SamplesDistributed = append(out.SamplesDistributed, fmt.Sprintf("%s sample(s)", m[1]))
	}

	if m := topicsRe.FindStringSubmatch(text); m != nil {
		out.TopicsDiscussed = model.String(strings.TrimSpace(m[2]))
	}
	return out
}
