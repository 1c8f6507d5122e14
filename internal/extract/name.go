package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/fieldrx/hcplog/internal/model"
)

const hcpNameInstruction = `Extract HCP name. Return ONLY JSON with key 'hcp_name'.`

// Matches "Dr. Smith", "Prof Rao", etc.
var hcpNameRe = regexp.MustCompile(`(?i)\b(dr\.?\s+[a-z][a-z\-']+|prof\.?\s+[a-z][a-z\-']+)\b`)

// HCPName extracts the healthcare provider's name
func (e *Extractor) HCPName(ctx context.Context, text string) model.ExtractionResult {
	out := model.NewExtractionResult()

	if obj, ok := e.llmObject(ctx, hcpNameInstruction, text); ok {
		if v, present := obj["hcp_name"]; present {
			out.HCPName = asString(v)
			return out
		}
	}

	if m := hcpNameRe.FindString(text); m != "" {
		out.HCPName = model.String(strings.TrimSpace(m))
	}
	return out
}
