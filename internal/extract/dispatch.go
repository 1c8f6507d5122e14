package extract

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/fieldrx/hcplog/internal/model"
)

// ErrUnknownTool is returned when a dispatch name matches no registered
// extractor. This is the only error the extraction core propagates: it
// indicates an integration mistake, not a data or network condition.
var ErrUnknownTool = errors.New("unknown tool")

type toolFunc func(context.Context, string) model.ExtractionResult

// tools maps dispatchable names (plus aliases) to extractors
func (e *Extractor) tools() map[string]toolFunc {
	return map[string]toolFunc{
		"hcp_name":             e.HCPName,
		"date":                 e.Date,
		"time":                 e.Time,
		"sentiment":            e.Sentiment,
		"materials":            e.MaterialsAndTopics,
		"materials_and_topics": e.MaterialsAndTopics,
		"summary":              e.Summarize,
	}
}

// Dispatch invokes a single extractor by name, for targeted
// re-extraction of one field without re-running the whole pipeline
func (e *Extractor) Dispatch(ctx context.Context, name, text string) (model.ExtractionResult, error) {
	fn, ok := e.tools()[name]
	if !ok {
		return model.ExtractionResult{}, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return fn(ctx, text), nil
}

// ToolNames lists the registered dispatch names, sorted
func (e *Extractor) ToolNames() []string {
	names := make([]string, 0, len(e.tools()))
	for name := range e.tools() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
