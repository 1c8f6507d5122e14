package model

import "time"

// Sentiment labels for an HCP interaction
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// SentimentSource indicates how a sentiment value was derived
type SentimentSource string

const (
	// SourceObserved means the text explicitly stated the sentiment
	SourceObserved SentimentSource = "observed"
	// SourceInferred means the sentiment was derived from wording
	SourceInferred SentimentSource = "inferred"
)

// ExtractionResult is the merged output of the extraction pipeline.
// All nine fields are always serialized; absence is an explicit null
// (or empty array for the list fields), never a missing key.
type ExtractionResult struct {
	HCPName            *string  `json:"hcp_name"`
	Date               *string  `json:"date"` // ISO 8601 calendar date (YYYY-MM-DD)
	Time               *string  `json:"time"` // 24-hour HH:MM
	TopicsDiscussed    *string  `json:"topics_discussed"`
	MaterialsShared    []string `json:"materials_shared"`
	SamplesDistributed []string `json:"samples_distributed"`
	Sentiment          *string  `json:"sentiment"`        // Positive / Neutral / Negative
	SentimentSource    *string  `json:"sentiment_source"` // observed / inferred
	Summary            *string  `json:"summary"`
}

// NewExtractionResult returns a result with all fields at their defaults.
// The list fields are non-nil so they serialize as [] rather than null.
func NewExtractionResult() ExtractionResult {
	return ExtractionResult{
		MaterialsShared:    []string{},
		SamplesDistributed: []string{},
	}
}

// InteractionRecord is a persisted HCP interaction: the raw note text
// plus whatever the extraction pipeline recovered from it.
type InteractionRecord struct {
	ID        string    `json:"interaction_id"`
	RawText   string    `json:"raw_text"`
	CreatedAt time.Time `json:"created_at"`

	ExtractionResult
}

// String is a convenience for building optional string fields
func String(s string) *string {
	return &s
}
