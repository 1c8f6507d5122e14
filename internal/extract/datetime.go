package extract

import (
	"context"
	"regexp"

	"github.com/fieldrx/hcplog/internal/model"
	"github.com/fieldrx/hcplog/internal/normalize"
)

const (
	dateInstruction = `Extract the date and return ONLY JSON {"date":"..."} or {"date": null}.`
	timeInstruction = `Extract time, return ONLY JSON {"time":"..."} or null.`
)

var (
	dateWordRe = regexp.MustCompile(`(?i)\b(\d{1,2}(?:st|nd|rd|th)?\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{4})\b`)
	dateNumRe  = regexp.MustCompile(`\b(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})\b`)

	time24Re = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\b`)
	timeAPRe = regexp.MustCompile(`(?i)\b([1-9]|1[0-2])\s*(am|pm)\b`)
)

// Date extracts the interaction date, normalized to YYYY-MM-DD
func (e *Extractor) Date(ctx context.Context, text string) model.ExtractionResult {
	out := model.NewExtractionResult()

	if obj, ok := e.llmObject(ctx, dateInstruction, text); ok {
		if v, present := obj["date"]; present {
			if s := asString(v); s != nil {
				if iso, ok := normalize.Date(*s); ok {
					out.Date = model.String(iso)
				}
			}
			return out
		}
	}

	// "12th Jan 2025" style wins over numeric "12/01/2025"
	if m := dateWordRe.FindString(text); m != "" {
		if iso, ok := normalize.Date(m); ok {
			out.Date = model.String(iso)
		}
		return out
	}
	if m := dateNumRe.FindString(text); m != "" {
		if iso, ok := normalize.Date(m); ok {
			out.Date = model.String(iso)
		}
	}
	return out
}

// Time extracts the interaction time, normalized to 24-hour HH:MM
func (e *Extractor) Time(ctx context.Context, text string) model.ExtractionResult {
	out := model.NewExtractionResult()

	if obj, ok := e.llmObject(ctx, timeInstruction, text); ok {
		if v, present := obj["time"]; present {
			if s := asString(v); s != nil {
				if hm, ok := normalize.Time(*s); ok {
					out.Time = model.String(hm)
				}
			}
			return out
		}
	}

	if m := time24Re.FindString(text); m != "" {
		if hm, ok := normalize.Time(m); ok {
			out.Time = model.String(hm)
		}
		return out
	}
	if m := timeAPRe.FindString(text); m != "" {
		if hm, ok := normalize.Time(m); ok {
			out.Time = model.String(hm)
		}
	}
	return out
}
