package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// AnalysisRecord is one captured screenshot plus the analysis the backend
// produced for it. Filename is not part of the JSON value; it is the key the
// record was stored under and is injected when the feed is normalized.
type AnalysisRecord struct {
	Filename         string `json:"-"`
	Timestamp        string `json:"timestamp"`
	FinalSolution    string `json:"final_solution,omitempty"`
	AIResult         string `json:"ai_result,omitempty"`
	VisionAnalysis   string `json:"vision_analysis,omitempty"`
	TextAnalysis     string `json:"text_analysis,omitempty"`
	EngineeredPrompt string `json:"engineered_prompt,omitempty"`
	ImagePath        string `json:"image_path,omitempty"`

	// Extra holds any field the viewer does not know about, untouched.
	Extra map[string]json.RawMessage `json:"-"`
}

// knownFields maps JSON keys to the string field they populate
func (r *AnalysisRecord) knownFields() map[string]*string {
	return map[string]*string{
		"timestamp":         &r.Timestamp,
		"final_solution":    &r.FinalSolution,
		"ai_result":         &r.AIResult,
		"vision_analysis":   &r.VisionAnalysis,
		"text_analysis":     &r.TextAnalysis,
		"engineered_prompt": &r.EngineeredPrompt,
		"image_path":        &r.ImagePath,
	}
}

// UnmarshalJSON decodes the known string fields and keeps everything else in
// Extra. A null record decodes to an empty one, and null or missing fields to
// the empty string. A known field holding a non-string value is left empty and
// kept in Extra as received.
func (r *AnalysisRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("analysis record must be a JSON object: %w", err)
	}

	known := r.knownFields()
	for key, value := range raw {
		dst, ok := known[key]
		if !ok {
			if r.Extra == nil {
				r.Extra = make(map[string]json.RawMessage)
			}
			r.Extra[key] = value
			continue
		}
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			*dst = ""
			continue
		}
		if err := json.Unmarshal(value, dst); err != nil {
			*dst = ""
			if r.Extra == nil {
				r.Extra = make(map[string]json.RawMessage)
			}
			r.Extra[key] = value
		}
	}
	return nil
}

// MarshalJSON writes the known fields back out together with Extra.
func (r AnalysisRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+7)
	for key, value := range r.Extra {
		out[key] = value
	}
	for key, value := range r.knownFields() {
		if _, raw := r.Extra[key]; raw && *value == "" {
			continue
		}
		if *value == "" && key != "timestamp" {
			continue
		}
		out[key] = *value
	}
	return json.Marshal(out)
}

// Naive date-time layouts are what Python's datetime.isoformat() emits
// without a zone; they are read in local time.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
}

// Display layouts for LocalTime and its two halves.
const (
	DateLayout  = "Jan 2, 2006"
	ClockLayout = "3:04:05 PM"
)

// ParseTimestamp parses an ISO-8601 timestamp. Date-times without an offset
// are read in local time; a bare date is midnight UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Epoch is the sort key used for records whose timestamp cannot be parsed.
var Epoch = time.Unix(0, 0).UTC()

// Time returns the parsed timestamp, or Epoch when it cannot be parsed.
func (r AnalysisRecord) Time() time.Time {
	if t, ok := ParseTimestamp(r.Timestamp); ok {
		return t
	}
	return Epoch
}

// LocalTime formats the timestamp for display in the local zone.
// Unparsable timestamps are returned as received.
func (r AnalysisRecord) LocalTime() string {
	t, ok := ParseTimestamp(r.Timestamp)
	if !ok {
		return r.Timestamp
	}
	return t.Local().Format(DateLayout + " " + ClockLayout)
}

// LocalDateClock splits LocalTime into its date and clock parts. ok is false
// when the timestamp cannot be parsed.
func (r AnalysisRecord) LocalDateClock() (date, clock string, ok bool) {
	t, ok := ParseTimestamp(r.Timestamp)
	if !ok {
		return "", "", false
	}
	t = t.Local()
	return t.Format(DateLayout), t.Format(ClockLayout), true
}
