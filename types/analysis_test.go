package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		wantOK bool
		want   time.Time
	}{
		{"rfc3339 utc", "2024-01-02T10:00:00Z", true, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)},
		{"rfc3339 offset", "2024-01-02T12:00:00+02:00", true, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)},
		{"python isoformat", "2024-01-02T10:00:00.123456", true, time.Date(2024, 1, 2, 10, 0, 0, 123456000, time.Local)},
		{"naive seconds", "2024-01-02T10:00:00", true, time.Date(2024, 1, 2, 10, 0, 0, 0, time.Local)},
		{"space separated", "2024-01-02 10:00:00", true, time.Date(2024, 1, 2, 10, 0, 0, 0, time.Local)},
		{"date only is utc", "2024-01-02", true, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"garbage", "yesterday", false, time.Time{}},
		{"empty", "", false, time.Time{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := ParseTimestamp(c.input)
			if ok != c.wantOK {
				t.Fatalf("ParseTimestamp(%q) ok = %v; want %v", c.input, ok, c.wantOK)
			}
			if ok && !got.Equal(c.want) {
				t.Fatalf("ParseTimestamp(%q) = %v; want %v", c.input, got, c.want)
			}
		})
	}
}

func TestTimeFallsBackToEpoch(t *testing.T) {
	r := AnalysisRecord{Timestamp: "not a date"}
	if !r.Time().Equal(Epoch) {
		t.Fatalf("Time() = %v; want epoch", r.Time())
	}
	if r.LocalTime() != "not a date" {
		t.Fatalf("LocalTime() = %q; want raw timestamp", r.LocalTime())
	}
}

func TestUnmarshalKeepsUnknownFields(t *testing.T) {
	data := []byte(`{"timestamp":"2024-01-01T10:00:00Z","final_solution":"# Hi","ai_result":null,"score":0.9,"tags":["a"]}`)

	var r AnalysisRecord
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.Timestamp != "2024-01-01T10:00:00Z" || r.FinalSolution != "# Hi" {
		t.Fatalf("known fields not decoded: %+v", r)
	}
	if r.AIResult != "" {
		t.Fatalf("null ai_result should decode to empty, got %q", r.AIResult)
	}
	if string(r.Extra["score"]) != "0.9" || string(r.Extra["tags"]) != `["a"]` {
		t.Fatalf("extra fields not preserved: %v", r.Extra)
	}

	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back map[string]json.RawMessage
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if string(back["score"]) != "0.9" {
		t.Fatalf("score lost on marshal: %s", out)
	}
	if _, ok := back["ai_result"]; ok {
		t.Fatalf("empty ai_result should be omitted: %s", out)
	}
}

func TestUnmarshalRejectsNonObject(t *testing.T) {
	var r AnalysisRecord
	if err := json.Unmarshal([]byte(`"nope"`), &r); err == nil {
		t.Fatal("expected error for string record")
	}
	if err := json.Unmarshal([]byte(`[1]`), &r); err == nil {
		t.Fatal("expected error for array record")
	}
}

func TestUnmarshalNullRecordIsEmpty(t *testing.T) {
	var r AnalysisRecord
	if err := json.Unmarshal([]byte(`null`), &r); err != nil {
		t.Fatalf("null record: %v", err)
	}
	if r.Timestamp != "" || r.FinalSolution != "" || r.Extra != nil {
		t.Fatalf("null record should be empty, got %+v", r)
	}
	if !r.Time().Equal(Epoch) {
		t.Fatal("empty record sorts as epoch")
	}
}

func TestUnmarshalNonStringKnownFieldGoesToExtra(t *testing.T) {
	var r AnalysisRecord
	data := []byte(`{"timestamp": 12, "final_solution": 42, "ai_result": "ok"}`)
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.Timestamp != "" || r.FinalSolution != "" || r.AIResult != "ok" {
		t.Fatalf("unexpected fields: %+v", r)
	}
	if string(r.Extra["final_solution"]) != "42" || string(r.Extra["timestamp"]) != "12" {
		t.Fatalf("raw values should be kept: %v", r.Extra)
	}

	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back map[string]json.RawMessage
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if string(back["final_solution"]) != "42" || string(back["timestamp"]) != "12" {
		t.Fatalf("raw values should round-trip: %s", out)
	}
}

func TestLocalDateClock(t *testing.T) {
	r := AnalysisRecord{Timestamp: "2024-01-02T10:00:00Z"}
	date, clock, ok := r.LocalDateClock()
	if !ok {
		t.Fatal("expected parsed timestamp")
	}
	if date+" "+clock != r.LocalTime() {
		t.Fatalf("%q + %q does not match LocalTime %q", date, clock, r.LocalTime())
	}
	if _, _, ok := (AnalysisRecord{Timestamp: "later"}).LocalDateClock(); ok {
		t.Fatal("unparsable timestamp should not split")
	}
}
