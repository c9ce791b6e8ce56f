package jsonutil

import "testing"

func TestStripMarkdownFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"leading whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
		{"too short", "```", "```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkdownFences(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	got, err := ExtractJSON("Here is the result: {\"type\":\"general\"} hope that helps")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"type":"general"}` {
		t.Errorf("got %q", got)
	}

	if _, err := ExtractJSON("no json here"); err == nil {
		t.Error("expected error for text without JSON")
	}
}

func TestParseJSON(t *testing.T) {
	type out struct {
		Type string   `json:"type"`
		Tags []string `json:"tags"`
	}

	raw := "```json\n{\"type\":\"technology\",\"tags\":[\"ai\"]}\n```"
	got, err := ParseJSON[out](raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Type != "technology" || len(got.Tags) != 1 || got.Tags[0] != "ai" {
		t.Errorf("unexpected result: %+v", got)
	}

	if _, err := ParseJSON[out]("{\"type\": broken"); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
