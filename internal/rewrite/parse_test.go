package rewrite

import (
	"strings"
	"testing"
)

func TestExtractResults(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantErr   bool
	}{
		{
			name: "plain valid array",
			input: `[
				{"index": 0, "text": "こんにちは"},
				{"index": 1, "text": "さようなら"}
			]`,
			wantCount: 2,
		},
		{
			name: "preamble with valid array",
			input: `Here is the rewrite:
			[
				{"index": 0, "text": "Bonjour"},
				{"index": 1, "text": "Au revoir"}
			]`,
			wantCount: 2,
		},
		{
			name: "valid array with trailing text",
			input: `[
				{"index": 0, "text": "Hola"}
			]
			I hope this helps!`,
			wantCount: 1,
		},
		{
			name:      "two arrays picks the first",
			input:     `[{"index": 0, "text": "a"}] or maybe [{"index": 0, "text": "b"}, {"index": 1, "text": "c"}]`,
			wantCount: 1,
		},
		{
			name: "wrapper object with results key",
			input: `{"results": [
				{"index": 0, "text": "Rewritten"}
			]}`,
			wantCount: 1,
		},
		{
			name: "wrapper object with unknown key",
			input: `{"output": [
				{"index": 0, "text": "Übersetzt"}
			]}`,
			wantCount: 1,
		},
		{
			name:    "empty array",
			input:   `[]`,
			wantErr: true,
		},
		{
			name:    "no JSON at all",
			input:   `This is just plain text.`,
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			input:   `[{"index": 0, "text": "incomplete"`,
			wantErr: true,
		},
		{
			name:    "array with empty text",
			input:   `[{"index": 0, "text": ""}]`,
			wantErr: true,
		},
		{
			name: "ASS newline escape in text",
			input: `[
				{"index": 0, "text": "That's why they are fuming...\Nthese Babu and Pappu."}
			]`,
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := extractResults(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(results) != tt.wantCount {
				t.Errorf("got %d results, want %d", len(results), tt.wantCount)
			}
		})
	}
}

func TestExtractResultsKeepsLiteralEscape(t *testing.T) {
	results, err := extractResults(`[{"index": 3, "text": "one\Ntwo"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Index != 3 || results[0].Text != `one\Ntwo` {
		t.Errorf("unexpected result: %+v", results[0])
	}
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON",
			input: `[{"index": 0, "text": "hello"}]`,
			want:  `[{"index": 0, "text": "hello"}]`,
		},
		{
			name:  "json code fence",
			input: "```json\n[{\"index\": 0, \"text\": \"hello\"}]\n```",
			want:  `[{"index": 0, "text": "hello"}]`,
		},
		{
			name:  "plain code fence",
			input: "```\n[{\"index\": 0, \"text\": \"hello\"}]\n```",
			want:  `[{"index": 0, "text": "hello"}]`,
		},
		{
			name:  "with leading/trailing whitespace",
			input: "  \n\n```json\n[{\"index\": 0}]\n```\n\n  ",
			want:  `[{"index": 0}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSONResponse(tt.input); got != tt.want {
				t.Errorf("cleanJSONResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseResultsCountMismatch(t *testing.T) {
	_, err := parseResults(`[{"index": 0, "text": "a"}]`, 2)
	if err == nil || !strings.Contains(err.Error(), "expected 2 results") {
		t.Errorf("expected count mismatch error, got %v", err)
	}

	if _, err := parseResults("", 1); err == nil {
		t.Error("expected error for empty response")
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(
		Options{Instruction: "Translate to French"},
		[]Item{{Index: 4, Text: "Hello"}},
	)

	if !strings.Contains(prompt, "Task: Translate to French") {
		t.Error("prompt is missing the instruction")
	}
	if !strings.Contains(prompt, `"index": 4`) || !strings.Contains(prompt, `"text": "Hello"`) {
		t.Errorf("prompt is missing the input JSON:\n%s", prompt)
	}
}
