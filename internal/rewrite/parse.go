package rewrite

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/bytedance/sonic"
)

var jsonBlockRegex = regexp.MustCompile("```(?:json)?\\s*")

// parseResults turns the raw text of an LLM reply into one result per item.
func parseResults(responseText string, expectedCount int) ([]Result, error) {
	if responseText == "" {
		return nil, fmt.Errorf("no text in response")
	}

	responseText = cleanJSONResponse(responseText)

	results, err := extractResults(responseText)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to parse JSON response: %w (response: %s)",
			err,
			truncateString(responseText, 200),
		)
	}

	if len(results) != expectedCount {
		return nil, fmt.Errorf(
			"expected %d results, got %d",
			expectedCount,
			len(results),
		)
	}

	return results, nil
}

func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)
	s = jsonBlockRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// fixes invalid JSON escape sequences like \N (ASS newline) by escaping the
// backslash, so the literal \N survives parsing.
func fixInvalidEscapes(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	i := 0
	for i < len(s) {
		if i < len(s)-1 && s[i] == '\\' {
			next := s[i+1]
			switch next {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
				result.WriteByte(s[i])
				result.WriteByte(next)
			default:
				result.WriteString("\\\\")
				result.WriteByte(next)
			}
			i += 2
		} else {
			result.WriteByte(s[i])
			i++
		}
	}

	return result.String()
}

// extractResults finds the first JSON value in text that holds results,
// either as a bare array or under a wrapper key. Prose around it is ignored.
func extractResults(text string) ([]Result, error) {
	text = fixInvalidEscapes(text)

	var ends []int
	for j := len(text) - 1; j >= 0; j-- {
		if text[j] == ']' || text[j] == '}' {
			ends = append(ends, j)
		}
	}

	for i := 0; i < len(text); i++ {
		if text[i] != '[' && text[i] != '{' {
			continue
		}
		for _, j := range ends {
			if j <= i {
				break
			}
			candidate := []byte(text[i : j+1])
			if !sonic.Valid(candidate) {
				continue
			}
			if results, ok := tryExtractResults(candidate); ok {
				return results, nil
			}
		}
	}
	return nil, fmt.Errorf("no valid rewrite JSON found in response")
}

func tryExtractResults(raw []byte) ([]Result, bool) {
	var results []Result
	if err := sonic.Unmarshal(raw, &results); err == nil &&
		validateResults(results) {
		return results, true
	}

	var wrapper map[string]json.RawMessage
	if err := sonic.Unmarshal(raw, &wrapper); err != nil {
		return nil, false
	}

	for _, key := range []string{"results", "rewrites", "translations", "data", "items"} {
		if fieldRaw, exists := wrapper[key]; exists {
			var fieldResults []Result
			if err := sonic.Unmarshal(fieldRaw, &fieldResults); err == nil &&
				validateResults(fieldResults) {
				return fieldResults, true
			}
		}
	}

	for _, fieldRaw := range wrapper {
		var fieldResults []Result
		if err := sonic.Unmarshal(fieldRaw, &fieldResults); err == nil &&
			validateResults(fieldResults) {
			return fieldResults, true
		}
	}

	return nil, false
}

func validateResults(results []Result) bool {
	for _, r := range results {
		if r.Text != "" {
			return true
		}
	}
	return false
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
