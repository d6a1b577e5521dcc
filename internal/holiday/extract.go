package holiday

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Parsing models wrap JSON in markdown fences or prose despite instructions.
// Tried in order; first pattern whose capture parses wins.
var jsonPatterns = []*regexp.Regexp{
	regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```"),
	regexp.MustCompile("(?s)```\\s*(.*?)\\s*```"),
	regexp.MustCompile(`(?s)\{.*\}`),
}

// ExtractJSON locates the JSON object inside a model response.
func ExtractJSON(text string) ([]byte, error) {
	text = strings.TrimSpace(text)

	for _, pattern := range jsonPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		candidate := match[0]
		if len(match) > 1 {
			candidate = match[1]
		}
		if json.Valid([]byte(candidate)) {
			return []byte(candidate), nil
		}
	}

	if json.Valid([]byte(text)) {
		return []byte(text), nil
	}

	return nil, fmt.Errorf("no valid JSON object found in model response")
}

// Decode extracts and unmarshals a model response into an unvalidated Record.
func Decode(text string) (*Record, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	var record Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to decode holiday data: %w", err)
	}

	return &record, nil
}

// Encode marshals a record to indented JSON for artifact files.
func Encode(r *Record) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode holiday data: %w", err)
	}
	return data, nil
}
