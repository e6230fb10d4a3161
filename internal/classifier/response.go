package classifier

import (
	"encoding/json"
	"fmt"
	"strings"

	"docext/internal/domain"
)

// The remote classifier's response body varies by model family. Instead of
// probing nested keys ad hoc, each known shape gets its own parser; the first
// parser that yields text wins, and anything matching no shape is a parse
// failure that triggers heuristic fallback upstream.

type shapeParser struct {
	name  string
	parse func(body []byte) (string, bool)
}

var responseShapes = []shapeParser{
	{"label", parseLabelShape},
	{"type", parseTypeShape},
	{"choices", parseChoicesShape},
	{"candidates", parseCandidatesShape},
	{"plain", parsePlainShape},
}

// ParseLabel extracts a document type from a remote classifier response
// body. It returns an error when no known shape matches or the extracted
// text contains none of the three label words.
func ParseLabel(body []byte) (domain.DocumentType, error) {
	for _, shape := range responseShapes {
		text, ok := shape.parse(body)
		if !ok {
			continue
		}
		if dt, ok := findLabelWord(text); ok {
			return dt, nil
		}
		return "", fmt.Errorf("response shape %q carries no label word: %q", shape.name, truncate(text, 120))
	}
	return "", fmt.Errorf("unrecognized classifier response shape: %s", truncate(string(body), 200))
}

// findLabelWord scans text for one of the three label words.
func findLabelWord(text string) (domain.DocumentType, bool) {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "receipt"):
		return domain.DocumentTypeReceipt, true
	case strings.Contains(t, "invoice"):
		return domain.DocumentTypeInvoice, true
	case strings.Contains(t, "unknown"):
		return domain.DocumentTypeUnknown, true
	default:
		return "", false
	}
}

// {"label":"receipt"}
func parseLabelShape(body []byte) (string, bool) {
	var v struct {
		Label string `json:"label"`
	}
	if err := json.Unmarshal(body, &v); err != nil || v.Label == "" {
		return "", false
	}
	return v.Label, true
}

// {"type":"invoice"}
func parseTypeShape(body []byte) (string, bool) {
	var v struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(body, &v); err != nil || v.Type == "" {
		return "", false
	}
	return v.Type, true
}

// {"choices":[{"text":"receipt"}]} and the outputs/label/content/output
// variants; list entries may also be bare strings.
func parseChoicesShape(body []byte) (string, bool) {
	var v struct {
		Choices []json.RawMessage `json:"choices"`
		Outputs []json.RawMessage `json:"outputs"`
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return "", false
	}
	list := v.Choices
	if len(list) == 0 {
		list = v.Outputs
	}
	if len(list) == 0 {
		return "", false
	}

	var s string
	if err := json.Unmarshal(list[0], &s); err == nil {
		return s, true
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(list[0], &obj); err != nil {
		return "", false
	}
	for _, key := range []string{"text", "label", "content", "output"} {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s, true
		}
	}
	return "", false
}

// Gemini-style {"candidates":[{"content":{"parts":[{"text":"..."}]}}]}
func parseCandidatesShape(body []byte) (string, bool) {
	var v struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return "", false
	}
	if len(v.Candidates) == 0 || len(v.Candidates[0].Content.Parts) == 0 {
		return "", false
	}
	text := v.Candidates[0].Content.Parts[0].Text
	return text, text != ""
}

// A bare JSON string or raw plain-text body.
func parsePlainShape(body []byte) (string, bool) {
	var s string
	if err := json.Unmarshal(body, &s); err == nil && s != "" {
		return s, true
	}
	t := strings.TrimSpace(string(body))
	if t == "" || strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[") {
		return "", false
	}
	return t, true
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
