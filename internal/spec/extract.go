package spec

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var fencedBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// Extract recovers a specification from free-form provider output. It
// degrades through three parse layers (whole response, fenced code
// blocks, outermost brace span) and finally the deterministic template
// for the business type, so it always returns a usable specification.
// The returned error is advisory: non-nil means every parse layer
// failed and the template fallback was used.
func Extract(text, businessType string, catalog Catalog) (*Spec, error) {
	if s, ok := parseWhole(text); ok {
		return s, nil
	}
	if s, ok := parseFencedBlocks(text); ok {
		return s, nil
	}
	if s, ok := parseBraceSpan(text); ok {
		return s, nil
	}
	return catalog.Build(businessType, []string{"basic"}), fmt.Errorf("no parseable specification in provider output")
}

// parseWhole attempts to read the entire response as a JSON document.
func parseWhole(text string) (*Spec, bool) {
	return parseCandidate(strings.TrimSpace(text))
}

// parseFencedBlocks tries each fenced code block in turn, whether or not
// it carries a language tag.
func parseFencedBlocks(text string) (*Spec, bool) {
	for _, match := range fencedBlockPattern.FindAllStringSubmatch(text, -1) {
		if s, ok := parseCandidate(strings.TrimSpace(match[1])); ok {
			return s, true
		}
	}
	return nil, false
}

// parseBraceSpan tries the substring between the outermost pair of
// braces in the raw text.
func parseBraceSpan(text string) (*Spec, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	return parseCandidate(text[start : end+1])
}

// parseCandidate accepts a candidate only when it is a well-formed JSON
// object that decodes into a specification. The gjson check rejects
// malformed payloads cheaply before the full decode.
func parseCandidate(candidate string) (*Spec, bool) {
	if candidate == "" || !strings.HasPrefix(candidate, "{") || !gjson.Valid(candidate) {
		return nil, false
	}
	var s Spec
	if err := json.Unmarshal([]byte(candidate), &s); err != nil {
		return nil, false
	}
	return &s, true
}
