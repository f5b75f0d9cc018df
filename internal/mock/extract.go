package mock

import (
	"regexp"
	"strings"
)

var (
	taggedJSPattern  = regexp.MustCompile("(?s)```(?:javascript|js)(.*?)```")
	fencedJSPattern  = regexp.MustCompile("(?s)```(.*?)```")
	jsPrefixes       = []string{"const ", "import ", "// ", "let ", "var ", "function ", "'use strict';"}
	proseEndPrefixes = []string{"## ", "# ", "---", "===", "In conclusion", "This code", "The above"}
)

// ExtractJavaScript recovers the JavaScript program from a free-form AI
// response. Layers are tried in order of confidence: a fenced block
// tagged javascript/js, an untagged fenced block that looks like
// JavaScript, a line span starting at the first JavaScript-looking line,
// and finally the whole trimmed response. It never fails.
func ExtractJavaScript(response string) string {
	if code, ok := extractTaggedBlock(response); ok {
		return code
	}
	if code, ok := extractFencedBlock(response); ok {
		return code
	}
	if code, ok := extractLineSpan(response); ok {
		return code
	}
	return strings.TrimSpace(response)
}

func extractTaggedBlock(response string) (string, bool) {
	match := taggedJSPattern.FindStringSubmatch(response)
	if match == nil {
		return "", false
	}
	return strings.TrimSpace(match[1]), true
}

func extractFencedBlock(response string) (string, bool) {
	match := fencedJSPattern.FindStringSubmatch(response)
	if match == nil {
		return "", false
	}
	code := strings.TrimSpace(match[1])
	if !startsWithAny(code, jsPrefixes) {
		return "", false
	}
	return code, true
}

// extractLineSpan finds the first line that opens like JavaScript and
// cuts the span off at the last trailing line of prose, assuming the
// code runs to the end otherwise.
func extractLineSpan(response string) (string, bool) {
	lines := strings.Split(strings.TrimSpace(response), "\n")
	for i, line := range lines {
		if !startsWithAny(strings.TrimSpace(line), jsPrefixes) {
			continue
		}
		for j := len(lines) - 1; j > i; j-- {
			if startsWithAny(strings.TrimSpace(lines[j]), proseEndPrefixes) {
				return strings.TrimSpace(strings.Join(lines[i:j], "\n")), true
			}
		}
		return strings.TrimSpace(strings.Join(lines[i:], "\n")), true
	}
	return "", false
}

func startsWithAny(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
