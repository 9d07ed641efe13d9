package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"

	"finstmt/internal/domain"
)

var (
	reFence      = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	reDigitComma = regexp.MustCompile(`(\d),(\d)`)
	reTrailComma = regexp.MustCompile(`,(\s*[}\]])`)
	reNone       = regexp.MustCompile(`(?i)\bNone\b`)
)

// CleanResponse strips non-JSON wrapper text (markdown fences, prose
// pre/postambles) from a model response and repairs the common
// formatting mistakes seen in the wild: digit-grouping commas inside
// numbers, trailing commas, Python None literals. Returns
// domain.ErrMalformedResponse when no valid JSON document is
// recoverable; that failure is transient, since a retried call may
// yield well-formed output.
func CleanResponse(raw string) ([]byte, error) {
	text := strings.TrimSpace(raw)
	if m := reFence.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}
	text = stripWrapper(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", domain.ErrMalformedResponse)
	}

	text = reDigitComma.ReplaceAllString(text, "$1$2")
	text = reTrailComma.ReplaceAllString(text, "$1")
	text = reNone.ReplaceAllString(text, "null")

	if json.Valid([]byte(text)) {
		return []byte(text), nil
	}

	repaired, err := jsonrepair.RepairJSON(text)
	if err == nil && json.Valid([]byte(repaired)) {
		return []byte(repaired), nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrMalformedResponse, truncate(raw, 200))
}

// stripWrapper cuts prose around the outermost JSON object or array.
func stripWrapper(text string) string {
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return ""
	}
	var closer byte = '}'
	if text[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(text, closer)
	if end <= start {
		// Unclosed document: keep the tail and let the repairer close it.
		return text[start:]
	}
	return text[start : end+1]
}
