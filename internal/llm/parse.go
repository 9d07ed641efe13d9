package llm

import (
	"encoding/json"
	"fmt"
	"maps"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"finstmt/internal/domain"
)

// lineItemSchema is the field contract a candidate entry must satisfy
// before a RawLineItem is constructed from it. Extra keys are tolerated;
// missing years are not errors (absence signals an extraction miss).
const lineItemSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"current_year": {"type": ["number", "null"]},
		"previous_year": {"type": ["number", "null"]},
		"category_hint": {"type": ["string", "null"]}
	},
	"required": ["name"],
	"additionalProperties": true
}`

var lineItemSchemaCompiled = jsonschema.MustCompileString("line_item.json", lineItemSchema)

// ParseLineItems decodes a cleaned JSON document into line items. The
// model may answer with an array of item objects, an object keyed by
// item name, or either of those nested under wrapper keys (sections,
// "metrics", "items"); all forms are walked. Entries that fail the
// field contract are dropped; if the document yields entries but none
// survive validation, the response counts as malformed and is retried.
func ParseLineItems(doc []byte) ([]domain.RawLineItem, error) {
	var top any
	if err := json.Unmarshal(doc, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	var candidates []map[string]any
	collectCandidates(top, "", &candidates)

	items := make([]domain.RawLineItem, 0, len(candidates))
	invalid := 0
	for _, cand := range candidates {
		item, ok := toLineItem(cand)
		if !ok {
			invalid++
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 && invalid > 0 {
		return nil, fmt.Errorf("%w: %d entries failed field validation", domain.ErrMalformedResponse, invalid)
	}
	return items, nil
}

// collectCandidates walks arrays and objects, descending through
// wrapper levels until it reaches item-shaped maps. Map keys become the
// item name when the entry carries none of its own. Keys are visited in
// sorted order so parsing is deterministic.
func collectCandidates(node any, name string, out *[]map[string]any) {
	switch v := node.(type) {
	case []any:
		for _, elem := range v {
			collectCandidates(elem, name, out)
		}
	case map[string]any:
		if isItemShaped(v) {
			cand := maps.Clone(v)
			if _, ok := cand["name"]; !ok && name != "" {
				cand["name"] = name
			}
			*out = append(*out, cand)
			return
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			collectCandidates(v[k], k, out)
		}
	}
}

func isItemShaped(m map[string]any) bool {
	if _, ok := m["current_year"]; ok {
		return true
	}
	if _, ok := m["previous_year"]; ok {
		return true
	}
	if _, ok := m["category_hint"]; ok {
		return true
	}
	_, ok := m["name"].(string)
	return ok
}

// toLineItem normalizes a candidate's value types, checks it against
// the line-item schema, and builds the immutable RawLineItem. Source
// provenance is stamped later by the orchestrator.
func toLineItem(cand map[string]any) (domain.RawLineItem, bool) {
	normalizeCandidate(cand)
	if err := lineItemSchemaCompiled.Validate(cand); err != nil {
		return domain.RawLineItem{}, false
	}

	item := domain.RawLineItem{Name: strings.TrimSpace(cand["name"].(string))}
	if f, ok := cand["current_year"].(float64); ok {
		item.CurrentYear = &f
	}
	if f, ok := cand["previous_year"].(float64); ok {
		item.PreviousYear = &f
	}
	if s, ok := cand["category_hint"].(string); ok {
		item.CategoryHint = strings.TrimSpace(s)
	}
	return item, true
}

// normalizeCandidate coerces the loose value types models produce:
// numeric strings (with or without digit-grouping commas) become
// numbers, empty or unparseable year values are removed so they read as
// extraction misses, null hints are dropped.
func normalizeCandidate(cand map[string]any) {
	for _, key := range []string{"current_year", "previous_year"} {
		switch t := cand[key].(type) {
		case string:
			s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
			if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "none") {
				delete(cand, key)
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				cand[key] = f
			} else {
				delete(cand, key)
			}
		case nil:
			if _, present := cand[key]; present {
				delete(cand, key)
			}
		}
	}
	if _, ok := cand["category_hint"].(string); !ok {
		delete(cand, "category_hint")
	}
	if s, ok := cand["name"].(string); ok && strings.TrimSpace(s) == "" {
		delete(cand, "name")
	}
}
