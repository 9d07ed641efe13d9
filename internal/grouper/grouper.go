// Package grouper classifies raw line items into the statement buckets
// a validator can reason about. Classification is deterministic and
// total: every item lands somewhere, with OtherIndicators as the
// catch-all for ratios, cash-flow lines, and anything unrecognized.
package grouper

import (
	"strings"
	"time"

	"finstmt/internal/domain"
)

// NormalizeKey produces the canonical matching key for an item name or
// hint: lowercased, trimmed, internal whitespace collapsed to single
// spaces. Two names normalizing to the same key are treated as the same
// line item during comparison.
func NormalizeKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Classify resolves the bucket for a single item. The category hint
// wins when it matches a known alias exactly; otherwise the source
// section is consulted, then the name keyword lexicon, and finally the
// catch-all.
func Classify(item domain.RawLineItem) domain.Bucket {
	if b, ok := hintAliases[NormalizeKey(item.CategoryHint)]; ok {
		return b
	}
	if b, ok := sectionBucket(NormalizeKey(item.SourceSection)); ok {
		return b
	}
	if b, ok := keywordBucket(NormalizeKey(item.Name)); ok {
		return b
	}
	return domain.BucketOtherIndicators
}

func sectionBucket(section string) (domain.Bucket, bool) {
	if section == "" {
		return "", false
	}
	for _, rule := range sectionRules {
		for _, needle := range rule.needles {
			if strings.Contains(section, needle) {
				return rule.bucket, true
			}
		}
	}
	return "", false
}

func keywordBucket(name string) (domain.Bucket, bool) {
	for _, entry := range keywordLexicon {
		for _, kw := range entry.keywords {
			if strings.Contains(name, kw) {
				return entry.bucket, true
			}
		}
	}
	return "", false
}

// Group classifies every item of an extraction record and derives
// per-bucket totals over current-year values. Items keep their
// extraction order inside each bucket; every bucket is present in the
// output even when empty.
func Group(rec *domain.RawExtractionRecord) *domain.GroupedRecord {
	out := &domain.GroupedRecord{
		RunID:        rec.RunID,
		SourceFile:   rec.SourceFile,
		GroupedAt:    time.Now().UTC(),
		Buckets:      make(map[domain.Bucket][]domain.GroupedLineItem, len(domain.AllBuckets)),
		Totals:       make(map[domain.Bucket]float64, len(domain.AllBuckets)),
		SkippedCount: len(rec.SkippedChunks),
	}
	for _, b := range domain.AllBuckets {
		out.Buckets[b] = []domain.GroupedLineItem{}
		out.Totals[b] = 0
	}

	for _, item := range rec.Items {
		b := Classify(item)
		out.Buckets[b] = append(out.Buckets[b], domain.GroupedLineItem{
			RawLineItem: item,
			Bucket:      b,
			Key:         NormalizeKey(item.Name),
		})
		if item.CurrentYear != nil {
			out.Totals[b] += *item.CurrentYear
		}
	}
	return out
}
