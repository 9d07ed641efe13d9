package domain

import (
	"time"

	"github.com/google/uuid"
)

// Chunk is a bounded slice of document text sent to the extraction
// endpoint in one request. Chunks are immutable once produced.
type Chunk struct {
	Index       int    `json:"index"`
	PageIndex   int    `json:"page_index"`
	SectionHint string `json:"section_hint,omitempty"`
	Text        string `json:"text"`
}

// RawLineItem is a single financial metric as extracted by the model.
// Nil year values mean the model did not report a number: an extraction
// miss, not zero.
type RawLineItem struct {
	Name          string   `json:"name"`
	CurrentYear   *float64 `json:"current_year,omitempty"`
	PreviousYear  *float64 `json:"previous_year,omitempty"`
	CategoryHint  string   `json:"category_hint,omitempty"`
	SourcePage    int      `json:"source_page"`
	SourceSection string   `json:"source_section,omitempty"`
}

// SkippedChunk records a chunk dropped after its retry budget ran out.
type SkippedChunk struct {
	ChunkIndex  int    `json:"chunk_index"`
	PageIndex   int    `json:"page_index"`
	SectionHint string `json:"section_hint,omitempty"`
	Attempts    int    `json:"attempts"`
	LastError   string `json:"last_error"`
}

// RawExtractionRecord is the first durable pipeline artifact: every line
// item extracted from a document, in page/chunk order, plus run metadata.
// A record with skipped chunks is valid but incomplete.
type RawExtractionRecord struct {
	RunID         uuid.UUID      `json:"run_id"`
	SourceFile    string         `json:"source_file"`
	ExtractedAt   time.Time      `json:"extracted_at"`
	Model         string         `json:"model"`
	Sections      []string       `json:"sections"`
	Items         []RawLineItem  `json:"items"`
	SkippedChunks []SkippedChunk `json:"skipped_chunks,omitempty"`
}

// GroupedLineItem is a RawLineItem re-tagged with its resolved bucket
// and a normalized lookup key.
type GroupedLineItem struct {
	RawLineItem
	Bucket Bucket `json:"bucket"`
	Key    string `json:"key"`
}

// GroupedRecord maps each bucket to its line items in extraction order,
// with derived per-bucket totals over current-year values.
type GroupedRecord struct {
	RunID        uuid.UUID                    `json:"run_id"`
	SourceFile   string                       `json:"source_file"`
	GroupedAt    time.Time                    `json:"grouped_at"`
	Buckets      map[Bucket][]GroupedLineItem `json:"buckets"`
	Totals       map[Bucket]float64           `json:"totals"`
	SkippedCount int                          `json:"skipped_chunks,omitempty"`
}

// Items returns all grouped line items in canonical bucket order,
// extraction order within each bucket.
func (r *GroupedRecord) Items() []GroupedLineItem {
	var out []GroupedLineItem
	for _, b := range AllBuckets {
		out = append(out, r.Buckets[b]...)
	}
	return out
}

// BalanceReport is the result of checking a grouped record against the
// accounting identity Assets = Liabilities + Equity. It is recomputed on
// every validation run, never carried as pipeline state.
type BalanceReport struct {
	MissingCount     int      `json:"missing_count"`
	NegativeCount    int      `json:"negative_count"`
	MissingValues    []string `json:"missing_values,omitempty"`
	NegativeValues   []string `json:"negative_values,omitempty"`
	TotalAssets      float64  `json:"total_assets"`
	TotalLiabilities float64  `json:"total_liabilities"`
	TotalEquity      float64  `json:"total_equity"`
	Difference       float64  `json:"difference"`
	Tolerance        float64  `json:"tolerance"`
	Balanced         bool     `json:"is_balanced"`
}

// ComparisonMetrics aggregates numeric error statistics over the fields
// present on both sides of a comparison.
type ComparisonMetrics struct {
	AccuracyPct float64 `json:"accuracy_pct"`
	MAE         float64 `json:"mae"`
	MAPEPct     float64 `json:"mape_pct"`
	MAPESamples int     `json:"mape_samples"`
	RMSE        float64 `json:"rmse"`
	R2          float64 `json:"r2"`
	Samples     int     `json:"samples"`
}

// ComparisonReport diffs a grouped record against a baseline record.
// Field identity is by normalized name, independent of bucket. Fields
// present on only one side are listed explicitly and contribute to
// MissingRate but not to the numeric metrics.
type ComparisonReport struct {
	FieldCountOurs     int               `json:"field_count_ours"`
	FieldCountBaseline int               `json:"field_count_baseline"`
	OverlapCount       int               `json:"overlap_count"`
	OverlapFields      []string          `json:"overlap_fields"`
	OnlyOurs           []string          `json:"only_ours,omitempty"`
	OnlyBaseline       []string          `json:"only_baseline,omitempty"`
	Metrics            ComparisonMetrics `json:"metrics"`
	MissingRate        float64           `json:"missing_rate"`
}
