package domain

// Bucket is one category in the fixed accounting taxonomy. Every
// extracted line item is classified into exactly one bucket; the set is
// closed and unclassifiable items land in BucketOtherIndicators.
type Bucket string

const (
	BucketAssetsCurrent         Bucket = "assets_current"
	BucketAssetsNonCurrent      Bucket = "assets_non_current"
	BucketLiabilitiesCurrent    Bucket = "liabilities_current"
	BucketLiabilitiesNonCurrent Bucket = "liabilities_non_current"
	BucketEquity                Bucket = "equity"
	BucketIncomeStatement       Bucket = "income_statement"
	BucketOtherIndicators       Bucket = "other_indicators"
)

// AllBuckets lists every bucket in canonical report order.
var AllBuckets = []Bucket{
	BucketAssetsCurrent,
	BucketAssetsNonCurrent,
	BucketLiabilitiesCurrent,
	BucketLiabilitiesNonCurrent,
	BucketEquity,
	BucketIncomeStatement,
	BucketOtherIndicators,
}

// bucketLabels maps buckets to their human-readable export labels.
var bucketLabels = map[Bucket]string{
	BucketAssetsCurrent:         "Assets (current)",
	BucketAssetsNonCurrent:      "Assets (non-current)",
	BucketLiabilitiesCurrent:    "Liabilities (current)",
	BucketLiabilitiesNonCurrent: "Liabilities (non-current)",
	BucketEquity:                "Equity",
	BucketIncomeStatement:       "Income Statement Items",
	BucketOtherIndicators:       "Other Indicators",
}

// Valid reports whether b is a member of the closed taxonomy.
func (b Bucket) Valid() bool {
	_, ok := bucketLabels[b]
	return ok
}

// Label returns the human-readable name used in CSV/XLSX exports.
func (b Bucket) Label() string {
	if label, ok := bucketLabels[b]; ok {
		return label
	}
	return string(b)
}

// SkipPolicy controls what the extraction orchestrator does with a chunk
// whose retry budget is exhausted.
type SkipPolicy string

const (
	// SkipPolicyContinue records the chunk as skipped and keeps going.
	SkipPolicyContinue SkipPolicy = "skip"
	// SkipPolicyAbort fails the whole run on the first exhausted chunk.
	SkipPolicyAbort SkipPolicy = "abort"
)

// Valid reports whether p is a recognized skip policy.
func (p SkipPolicy) Valid() bool {
	return p == SkipPolicyContinue || p == SkipPolicyAbort
}
