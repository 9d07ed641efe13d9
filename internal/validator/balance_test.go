package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finstmt/internal/domain"
)

func num(v float64) *float64 { return &v }

func item(name string, current *float64) domain.GroupedLineItem {
	return domain.GroupedLineItem{RawLineItem: domain.RawLineItem{Name: name, CurrentYear: current}}
}

func groupedRecord(buckets map[domain.Bucket][]domain.GroupedLineItem) *domain.GroupedRecord {
	return &domain.GroupedRecord{Buckets: buckets}
}

func TestValidateBalance_Balanced(t *testing.T) {
	rec := groupedRecord(map[domain.Bucket][]domain.GroupedLineItem{
		domain.BucketAssetsCurrent:    {item("Cash", num(100))},
		domain.BucketAssetsNonCurrent: {item("Equipment", num(50))},
		domain.BucketLiabilitiesCurrent: {
			item("Trade payables", num(30)),
		},
		domain.BucketEquity: {item("Share capital", num(120))},
	})

	report := ValidateBalance(rec, 0.05)

	assert.Equal(t, 150.0, report.TotalAssets)
	assert.Equal(t, 30.0, report.TotalLiabilities)
	assert.Equal(t, 120.0, report.TotalEquity)
	assert.Equal(t, 0.0, report.Difference)
	assert.Equal(t, 7.5, report.Tolerance)
	assert.True(t, report.Balanced)
	assert.Zero(t, report.MissingCount)
	assert.Zero(t, report.NegativeCount)
}

func TestValidateBalance_WithinTolerance(t *testing.T) {
	// Difference of 5 against assets of 150 sits inside the 5% band.
	rec := groupedRecord(map[domain.Bucket][]domain.GroupedLineItem{
		domain.BucketAssetsCurrent:      {item("Cash", num(150))},
		domain.BucketLiabilitiesCurrent: {item("Payables", num(30))},
		domain.BucketEquity:             {item("Equity", num(115))},
	})

	report := ValidateBalance(rec, 0.05)

	assert.Equal(t, 5.0, report.Difference)
	assert.Equal(t, 7.5, report.Tolerance)
	assert.True(t, report.Balanced)
}

func TestValidateBalance_OutOfBalance(t *testing.T) {
	rec := groupedRecord(map[domain.Bucket][]domain.GroupedLineItem{
		domain.BucketAssetsCurrent:      {item("Cash", num(150))},
		domain.BucketLiabilitiesCurrent: {item("Payables", num(30))},
		domain.BucketEquity:             {item("Equity", num(100))},
	})

	report := ValidateBalance(rec, 0.05)

	assert.Equal(t, 20.0, report.Difference)
	assert.False(t, report.Balanced)
}

func TestValidateBalance_DifferenceIsAbsolute(t *testing.T) {
	// Liabilities plus equity exceed assets; the report still carries
	// the magnitude of the gap, never a signed value.
	rec := groupedRecord(map[domain.Bucket][]domain.GroupedLineItem{
		domain.BucketAssetsCurrent: {item("Cash", num(100))},
		domain.BucketEquity:        {item("Equity", num(130))},
	})

	report := ValidateBalance(rec, 0.05)

	assert.Equal(t, 30.0, report.Difference)
	assert.False(t, report.Balanced)
}

func TestValidateBalance_MissingAndNegativeValues(t *testing.T) {
	rec := groupedRecord(map[domain.Bucket][]domain.GroupedLineItem{
		domain.BucketAssetsCurrent: {
			item("Cash", num(100)),
			item("Inventories", nil),
		},
		domain.BucketIncomeStatement: {
			item("Net loss", num(-25)),
		},
		domain.BucketOtherIndicators: {
			item("Headcount", nil),
		},
	})

	report := ValidateBalance(rec, 0.05)

	assert.Equal(t, 2, report.MissingCount)
	assert.Equal(t, []string{"Assets (current): Inventories", "Other Indicators: Headcount"}, report.MissingValues)
	assert.Equal(t, 1, report.NegativeCount)
	assert.Equal(t, []string{"Income Statement Items: Net loss"}, report.NegativeValues)

	// Missing values never read as zero and never enter the totals.
	assert.Equal(t, 100.0, report.TotalAssets)
}

func TestValidateBalance_IncomeStatementStaysOutOfIdentity(t *testing.T) {
	rec := groupedRecord(map[domain.Bucket][]domain.GroupedLineItem{
		domain.BucketAssetsCurrent:   {item("Cash", num(100))},
		domain.BucketEquity:          {item("Equity", num(100))},
		domain.BucketIncomeStatement: {item("Revenue", num(9999))},
		domain.BucketOtherIndicators: {item("Current ratio", num(2))},
	})

	report := ValidateBalance(rec, 0.05)

	require.True(t, report.Balanced)
	assert.Equal(t, 100.0, report.TotalAssets)
}

func TestValidateBalance_EmptyRecord(t *testing.T) {
	report := ValidateBalance(groupedRecord(nil), 0.05)

	assert.Zero(t, report.TotalAssets)
	assert.Zero(t, report.Difference)
	assert.Zero(t, report.Tolerance)
	assert.True(t, report.Balanced)
}
