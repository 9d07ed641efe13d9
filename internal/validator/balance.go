// Package validator checks grouped records for numeric plausibility:
// the balance-sheet identity on one hand, agreement with a baseline
// record on the other. All checks are pure functions over records;
// reports are derived fresh on every run.
package validator

import (
	"fmt"
	"math"

	"finstmt/internal/domain"
)

// ValidateBalance recomputes bucket totals from the record's items and
// checks Assets = Liabilities + Equity. The comparison tolerance is
// toleranceRatio of total assets, so small documents are held to
// proportionally tighter bounds. Missing and negative current-year
// values are counted and named but do not fail the check by themselves.
func ValidateBalance(rec *domain.GroupedRecord, toleranceRatio float64) domain.BalanceReport {
	var report domain.BalanceReport
	totals := make(map[domain.Bucket]float64, len(domain.AllBuckets))

	for _, b := range domain.AllBuckets {
		for _, item := range rec.Buckets[b] {
			if item.CurrentYear == nil {
				report.MissingCount++
				report.MissingValues = append(report.MissingValues, qualify(b, item.Name))
				continue
			}
			if *item.CurrentYear < 0 {
				report.NegativeCount++
				report.NegativeValues = append(report.NegativeValues, qualify(b, item.Name))
			}
			totals[b] += *item.CurrentYear
		}
	}

	report.TotalAssets = totals[domain.BucketAssetsCurrent] + totals[domain.BucketAssetsNonCurrent]
	report.TotalLiabilities = totals[domain.BucketLiabilitiesCurrent] + totals[domain.BucketLiabilitiesNonCurrent]
	report.TotalEquity = totals[domain.BucketEquity]
	report.Difference = math.Abs(report.TotalAssets - (report.TotalLiabilities + report.TotalEquity))
	report.Tolerance = toleranceRatio * math.Abs(report.TotalAssets)
	report.Balanced = report.Difference <= report.Tolerance
	return report
}

func qualify(b domain.Bucket, name string) string {
	return fmt.Sprintf("%s: %s", b.Label(), name)
}
