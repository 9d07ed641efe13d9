package validator

import (
	"math"
	"sort"

	"finstmt/internal/domain"
)

// DefaultEpsilon is the equality threshold for the accuracy metric:
// values within it of the baseline count as exact matches.
const DefaultEpsilon = 1e-9

// Compare diffs a grouped record against a baseline grouped record,
// typically a hand-verified extraction of the same document. Fields are
// matched by normalized name across all buckets; the numeric metrics
// run over every year value present on both sides, so one field can
// contribute up to two samples. MAPE excludes samples whose baseline
// value is zero and reports how many remained.
func Compare(ours, baseline *domain.GroupedRecord, epsilon float64) domain.ComparisonReport {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	ourFields := fieldValues(ours)
	baseFields := fieldValues(baseline)

	report := domain.ComparisonReport{
		FieldCountOurs:     len(ourFields),
		FieldCountBaseline: len(baseFields),
	}

	union := make(map[string]bool, len(ourFields)+len(baseFields))
	var got, want []float64
	for key, our := range ourFields {
		union[key] = true
		base, ok := baseFields[key]
		if !ok {
			report.OnlyOurs = append(report.OnlyOurs, key)
			continue
		}
		report.OverlapFields = append(report.OverlapFields, key)
		if our.CurrentYear != nil && base.CurrentYear != nil {
			got = append(got, *our.CurrentYear)
			want = append(want, *base.CurrentYear)
		}
		if our.PreviousYear != nil && base.PreviousYear != nil {
			got = append(got, *our.PreviousYear)
			want = append(want, *base.PreviousYear)
		}
	}
	for key := range baseFields {
		if !union[key] {
			union[key] = true
			report.OnlyBaseline = append(report.OnlyBaseline, key)
		}
	}
	sort.Strings(report.OverlapFields)
	sort.Strings(report.OnlyOurs)
	sort.Strings(report.OnlyBaseline)

	report.OverlapCount = len(report.OverlapFields)
	if len(union) > 0 {
		report.MissingRate = 1 - float64(report.OverlapCount)/float64(len(union))
	}
	report.Metrics = computeMetrics(got, want, epsilon)
	return report
}

// fieldValues flattens a record into its normalized-name field map.
// When the same name was extracted twice the first occurrence in
// canonical bucket order wins.
func fieldValues(rec *domain.GroupedRecord) map[string]domain.GroupedLineItem {
	fields := make(map[string]domain.GroupedLineItem)
	for _, item := range rec.Items() {
		if _, ok := fields[item.Key]; !ok {
			fields[item.Key] = item
		}
	}
	return fields
}

func computeMetrics(got, want []float64, epsilon float64) domain.ComparisonMetrics {
	m := domain.ComparisonMetrics{Samples: len(got)}
	if len(got) == 0 {
		return m
	}

	var exact int
	var absSum, sqSum, apeSum, wantSum float64
	for i := range got {
		diff := got[i] - want[i]
		if math.Abs(diff) <= epsilon {
			exact++
		}
		absSum += math.Abs(diff)
		sqSum += diff * diff
		wantSum += want[i]
		if want[i] != 0 {
			apeSum += math.Abs(diff / want[i])
			m.MAPESamples++
		}
	}

	n := float64(len(got))
	m.AccuracyPct = 100 * float64(exact) / n
	m.MAE = absSum / n
	m.RMSE = math.Sqrt(sqSum / n)
	if m.MAPESamples > 0 {
		m.MAPEPct = 100 * apeSum / float64(m.MAPESamples)
	}

	mean := wantSum / n
	var ssTot float64
	for _, w := range want {
		ssTot += (w - mean) * (w - mean)
	}
	switch {
	case ssTot > 0:
		m.R2 = 1 - sqSum/ssTot
	case sqSum == 0:
		// Constant baseline matched exactly.
		m.R2 = 1
	}
	return m
}
