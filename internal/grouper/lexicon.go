package grouper

import "finstmt/internal/domain"

// hintAliases maps normalized category hints to buckets. Hints are the
// model's most direct classification signal, so an exact alias match
// always wins over section and keyword rules.
var hintAliases = buildHintAliases()

func buildHintAliases() map[string]domain.Bucket {
	aliases := map[string]domain.Bucket{
		"current assets":          domain.BucketAssetsCurrent,
		"current asset":           domain.BucketAssetsCurrent,
		"assets current":          domain.BucketAssetsCurrent,
		"short-term assets":       domain.BucketAssetsCurrent,
		"non-current assets":      domain.BucketAssetsNonCurrent,
		"non-current asset":       domain.BucketAssetsNonCurrent,
		"noncurrent assets":       domain.BucketAssetsNonCurrent,
		"noncurrent asset":        domain.BucketAssetsNonCurrent,
		"fixed assets":            domain.BucketAssetsNonCurrent,
		"fixed asset":             domain.BucketAssetsNonCurrent,
		"long-term assets":        domain.BucketAssetsNonCurrent,
		"current liabilities":     domain.BucketLiabilitiesCurrent,
		"current liability":       domain.BucketLiabilitiesCurrent,
		"short-term liabilities":  domain.BucketLiabilitiesCurrent,
		"non-current liabilities": domain.BucketLiabilitiesNonCurrent,
		"non-current liability":   domain.BucketLiabilitiesNonCurrent,
		"noncurrent liabilities":  domain.BucketLiabilitiesNonCurrent,
		"long-term liabilities":   domain.BucketLiabilitiesNonCurrent,
		"equity":                  domain.BucketEquity,
		"shareholders equity":     domain.BucketEquity,
		"shareholders' equity":    domain.BucketEquity,
		"stockholders equity":     domain.BucketEquity,
		"owners equity":           domain.BucketEquity,
		"income statement":        domain.BucketIncomeStatement,
		"income statement item":   domain.BucketIncomeStatement,
		"income statement items":  domain.BucketIncomeStatement,
		"profit or loss":          domain.BucketIncomeStatement,
		"profit and loss":         domain.BucketIncomeStatement,
		"other":                   domain.BucketOtherIndicators,
		"other indicator":         domain.BucketOtherIndicators,
		"other indicators":        domain.BucketOtherIndicators,
		"cash flow":               domain.BucketOtherIndicators,
		"cash flows":              domain.BucketOtherIndicators,
	}
	// The bucket identifiers and export labels are aliases of themselves,
	// so records round-trip through re-grouping unchanged.
	for _, b := range domain.AllBuckets {
		aliases[NormalizeKey(string(b))] = b
		aliases[NormalizeKey(b.Label())] = b
	}
	return aliases
}

// sectionRules route items by their source statement section. Checked
// in order: "non-current" needles must precede their "current"
// prefixes. Cash-flow items land in OtherIndicators; balance-sheet
// sections that don't split assets from liabilities fall through to the
// keyword lexicon.
var sectionRules = []struct {
	needles []string
	bucket  domain.Bucket
}{
	{[]string{"non-current asset", "noncurrent asset"}, domain.BucketAssetsNonCurrent},
	{[]string{"current asset"}, domain.BucketAssetsCurrent},
	{[]string{"non-current liabilit", "noncurrent liabilit"}, domain.BucketLiabilitiesNonCurrent},
	{[]string{"current liabilit"}, domain.BucketLiabilitiesCurrent},
	{[]string{"changes in equity", "perubahan ekuitas"}, domain.BucketEquity},
	{[]string{"profit or loss", "statement of income", "comprehensive income", "laba rugi"}, domain.BucketIncomeStatement},
	{[]string{"cash flow", "arus kas"}, domain.BucketOtherIndicators},
}

// keywordLexicon routes by item name as the last resort before the
// catch-all. Balance-sheet buckets come first so names like "deferred
// tax asset" resolve there rather than on their "tax" substring.
var keywordLexicon = []struct {
	bucket   domain.Bucket
	keywords []string
}{
	{domain.BucketAssetsCurrent, []string{
		"cash", "receivable", "inventor", "prepaid", "short-term investment", "marketable securit",
	}},
	{domain.BucketAssetsNonCurrent, []string{
		"property", "plant", "equipment", "intangible", "goodwill",
		"deferred tax asset", "long-term investment", "right-of-use",
	}},
	{domain.BucketLiabilitiesCurrent, []string{
		"payable", "accrued", "current portion", "short-term borrowing",
		"short-term loan", "unearned revenue",
	}},
	{domain.BucketLiabilitiesNonCurrent, []string{
		"long-term debt", "long-term borrowing", "long-term loan", "bond",
		"debenture", "deferred tax liabilit", "lease liabilit", "pension", "provision",
	}},
	{domain.BucketEquity, []string{
		"share capital", "capital stock", "retained earnings", "treasury",
		"additional paid-in", "share premium", "reserve", "non-controlling interest", "equity",
	}},
	{domain.BucketIncomeStatement, []string{
		"revenue", "sales", "cost of", "gross profit", "operating profit",
		"operating expense", "expense", "earnings per share", "ebitda",
		"finance cost", "depreciation", "amortization", "income", "profit", "loss", "tax",
	}},
}
