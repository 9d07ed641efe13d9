package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finstmt/internal/domain"
)

func findItem(t *testing.T, items []domain.RawLineItem, name string) domain.RawLineItem {
	t.Helper()
	for _, it := range items {
		if it.Name == name {
			return it
		}
	}
	t.Fatalf("no item named %q in %v", name, items)
	return domain.RawLineItem{}
}

func TestParseLineItems_Array(t *testing.T) {
	doc := `[
		{"name": "Cash and equivalents", "current_year": 100.5, "previous_year": 90, "category_hint": "Current Assets"},
		{"name": "Trade receivables", "current_year": 200}
	]`

	items, err := ParseLineItems([]byte(doc))
	require.NoError(t, err)
	require.Len(t, items, 2)

	cash := findItem(t, items, "Cash and equivalents")
	require.NotNil(t, cash.CurrentYear)
	assert.Equal(t, 100.5, *cash.CurrentYear)
	require.NotNil(t, cash.PreviousYear)
	assert.Equal(t, 90.0, *cash.PreviousYear)
	assert.Equal(t, "Current Assets", cash.CategoryHint)

	recv := findItem(t, items, "Trade receivables")
	assert.Nil(t, recv.PreviousYear)
	assert.Empty(t, recv.CategoryHint)
}

func TestParseLineItems_ObjectKeyedByName(t *testing.T) {
	doc := `{
		"Total assets": {"current_year": 1500, "previous_year": 1400},
		"Total equity": {"current_year": 900}
	}`

	items, err := ParseLineItems([]byte(doc))
	require.NoError(t, err)
	require.Len(t, items, 2)

	total := findItem(t, items, "Total assets")
	require.NotNil(t, total.CurrentYear)
	assert.Equal(t, 1500.0, *total.CurrentYear)
}

func TestParseLineItems_NestedWrappers(t *testing.T) {
	doc := `{
		"balance_sheet": {
			"items": [{"name": "Inventories", "current_year": 300}]
		},
		"income_statement": {
			"Revenue": {"current_year": 2000, "category_hint": "Income Statement"}
		}
	}`

	items, err := ParseLineItems([]byte(doc))
	require.NoError(t, err)
	require.Len(t, items, 2)

	findItem(t, items, "Inventories")
	rev := findItem(t, items, "Revenue")
	assert.Equal(t, "Income Statement", rev.CategoryHint)
}

func TestParseLineItems_CoercesStringNumbers(t *testing.T) {
	doc := `[{"name": "Revenue", "current_year": "2,345.5", "previous_year": "n/a"}]`

	items, err := ParseLineItems([]byte(doc))
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NotNil(t, items[0].CurrentYear)
	assert.Equal(t, 2345.5, *items[0].CurrentYear)
	// Unparseable year values read as extraction misses, not zeros.
	assert.Nil(t, items[0].PreviousYear)
}

func TestParseLineItems_NullYears(t *testing.T) {
	doc := `[{"name": "Goodwill", "current_year": null, "previous_year": 50}]`

	items, err := ParseLineItems([]byte(doc))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].CurrentYear)
	require.NotNil(t, items[0].PreviousYear)
}

func TestParseLineItems_EmptyArrayIsNotAnError(t *testing.T) {
	items, err := ParseLineItems([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestParseLineItems_AllEntriesInvalid(t *testing.T) {
	// Item-shaped entries with no recoverable name fail the field
	// contract; a document yielding only such entries is malformed.
	doc := `[{"name": "", "current_year": 10}, {"name": "   ", "current_year": 20}]`

	_, err := ParseLineItems([]byte(doc))
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestParseLineItems_InvalidJSON(t *testing.T) {
	_, err := ParseLineItems([]byte(`{"name":`))
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}
