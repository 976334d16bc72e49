package classify

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		label string
		want  Category
	}{
		{"FIN-DB-Readers", ReadOnly},
		{"FIN-DB-Writers", DataModification},
		{"IT-Admins", Administrative},
		{"Trading-Platform-Admin", Administrative},
		{"Trading-Risk-Viewers", ReadOnly},
		{"IT-Database", Database},
		{"IT-AppSupport", Application},
		{"Trading-Bloomberg", MarketData},
		{"Trading-Reuters", MarketData},
		{"FIN-Reporting", Reporting},
		{"Compliance-Team", Compliance},
		{"Regulatory-Auditors", Compliance},
		{"Trading-Platform-Basic", Trading},
		{"FIN-SAP-Basic", Financial},
		{"IT-Servers", Technical},
		{"Tech-Leads", Technical},
		{"Marketing", General},
		{"", General},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.label))
		})
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, Classify("it-admins"), Classify("IT-ADMINS"))
	assert.Equal(t, Administrative, Classify("DOMAIN ADMINS"))
}

func TestCategoriesOrder(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 12)
	assert.Equal(t, Administrative, cats[0])
	assert.Equal(t, Application, cats[4])
	assert.Equal(t, General, cats[len(cats)-1])
}

func TestDescribe(t *testing.T) {
	for _, c := range Categories() {
		assert.NotEqual(t, fallbackDescription, Describe(c), "category %s", c)
	}
	assert.Equal(t, "View-only access to data and applications", Describe(ReadOnly))
	assert.Equal(t, fallbackDescription, Describe(Category("Unknown")))
}

func TestCategorizeOrder(t *testing.T) {
	b := Categorize([]string{"FIN-Analysts", "FIN-DB-Readers", "  ", "FIN-Treasury", "FIN-Reports-Readers"})

	assert.Equal(t, []Category{Financial, ReadOnly}, b.Keys())
	assert.Equal(t, []string{"FIN-Analysts", "FIN-Treasury"}, b.Get(Financial))
	assert.Equal(t, []string{"FIN-DB-Readers", "FIN-Reports-Readers"}, b.Get(ReadOnly))
	assert.Equal(t, 4, b.Total())
	assert.Nil(t, b.Get(Trading))
}

func TestCategorizeKeepsLabelsVerbatim(t *testing.T) {
	b := Categorize([]string{" FIN-DB ", "\tIT-Admins", "Reporting  "})

	assert.Equal(t, []string{" FIN-DB "}, b.Get(Database))
	assert.Equal(t, []string{"\tIT-Admins"}, b.Get(Administrative))
	assert.Equal(t, []string{"Reporting  "}, b.Get(Reporting))
}

func TestBucketsJSON(t *testing.T) {
	b := Categorize([]string{"IT-Admins", "IT-Servers"})
	data, err := json.Marshal(b)
	require.NoError(t, err)

	var got []Bucket
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, Administrative, got[0].Category)
	assert.Equal(t, Technical, got[1].Category)
	assert.Equal(t, []string{"IT-Servers"}, got[1].Groups)
}

func TestClassifierProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	known := Categories()

	properties.Property("classification is deterministic and closed", prop.ForAll(
		func(label string) bool {
			got := Classify(label)
			return got == Classify(label) && lo.Contains(known, got)
		},
		gen.AnyString(),
	))

	properties.Property("admin keyword always wins", prop.ForAll(
		func(prefix, suffix string) bool {
			return Classify(prefix+"Admin"+suffix) == Administrative
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("bucket contents are exactly the non-blank inputs", prop.ForAll(
		func(labels []string) bool {
			b := Categorize(labels)
			var union []string
			for _, c := range b.Keys() {
				union = append(union, b.Get(c)...)
			}
			nonBlank := lo.Filter(labels, func(l string, _ int) bool {
				return strings.TrimSpace(l) != ""
			})
			return assert.ObjectsAreEqual(lo.CountValues(nonBlank), lo.CountValues(union))
		},
		gen.SliceOf(gen.OneGenOf(gen.AlphaString(), gen.Const(" FIN-DB "), gen.Const("  "), gen.Const("IT-Admins\t"))),
	))

	properties.Property("every non-blank label lands in exactly one bucket", prop.ForAll(
		func(labels []string) bool {
			b := Categorize(labels)
			nonBlank := lo.Filter(labels, func(l string, _ int) bool {
				return strings.TrimSpace(l) != ""
			})
			if b.Total() != len(nonBlank) {
				return false
			}
			seen := 0
			for _, c := range b.Keys() {
				for _, l := range b.Get(c) {
					if Classify(l) != c {
						return false
					}
					seen++
				}
			}
			return seen == len(nonBlank) && len(lo.Uniq(b.Keys())) == b.Len()
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
