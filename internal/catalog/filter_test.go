package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vedacart/internal/dto"
)

func dptr(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

func browseFixture() []dto.ProductSummary {
	return []dto.ProductSummary{
		{ID: "1", Name: "Tulsi Drops", ProductType: "product", Category: "Herbs", Subcategory: "Drops"},
		{ID: "2", Name: "Ashwagandha Capsules", ProductType: "product", Category: "Herbs", Subcategory: "Capsules"},
		{ID: "3", Name: "Joint Care Kit", ProductType: "kit", Category: "Wellness Kits", Subcategory: "Joint Care"},
		{ID: "4", Name: "Brahmi Capsules", ProductType: "product", Category: "Herbs", Subcategory: "Capsules"},
		{ID: "5", Name: "Sleep Kit", ProductType: "kit", Category: "Wellness Kits", Subcategory: "Sleep"},
	}
}

func ids(list []dto.ProductSummary) []string {
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = p.ID
	}
	return out
}

func TestFilterWildcardsReturnEverything(t *testing.T) {
	list := browseFixture()

	assert.Equal(t, ids(list), ids(Filter(list, Selection{})))
	assert.Equal(t, ids(list), ids(Filter(list, Selection{Type: All, Category: All, Subcategory: All})))
}

func TestFilterPredicatesAreANDed(t *testing.T) {
	list := browseFixture()

	got := Filter(list, Selection{Type: "product", Category: "Herbs", Subcategory: "Capsules"})
	assert.Equal(t, []string{"2", "4"}, ids(got))

	got = Filter(list, Selection{Type: "kit", Category: "Herbs"})
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestFilterPreservesInputOrder(t *testing.T) {
	got := Filter(browseFixture(), Selection{Category: "Herbs"})
	assert.Equal(t, []string{"1", "2", "4"}, ids(got))
}

func TestCategoriesAreDistinctInFirstSeenOrder(t *testing.T) {
	assert.Equal(t, []string{"Herbs", "Wellness Kits"}, Categories(browseFixture()))
}

func TestSubcategoriesRequireConcreteCategory(t *testing.T) {
	list := browseFixture()

	assert.Equal(t, []string{}, Subcategories(list, All))
	assert.Equal(t, []string{}, Subcategories(list, ""))
	assert.Equal(t, []string{"Drops", "Capsules"}, Subcategories(list, "Herbs"))
	assert.Equal(t, []string{"Joint Care", "Sleep"}, Subcategories(list, "Wellness Kits"))
}

func TestSetCategoryResetsSubcategory(t *testing.T) {
	sel := Selection{Type: "product", Category: "Herbs", Subcategory: "Capsules"}
	sel.SetCategory("Wellness Kits")

	assert.Equal(t, "Wellness Kits", sel.Category)
	assert.Equal(t, All, sel.Subcategory)
	assert.Equal(t, "product", sel.Type)
}

func TestDisplayPricePrefersFirstSizePrice(t *testing.T) {
	p := dto.ProductSummary{
		Price: dptr(999),
		SizePrices: []dto.SizePricePayload{
			{Size: "30 ml", Price: decimal.NewFromInt(199)},
			{Size: "60 ml", Price: decimal.NewFromInt(349)},
		},
	}

	price, ok := DisplayPrice(p)
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromInt(199)))
}

func TestDisplayPriceFallsBackToScalar(t *testing.T) {
	price, ok := DisplayPrice(dto.ProductSummary{Price: dptr(1299)})
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromInt(1299)))

	_, ok = DisplayPrice(dto.ProductSummary{})
	assert.False(t, ok)
}
