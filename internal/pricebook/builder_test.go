package pricebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardsync/internal/model"
)

func newBuilder() *Builder {
	return &Builder{FXRate: 1.27, DefaultPriceMinor: 369}
}

func TestBuildHeaderFirst(t *testing.T) {
	cards := []model.Card{
		{ID: "1", PdpURL: "card-one", StandardCardPrice: "£3.69"},
		{ID: "2", PdpURL: "card-two"},
		{ID: "3", PdpURL: "card-three"},
	}

	records := newBuilder().Build(cards)

	require.Len(t, records, 4, "header plus one line per product")
	header, ok := records[0].(Header)
	require.True(t, ok, "header record at index 0")
	assert.Equal(t, "pricebook", header.Data.Type)
	assert.Equal(t, ExternalRef, header.Data.Attributes.ExternalRef)

	for i, rec := range records[1:] {
		line, ok := rec.(PriceLine)
		require.True(t, ok)
		assert.Equal(t, "product-price", line.Data.Type)
		assert.Equal(t, ExternalRef, line.Data.PricebookExternalRef)
		assert.Equal(t, "price-"+cards[i].ID, line.Data.Attributes.ExternalRef)
	}
}

func TestBuildSkipsUnidentifiableProducts(t *testing.T) {
	cards := []model.Card{
		{ID: "1", PdpURL: "card-one"},
		{}, // neither pdp_url nor id: excluded, not blanked
		{ID: "3"},
	}

	records := newBuilder().Build(cards)

	require.Len(t, records, 3)
	assert.Equal(t, "card-one", records[1].(PriceLine).Data.Attributes.SKU)
	assert.Equal(t, "3", records[2].(PriceLine).Data.Attributes.SKU, "id is the sku fallback")
}

func TestBuildPriceConversion(t *testing.T) {
	tests := []struct {
		name  string
		price string
		want  int64
	}{
		{"scraped price converted", "£3.69", 468},   // 369 * 1.27 = 468.63, truncated
		{"default when missing", "", 468},           // 369 * 1.27
		{"unparseable falls back", "free", 468},     // default again
		{"larger amount", "£10.00", 1270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := newBuilder().Build([]model.Card{
				{ID: "1", PdpURL: "c", StandardCardPrice: tt.price},
			})
			require.Len(t, records, 2)

			line := records[1].(PriceLine)
			cur, ok := line.Data.Attributes.Currencies["USD"]
			require.True(t, ok)
			assert.Equal(t, tt.want, cur.Amount)
			assert.True(t, cur.IncludesTax)
		})
	}
}

func TestBuildEmptyInput(t *testing.T) {
	records := newBuilder().Build(nil)
	require.Len(t, records, 1, "the header is always emitted")
	_, ok := records[0].(Header)
	assert.True(t, ok)
}
