package pricebook

import (
	"github.com/shopspring/decimal"

	"cardsync/internal/convert"
	"cardsync/internal/model"
)

const (
	ExternalRef = "thortful-standard-pb"
	name        = "Thortful Standard Pricing (USD)"
	description = "Standard pricing for greeting cards imported from thortful.com"

	currency = "USD"
)

// Header is the single pricebook record; it must be the first line of the
// batch so every price line can reference it.
type Header struct {
	Data HeaderData `json:"data"`
}

type HeaderData struct {
	Type       string           `json:"type"`
	Attributes HeaderAttributes `json:"attributes"`
}

type HeaderAttributes struct {
	ExternalRef string `json:"external_ref"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PriceLine is one product price record.
type PriceLine struct {
	Data PriceData `json:"data"`
}

type PriceData struct {
	Type                 string          `json:"type"`
	PricebookExternalRef string          `json:"pricebook_external_ref"`
	Attributes           PriceAttributes `json:"attributes"`
}

type PriceAttributes struct {
	ExternalRef string              `json:"external_ref"`
	Currencies  map[string]Currency `json:"currencies"`
	SKU         string              `json:"sku"`
}

type Currency struct {
	Amount      int64 `json:"amount"`
	IncludesTax bool  `json:"includes_tax"`
}

type Builder struct {
	// Static source->destination conversion applied to minor units.
	FXRate float64

	// Fallback minor-unit price for products without a scraped price.
	DefaultPriceMinor int64
}

// Build emits the pricebook header followed by one price line per product
// with a derivable SKU, in input order. Products with neither a pdp_url nor
// an id are skipped outright.
func (b *Builder) Build(cards []model.Card) []any {
	records := []any{Header{
		Data: HeaderData{
			Type: "pricebook",
			Attributes: HeaderAttributes{
				ExternalRef: ExternalRef,
				Name:        name,
				Description: description,
			},
		},
	}}

	for _, c := range cards {
		sku := convert.MakeSKU(c.PdpURL)
		if sku == "" {
			sku = c.ID
		}
		if sku == "" {
			continue
		}

		ref := c.ID
		if ref == "" {
			ref = sku
		}

		records = append(records, PriceLine{
			Data: PriceData{
				Type:                 "product-price",
				PricebookExternalRef: ExternalRef,
				Attributes: PriceAttributes{
					ExternalRef: "price-" + ref,
					Currencies: map[string]Currency{
						currency: {Amount: b.convertedPrice(c), IncludesTax: true},
					},
					SKU: sku,
				},
			},
		})
	}

	return records
}

func (b *Builder) convertedPrice(c model.Card) int64 {
	minor, ok := convert.PriceToMinor(c.StandardCardPrice)
	if !ok {
		minor = b.DefaultPriceMinor
	}
	return decimal.NewFromInt(minor).
		Mul(decimal.NewFromFloat(b.FXRate)).
		IntPart()
}
