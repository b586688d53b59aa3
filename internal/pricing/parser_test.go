package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPricingLineScan(t *testing.T) {
	html := `<html><body><div>
Send a card they'll love
Standard Card (A5)
£3.69
Large Card (A4)
was £6.00
£5.49
</div></body></html>`

	pricing := ExtractPricing(html)
	require.NotNil(t, pricing)
	assert.Equal(t, "£3.69", pricing["Standard Card (A5)"])
	assert.Equal(t, "£5.49", pricing["Large Card (A4)"], "first line starting with the symbol wins")
}

func TestExtractPricingWindowBound(t *testing.T) {
	// The price sits more than 4 lines below the label with unrelated text
	// in between, so both the line scan and the regex fallback miss it.
	html := `<html><body><div>
Standard Card (A5)
free delivery
on orders
over a tenner
more blurb
even more
£3.69
</div></body></html>`

	pricing := ExtractPricing(html)
	assert.NotContains(t, pricing, "Standard Card (A5)")
}

func TestExtractPricingRegexFallback(t *testing.T) {
	// Only whitespace between label and amount, but spread over more lines
	// than the scan window covers: layer 2 fills the gap layer 1 left.
	html := "<html><body><div>\nStandard Card (A5)\n\n\n\n\n\n£4.99\n</div></body></html>"

	pricing := ExtractPricing(html)
	require.NotNil(t, pricing)
	assert.Equal(t, "£4.99", pricing["Standard Card (A5)"])
}

func TestExtractPricingNoMatch(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"no labels at all", "<html><body><p>Nothing for sale here</p></body></html>"},
		{"label without amount", "<html><body><div>\nStandard Card (A5)\nsold out\n</div></body></html>"},
		{"symbol without digits", "<html><body><div>\nStandard Card (A5)\n£TBC\n</div></body></html>"},
		{"empty document", ""},
		{"not even html", "{\"some\":\"json\"}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, ExtractPricing(tt.html))
		})
	}
}

func TestExtractPricingLabelMustMatchExactly(t *testing.T) {
	html := `<html><body><div>
Standard Card (A5) and more
£3.69
</div></body></html>`

	// The line scan needs an exact label line; the regex layer still anchors
	// on the label text, but nothing but whitespace may precede the amount.
	pricing := ExtractPricing(html)
	assert.NotContains(t, pricing, "Standard Card (A5)")
}
