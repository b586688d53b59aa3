package convert

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"cardsync/internal/model"
)

var nonSKUChars = regexp.MustCompile(`[^a-zA-Z0-9-]`)

const maxTags = 20

// ConvertCard maps one extracted card to a destination import row. Total:
// malformed or missing fields degrade to defaults, never to an error.
func ConvertCard(c model.Card) model.ImportRow {
	name := CleanText(c.Description.Title)
	if name == "" {
		name = "Untitled"
	}

	status := "draft"
	if c.Listed {
		status = "live"
	}

	sku := MakeSKU(c.PdpURL)

	return model.ImportRow{
		ExternalRef:   Truncate(c.ID, 50),
		Name:          Truncate(name, 255),
		SKU:           sku,
		Slug:          sku, // slug and sku intentionally collide
		CommodityType: "physical",
		Description:   Truncate(CleanText(c.Description.Description), 1000),
		Status:        status,
		Tags:          ProcessTags(c.Classification.Tags),
		MainImageID:   "", // filled after image upload by external_ref join
		Price:         PriceField(c.StandardCardPrice),
	}
}

// CleanText normalizes embedded control characters so every field is safe
// inside a quoted CSV cell. Quote escaping is the writer's job.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	r := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ")
	return strings.TrimSpace(r.Replace(s))
}

// MakeSKU derives the SKU (and slug) from the product page path.
func MakeSKU(pdpURL string) string {
	if pdpURL == "" {
		return ""
	}
	sku := nonSKUChars.ReplaceAllString(pdpURL, "")
	return Truncate(strings.Trim(sku, "-"), 64)
}

// ProcessTags keeps at most the first 20 tags, sanitizes each to
// alphanumerics and hyphens, and deduplicates preserving first-seen order.
func ProcessTags(tags []string) string {
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}

	var clean []string
	seen := make(map[string]bool)
	for _, tag := range tags {
		t := nonSKUChars.ReplaceAllString(strings.ReplaceAll(tag, " ", "-"), "")
		if t == "" || seen[t] {
			continue
		}
		clean = append(clean, t)
		seen[t] = true
	}

	return strings.Join(clean, ",")
}

// PriceToMinor parses a scraped price label ("£3.69") into integer minor
// units, truncating fractional pence.
func PriceToMinor(price string) (int64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(price, "£", ""))
	if s == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return d.Mul(decimal.NewFromInt(100)).IntPart(), true
}

// PriceField is PriceToMinor for the CSV: unparseable prices become an empty
// field rather than a failure.
func PriceField(price string) string {
	minor, ok := PriceToMinor(price)
	if !ok {
		return ""
	}
	return strconv.FormatInt(minor, 10)
}

// Truncate limits a string to n code points.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
