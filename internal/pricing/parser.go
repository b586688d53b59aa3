package pricing

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

const (
	StandardTier = "Standard Card (A5)"
	LargeTier    = "Large Card (A4)"

	currencySymbol = "£"
)

var tierLabels = []string{StandardTier, LargeTier}

// The page markup is not guaranteed stable, so each tier label runs through a
// prioritized chain of extraction strategies over the visible text: a
// position-based line scan first, a regex fallback for labels it missed.
type strategy func(lines []string, text string, label string) (string, bool)

var strategies = []strategy{scanLines, matchPattern}

// ExtractPricing pulls the tier label -> price mapping out of a product
// detail page. Returns nil when nothing was found; never errors on malformed
// markup.
func ExtractPricing(html string) map[string]string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	text := doc.Text()
	rawLines := strings.Split(text, "\n")
	lines := make([]string, len(rawLines))
	for i, l := range rawLines {
		lines[i] = strings.TrimSpace(l)
	}

	pricing := make(map[string]string)
	for _, label := range tierLabels {
		for _, strat := range strategies {
			if price, ok := strat(lines, text, label); ok {
				pricing[label] = price
				break
			}
		}
	}

	if len(pricing) == 0 {
		return nil
	}
	return pricing
}

// scanLines finds a line exactly matching the label and takes the first of
// the next 4 lines that starts with the currency symbol and carries a digit.
func scanLines(lines []string, _ string, label string) (string, bool) {
	for i, line := range lines {
		if line != label {
			continue
		}
		for j := i + 1; j < len(lines) && j <= i+4; j++ {
			next := lines[j]
			if strings.HasPrefix(next, currencySymbol) && containsDigit(next) {
				return next, true
			}
		}
	}
	return "", false
}

// matchPattern is the resilient layer: label text followed, possibly across
// lines, by a two-decimal amount.
func matchPattern(_ []string, text string, label string) (string, bool) {
	re := regexp.MustCompile(`(?s)` + regexp.QuoteMeta(label) + `\s*` + currencySymbol + `(\d+\.\d{2})`)
	if m := re.FindStringSubmatch(text); m != nil {
		return currencySymbol + m[1], true
	}
	return "", false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
