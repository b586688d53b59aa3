package pricing

import (
	"io"
	"log"
	"net/http"
	"time"

	"cardsync/internal/model"
	"cardsync/internal/observability"
)

var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

type Scraper struct {
	BaseURL string
	Delay   time.Duration
}

// ScrapePricing fetches each product's detail page and attaches the scraped
// tier pricing. Products without a pdp_url are skipped; a failed fetch means
// "no pricing" for that item, never an aborted batch. Returns the (possibly
// capped) products and the count that yielded a standard price.
func (s *Scraper) ScrapePricing(cards []model.Card, maxProducts int) ([]model.Card, int) {
	if maxProducts > 0 && len(cards) > maxProducts {
		cards = cards[:maxProducts]
	}

	success := 0
	log.Printf("Extracting pricing for %d products...", len(cards))

	for i := range cards {
		if cards[i].PdpURL == "" {
			continue
		}

		log.Printf("Product %d/%d: %s", i+1, len(cards), shortTitle(cards[i].Description.Title))

		pricing, err := s.fetchPricing(cards[i].PdpURL)
		switch {
		case err != nil:
			log.Printf("  error: %v", err)
		case pricing == nil:
			log.Printf("  no pricing found")
		default:
			cards[i].Pricing = pricing
			if std := pricing[StandardTier]; std != "" {
				cards[i].StandardCardPrice = std
				log.Printf("  standard card: %s", std)
				success++
				observability.PricesFound.Inc()
			}
		}

		if i < len(cards)-1 {
			time.Sleep(s.Delay)
		}
	}

	log.Printf("Pricing extraction complete: %d/%d products", success, len(cards))
	return cards, success
}

func (s *Scraper) fetchPricing(pdpURL string) (map[string]string, error) {
	resp, err := httpClient.Get(s.BaseURL + pdpURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return ExtractPricing(string(body)), nil
}

func shortTitle(title string) string {
	if title == "" {
		return "Untitled"
	}
	r := []rune(title)
	if len(r) > 40 {
		return string(r[:40]) + "..."
	}
	return title
}
