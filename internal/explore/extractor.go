package explore

import (
	"log"
	"time"

	"cardsync/internal/model"
	"cardsync/internal/observability"
)

type Extractor struct {
	Client   *Client
	MaxPages int
	Delay    time.Duration
}

// ExtractAll walks the listing until exhaustion, failure or the page limit,
// then applies the CDN rewrite to everything accumulated. A partial result is
// a success: downstream stages tolerate an incomplete catalog.
func (e *Extractor) ExtractAll() ([]model.Card, int) {
	var cards []model.Card
	previousID := ""
	pagesFetched := 0

	for page := 1; page <= e.MaxPages; page++ {
		log.Printf("Fetching page %d...", page)
		pageCards, err := e.Client.FetchPage(page, previousID)
		if err != nil {
			log.Printf("Failed to fetch page %d, stopping: %v", page, err)
			break
		}
		pagesFetched++
		observability.PagesFetched.Inc()

		if len(pageCards) == 0 {
			log.Printf("No more cards on page %d, stopping", page)
			break
		}

		log.Printf("Found %d cards on page %d", len(pageCards), page)
		cards = append(cards, pageCards...)
		observability.CardsExtracted.Add(float64(len(pageCards)))

		previousID = pageCards[len(pageCards)-1].CursorID()

		if page < e.MaxPages {
			time.Sleep(e.Delay)
		}
	}

	for i := range cards {
		EnhanceImages(&cards[i])
	}

	return cards, pagesFetched
}
