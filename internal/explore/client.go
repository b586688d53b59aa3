package explore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cardsync/internal/model"
)

const (
	// Cursor seed for the first page request.
	SeedCursor = "6892601b0f72f624fcf1b43e"

	// Birthday category.
	defaultCategory = "560bdf1477c804a23c0eac24"
)

var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

type Client struct {
	URL   string
	Token string
}

func requestBody(pageNumber int, previousID string) ExploreRequest {
	if previousID == "" {
		previousID = SeedCursor
	}
	return ExploreRequest{
		PreviousID: previousID,
		Page:       Page{Number: pageNumber},
		Criteria: Criteria{
			CardTypes:       []string{"STANDARD"},
			Tags:            []string{},
			Keywords:        []string{""},
			SearchQuery:     []string{""},
			KeywordCriteria: KeywordCriteria{SearchType: "A_SEARCH"},
			Categories:      []string{defaultCategory},
			ExcludedTags:    []string{},
		},
		UsageType: "OUTSIDE_LINK",
		Platform: Platform{
			Type:           "web",
			OS:             "Mac OS",
			OSVersion:      "10.15",
			Browser:        "Firefox",
			BrowserVersion: "141.0",
			AppVersion:     1998,
			ScreenSize:     ScreenSize{Height: 1080, Width: 1920},
		},
	}
}

// FetchPage requests one listing page at the given cursor position.
func (c *Client) FetchPage(pageNumber int, previousID string) ([]model.Card, error) {
	body, err := json.Marshal(requestBody(pageNumber, previousID))
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("user_token", c.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("explore status %d", resp.StatusCode)
	}

	var result ExploreResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return result.Cards, nil
}
