package explore

import "cardsync/internal/model"

// ExploreRequest is the POST body for the listing endpoint. Null-valued
// members are sent explicitly because the API rejects bodies without them.
type ExploreRequest struct {
	PreviousID string   `json:"previous_id"`
	Page       Page     `json:"page"`
	Criteria   Criteria `json:"criteria"`
	UsageType  string   `json:"usage_type"`
	UsageInfo  any      `json:"usage_info"`
	Platform   Platform `json:"platform"`
}

type Page struct {
	Number int `json:"number"`
}

type Criteria struct {
	CardTypes       []string        `json:"card_types"`
	Tags            []string        `json:"tags"`
	Keywords        []string        `json:"keywords"`
	SearchQuery     []string        `json:"search_query"`
	Source          any             `json:"source"`
	IndexingMode    any             `json:"indexing_mode"`
	KeywordCriteria KeywordCriteria `json:"keyword_criteria"`
	Categories      []string        `json:"categories"`
	Recipient       Recipient       `json:"recipient"`
	ExcludedTags    []string        `json:"excluded_tags"`
}

type KeywordCriteria struct {
	SearchType string `json:"search_type"`
}

type Recipient struct {
	Gender    any `json:"gender"`
	SingleAge any `json:"single_age"`
	MinAge    any `json:"min_age"`
	MaxAge    any `json:"max_age"`
}

type Platform struct {
	Type           string     `json:"type"`
	OS             string     `json:"os"`
	OSVersion      string     `json:"os_version"`
	Browser        string     `json:"browser"`
	BrowserVersion string     `json:"browser_version"`
	AppVersion     int        `json:"app_version"`
	ScreenSize     ScreenSize `json:"screen_size"`
}

type ScreenSize struct {
	Height int `json:"height"`
	Width  int `json:"width"`
}

type ExploreResponse struct {
	Cards []model.Card `json:"cards"`
}
