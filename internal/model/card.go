package model

// Card is one denormalized record from the explore listing. The payload
// carries both `_id` (the listing cursor) and `id` (the stable external
// identifier); unknown keys round-trip is not needed because every field the
// pipeline consumes is mapped explicitly.
type Card struct {
	ObjectID       string            `json:"_id,omitempty"`
	ID             string            `json:"id"`
	PdpURL         string            `json:"pdp_url"`
	Description    CardDescription   `json:"description"`
	Classification Classification    `json:"classification"`
	Image          map[string]string `json:"image,omitempty"`
	Listed         bool              `json:"listed"`

	// Filled by the CDN enhancement pass.
	PreferredImageURL string `json:"preferred_image_url,omitempty"`

	// Filled by the pricing stage. Absence is a valid terminal state.
	Pricing           map[string]string `json:"pricing,omitempty"`
	StandardCardPrice string            `json:"standard_card_price,omitempty"`
}

type CardDescription struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Classification struct {
	Tags []string `json:"tags"`
}

// CursorID returns the identifier the listing cursor advances on.
func (c Card) CursorID() string {
	if c.ObjectID != "" {
		return c.ObjectID
	}
	return c.ID
}
