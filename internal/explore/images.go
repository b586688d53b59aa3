package explore

import (
	"fmt"
	"strings"

	"cardsync/internal/model"
)

const cdnBase = "https://images.thortful.com"

var widthBySize = map[string]int{
	"thumbnail": 80,
	"small":     120,
	"medium":    160,
	"large":     320,
	"xlarge":    640,
}

const defaultWidth = 160

// ConvertImageURL rewrites a raw media URL to its CDN form for the requested
// size. URLs without a card segment pass through unchanged.
func ConvertImageURL(raw, size string) string {
	if raw == "" {
		return ""
	}

	parts := strings.Split(raw, "/")
	cardIdx := -1
	for i, p := range parts {
		if p == "card" {
			cardIdx = i
			break
		}
	}
	if cardIdx < 0 || cardIdx+2 >= len(parts) {
		return raw
	}

	cardID := parts[cardIdx+1]
	filename := parts[cardIdx+2]
	version := "1"
	if name, v, ok := strings.Cut(filename, "?version="); ok {
		filename = name
		version = v
	}

	width, ok := widthBySize[size]
	if !ok {
		width = defaultWidth
	}

	return fmt.Sprintf("%s/cdn-cgi/image/quality=60,width=%d,format=auto/card/%s/%s?version=%s",
		cdnBase, width, cardID, filename, version)
}

// EnhanceImages rewrites a card's image map to CDN form and picks the
// preferred image URL (large, else medium). The status entry is carried over
// untouched; empty URLs are dropped.
func EnhanceImages(c *model.Card) {
	if len(c.Image) == 0 {
		return
	}

	enhanced := make(map[string]string, len(c.Image))
	for size, url := range c.Image {
		if size == "status" {
			enhanced[size] = url
			continue
		}
		if url != "" {
			enhanced[size] = ConvertImageURL(url, size)
		}
	}
	c.Image = enhanced

	if u := enhanced["large"]; u != "" {
		c.PreferredImageURL = u
	} else if u := enhanced["medium"]; u != "" {
		c.PreferredImageURL = u
	}
}
