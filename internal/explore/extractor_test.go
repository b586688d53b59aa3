package explore

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardsync/internal/model"
)

type explorePage struct {
	status int
	cards  []model.Card
}

// pageServer serves scripted listing pages in order and records the cursor
// of every request.
func pageServer(t *testing.T, pages []explorePage) (*httptest.Server, *[]string) {
	t.Helper()
	var cursors []string
	calls := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body ExploreRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		cursors = append(cursors, body.PreviousID)

		require.Less(t, calls, len(pages), "more requests than scripted pages")
		page := pages[calls]
		calls++

		if page.status != 0 && page.status != http.StatusOK {
			w.WriteHeader(page.status)
			return
		}
		json.NewEncoder(w).Encode(ExploreResponse{Cards: page.cards})
	}))

	return srv, &cursors
}

func card(objectID string) model.Card {
	return model.Card{ObjectID: objectID, ID: "pub-" + objectID}
}

func TestExtractAllAdvancesCursorAndStopsOnEmptyPage(t *testing.T) {
	srv, cursors := pageServer(t, []explorePage{
		{cards: []model.Card{card("a"), card("b")}},
		{cards: []model.Card{card("c")}},
		{cards: nil},
	})
	defer srv.Close()

	e := &Extractor{
		Client:   &Client{URL: srv.URL},
		MaxPages: 10,
	}
	cards, fetched := e.ExtractAll()

	assert.Len(t, cards, 3)
	assert.Equal(t, 3, fetched)
	// seed on the first request, then the last card of each page
	assert.Equal(t, []string{SeedCursor, "b", "c"}, *cursors)
}

func TestExtractAllPartialResultOnFetchFailure(t *testing.T) {
	srv, cursors := pageServer(t, []explorePage{
		{cards: []model.Card{card("a"), card("b")}},
		{status: http.StatusInternalServerError},
	})
	defer srv.Close()

	e := &Extractor{
		Client:   &Client{URL: srv.URL},
		MaxPages: 10,
	}
	cards, fetched := e.ExtractAll()

	assert.Len(t, cards, 2, "everything accumulated before the failure survives")
	assert.Equal(t, 1, fetched)
	assert.Len(t, *cursors, 2, "no requests after the failed page")
}

func TestExtractAllHonorsPageLimit(t *testing.T) {
	srv, cursors := pageServer(t, []explorePage{
		{cards: []model.Card{card("a")}},
		{cards: []model.Card{card("b")}},
	})
	defer srv.Close()

	e := &Extractor{
		Client:   &Client{URL: srv.URL},
		MaxPages: 2,
	}
	cards, fetched := e.ExtractAll()

	assert.Len(t, cards, 2)
	assert.Equal(t, 2, fetched)
	assert.Len(t, *cursors, 2)
}

func TestExtractAllEnhancesImages(t *testing.T) {
	withImage := model.Card{
		ObjectID: "a",
		ID:       "pub-a",
		Image: map[string]string{
			"large": "https://m.example.com/card/pub-a/f.jpg",
		},
	}
	srv, _ := pageServer(t, []explorePage{
		{cards: []model.Card{withImage}},
		{cards: nil},
	})
	defer srv.Close()

	e := &Extractor{
		Client:   &Client{URL: srv.URL},
		MaxPages: 5,
	}
	cards, _ := e.ExtractAll()

	require.Len(t, cards, 1)
	assert.Contains(t, cards[0].Image["large"], "cdn-cgi/image")
	assert.NotEmpty(t, cards[0].PreferredImageURL)
}
