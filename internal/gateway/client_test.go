package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videepat_foods/internal/content/registry"
	"videepat_foods/internal/domain/models"
	"videepat_foods/internal/editor"
	"videepat_foods/internal/lib/logger/handlers/slogdiscard"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(slogdiscard.NewDiscardLogger(), Options{BaseURL: srv.URL + "/", Token: "secret"})
	require.NoError(t, err)
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(slogdiscard.NewDiscardLogger(), Options{BaseURL: "  "})
	assert.Error(t, err)
}

func TestClient_ListPages_NormalisesIDs(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/pages/", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[
			{"_id":"mongo-1","name":"About","slug":"about","sections":[]},
			{"id":"pg-2","_id":"ignored","name":"Offers","slug":"offers","sections":[]}
		]`)
	}))

	pages, err := c.ListPages(context.Background())
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "mongo-1", pages[0].ID)
	assert.Equal(t, "pg-2", pages[1].ID)
	assert.Equal(t, "Offers", pages[1].Name)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		notFound    bool
	}{
		{"duplicate slug", http.StatusBadRequest, `{"status":"error","error":"A page with this name or slug already exists."}`, "A page with this name or slug already exists.", false},
		{"missing", http.StatusNotFound, `{"error":"page not found"}`, "page not found", true},
		{"plain text", http.StatusBadGateway, `upstream down`, "upstream down", false},
		{"empty body", http.StatusInternalServerError, ``, "Internal Server Error", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))

			_, err := c.GetPage(context.Background(), "p1")
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.notFound, errors.Is(err, ErrNotFound))
		})
	}
}

func TestClient_PageSessionCreatesThenReplaces(t *testing.T) {
	var calls []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var sent map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		assert.Equal(t, "Summer Sale", sent["name"])

		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":"p1","_id":"p1","name":"Summer Sale","slug":"summer-sale","version":1,"sections":[]}`)
		case http.MethodPut:
			_, _ = io.WriteString(w, `{"_id":"p1","name":"Summer Sale","slug":"summer-sale","version":2,"sections":[]}`)
		}
	}))

	e := editor.NewPage(registry.Default())
	e.SetName("Summer Sale")
	session := editor.NewPageSession(slogdiscard.NewDiscardLogger(), e, c)

	first, err := session.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "p1", first.ID)
	assert.Equal(t, "p1", e.ID())

	second, err := session.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, second.Version)

	assert.Equal(t, []string{"POST /api/pages/", "PUT /api/pages/p1/"}, calls)
}

func TestClient_StoryAndCatalog(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/stories/st1/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"_id":"st1","title":"Roots","fullStoryContent":[{"_id":"c1","type":"text","content":"hi"}]}`)
	})
	mux.HandleFunc("/api/products/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"_id":"ghee","name":"Desi Ghee","price":450}]`)
	})
	mux.HandleFunc("/api/hero/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			var h models.Hero
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&h))
			h.ID = ""
			_ = json.NewEncoder(w).Encode(map[string]any{"_id": "h1", "title": h.Title})
			return
		}
		_, _ = io.WriteString(w, `{"id":"h1","title":"Fresh from Our Village"}`)
	})
	mux.HandleFunc("/api/stories/gone/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	story, err := c.GetStory(ctx, "st1")
	require.NoError(t, err)
	assert.Equal(t, "st1", story.ID)
	require.Len(t, story.Content, 1)
	assert.Equal(t, "c1", story.Content[0].ID)

	products, err := c.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "ghee", products[0].ID)

	hero, err := c.GetHero(ctx)
	require.NoError(t, err)
	assert.Equal(t, "h1", hero.ID)

	updated, err := c.UpdateHero(ctx, models.Hero{Title: "Monsoon Picks"})
	require.NoError(t, err)
	assert.Equal(t, "h1", updated.ID)
	assert.Equal(t, "Monsoon Picks", updated.Title)

	require.NoError(t, c.DeleteStory(ctx, "gone"))

	_, err = c.UpdateStory(ctx, models.Story{Title: "no id"})
	assert.Error(t, err)
}
