package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customError "github.com/segyhp/shelfmark/pkg/errors"
)

func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if body == "500" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Search(t *testing.T) {
	docs := []string{
		`{"key":"/works/OL1W","title":"Dune","author_name":["Frank Herbert"],"cover_i":42,"first_publish_year":1965}`,
		`{"key":"/works/OL2W","title":"Anonymous"}`,
		`{"key":"/books/OL9M","title":"An edition"}`,
	}
	for i := 3; i <= 12; i++ {
		docs = append(docs, fmt.Sprintf(`{"key":"/works/OL%dW","title":"Book %d"}`, i, i))
	}
	srv := newTestServer(t, map[string]string{
		"/search.json": `{"docs":[` + strings.Join(docs, ",") + `]}`,
	})
	client := NewClient(srv.URL, 100, time.Second)

	books, err := client.Search(context.Background(), "dune")
	require.NoError(t, err)
	require.Len(t, books, 10)

	assert.Equal(t, "OL1W", books[0].CatalogItemID)
	assert.Equal(t, "Frank Herbert", books[0].Author)
	assert.Equal(t, "https://covers.openlibrary.org/b/id/42-M.jpg", books[0].CoverURL)
	assert.Equal(t, "1965", books[0].PublishYear)

	assert.Equal(t, "Unknown Author", books[1].Author)
	assert.Equal(t, "Unknown", books[1].PublishYear)
	assert.Empty(t, books[1].CoverURL)

	for _, b := range books {
		assert.NotEqual(t, "An edition", b.Title)
	}
}

func TestClient_Search_UpstreamFailure(t *testing.T) {
	srv := newTestServer(t, map[string]string{"/search.json": "500"})
	client := NewClient(srv.URL, 100, time.Second)

	_, err := client.Search(context.Background(), "dune")

	require.Error(t, err)
	assert.Equal(t, customError.ErrCodeCatalogUnavailable, customError.CodeOf(err))
}

func TestClient_Work(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/works/OL1W.json": `{
			"key":"/works/OL1W","title":"Dune",
			"description":{"type":"/type/text","value":"Spice."},
			"first_publish_date":"1965","covers":[7],
			"subjects":["Science fiction"],
			"authors":[{"author":{"key":"/authors/OL1A"}}]
		}`,
		"/authors/OL1A.json": `{"name":"Frank Herbert"}`,
		"/works/OL2W.json":   `{"key":"/works/OL2W","title":"Bare","description":"Plain text."}`,
	})
	client := NewClient(srv.URL, 100, time.Second)

	book, err := client.Work(context.Background(), "OL1W")
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Frank Herbert", book.Author)
	assert.Equal(t, "Spice.", book.Description)
	assert.Equal(t, "https://covers.openlibrary.org/b/id/7-L.jpg", book.CoverURL)
	assert.Equal(t, []string{"Science fiction"}, book.Subjects)

	bare, err := client.Work(context.Background(), "OL2W")
	require.NoError(t, err)
	assert.Equal(t, "Unknown Author", bare.Author)
	assert.Equal(t, "Plain text.", bare.Description)
	assert.Equal(t, "Unknown", bare.PublishDate)
	assert.Empty(t, bare.Subjects)
}

func TestClient_Work_NotFound(t *testing.T) {
	srv := newTestServer(t, map[string]string{})
	client := NewClient(srv.URL, 100, time.Second)

	_, err := client.Work(context.Background(), "OL404W")

	assert.Equal(t, customError.KindNotFound, customError.KindOf(err))
	assert.Equal(t, customError.ErrCodeBookNotFound, customError.CodeOf(err))
}

func TestClient_RespectsContextWhileRateLimited(t *testing.T) {
	srv := newTestServer(t, map[string]string{"/search.json": `{"docs":[]}`})
	client := NewClient(srv.URL, 0.001, time.Second)

	_, err := client.Search(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = client.Search(ctx, "second")

	assert.Equal(t, customError.ErrCodeCatalogUnavailable, customError.CodeOf(err))
}
