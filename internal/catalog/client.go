package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/segyhp/shelfmark/internal/domain"
	customError "github.com/segyhp/shelfmark/pkg/errors"
)

const (
	searchLimit   = 10
	unknownAuthor = "Unknown Author"
	coverURL      = "https://covers.openlibrary.org/b/id/%d-%s.jpg"
)

// Client talks to the OpenLibrary JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	tracer     trace.Tracer
}

// NewClient returns a client allowing rps outbound requests per second.
func NewClient(baseURL string, rps float64, timeout time.Duration) *Client {
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		tracer:     otel.Tracer("shelfmark/catalog"),
	}
}

type searchResponse struct {
	Docs []struct {
		Key              string   `json:"key"`
		Title            string   `json:"title"`
		AuthorName       []string `json:"author_name"`
		CoverI           int      `json:"cover_i"`
		FirstPublishYear int      `json:"first_publish_year"`
	} `json:"docs"`
}

// Search returns the top catalog hits for q.
func (c *Client) Search(ctx context.Context, q string) ([]domain.BookSummary, error) {
	ctx, span := c.tracer.Start(ctx, "catalog.search",
		trace.WithAttributes(attribute.String("catalog.query", q)))
	defer span.End()

	var body searchResponse
	if err := c.get(ctx, "/search.json?q="+url.QueryEscape(q), &body); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		if errors.Is(err, errNotFound) {
			return nil, customError.WrapCatalogUnavailable(err)
		}
		return nil, err
	}

	books := make([]domain.BookSummary, 0, searchLimit)
	for _, doc := range body.Docs {
		if len(books) == searchLimit {
			break
		}
		id, err := domain.NormalizeCatalogItemID(doc.Key)
		if err != nil {
			// Editions and authors can show up in results; only works are borrowable.
			continue
		}

		book := domain.BookSummary{
			CatalogItemID: id,
			Title:         doc.Title,
			Author:        unknownAuthor,
			PublishYear:   "Unknown",
		}
		if len(doc.AuthorName) > 0 && doc.AuthorName[0] != "" {
			book.Author = doc.AuthorName[0]
		}
		if doc.CoverI > 0 {
			book.CoverURL = fmt.Sprintf(coverURL, doc.CoverI, "M")
		}
		if doc.FirstPublishYear > 0 {
			book.PublishYear = strconv.Itoa(doc.FirstPublishYear)
		}
		books = append(books, book)
	}

	span.SetAttributes(attribute.Int("catalog.results", len(books)))
	return books, nil
}

type workResponse struct {
	Key              string          `json:"key"`
	Title            string          `json:"title"`
	Description      json.RawMessage `json:"description"`
	FirstPublishDate string          `json:"first_publish_date"`
	Covers           []int           `json:"covers"`
	Subjects         []string        `json:"subjects"`
	Authors          []struct {
		Author struct {
			Key string `json:"key"`
		} `json:"author"`
	} `json:"authors"`
}

type authorResponse struct {
	Name string `json:"name"`
}

// Work returns the details of a single work. catalogItemID must be normalised.
func (c *Client) Work(ctx context.Context, catalogItemID string) (*domain.BookDetails, error) {
	ctx, span := c.tracer.Start(ctx, "catalog.work",
		trace.WithAttributes(attribute.String("catalog.item_id", catalogItemID)))
	defer span.End()

	var body workResponse
	if err := c.get(ctx, "/works/"+catalogItemID+".json", &body); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "work lookup failed")
		if errors.Is(err, errNotFound) {
			return nil, customError.WrapBookNotFound(catalogItemID)
		}
		return nil, err
	}

	details := &domain.BookDetails{
		CatalogItemID: catalogItemID,
		Title:         body.Title,
		Author:        unknownAuthor,
		Description:   description(body.Description),
		PublishDate:   body.FirstPublishDate,
		Subjects:      body.Subjects,
	}
	if details.PublishDate == "" {
		details.PublishDate = "Unknown"
	}
	if details.Subjects == nil {
		details.Subjects = []string{}
	}
	if len(body.Covers) > 0 && body.Covers[0] > 0 {
		details.CoverURL = fmt.Sprintf(coverURL, body.Covers[0], "L")
	}
	if len(body.Authors) > 0 && body.Authors[0].Author.Key != "" {
		var author authorResponse
		// Author name is decoration; a failed lookup keeps the fallback.
		if err := c.get(ctx, body.Authors[0].Author.Key+".json", &author); err == nil && author.Name != "" {
			details.Author = author.Name
		}
	}

	return details, nil
}

// description accepts both the plain string and the {"type","value"} object form.
func description(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "No description available"
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s
	}
	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Value != "" {
		return obj.Value
	}
	return "No description available"
}

var errNotFound = errors.New("catalog resource not found")

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return customError.WrapCatalogUnavailable(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return customError.WrapCatalogUnavailable(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return customError.WrapCatalogUnavailable(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errNotFound
	case resp.StatusCode != http.StatusOK:
		return customError.WrapCatalogUnavailable(fmt.Errorf("GET %s: status %d", path, resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return customError.WrapCatalogUnavailable(fmt.Errorf("decoding %s: %w", path, err))
	}
	return nil
}
