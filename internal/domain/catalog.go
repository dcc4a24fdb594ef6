package domain

import (
	"fmt"
	"regexp"
	"strings"

	customError "github.com/segyhp/shelfmark/pkg/errors"
)

var catalogItemIDPattern = regexp.MustCompile(`^OL[0-9]+W$`)

// NormalizeCatalogItemID reduces "/works/OL123W" and "OL123W" to the bare
// "OL123W" form used everywhere in storage.
func NormalizeCatalogItemID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	id = strings.TrimPrefix(id, "/works/")
	id = strings.TrimPrefix(id, "works/")
	if !catalogItemIDPattern.MatchString(id) {
		return "", customError.WrapInvalidArgument(fmt.Sprintf("invalid catalog item id %q", raw))
	}
	return id, nil
}

// BookSummary is one catalog search hit.
type BookSummary struct {
	CatalogItemID string `json:"catalogItemId"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	CoverURL      string `json:"coverUrl,omitempty"`
	PublishYear   string `json:"publishYear"`
}

// BookDetails is the catalog view of a single work.
type BookDetails struct {
	CatalogItemID string   `json:"catalogItemId"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Description   string   `json:"description"`
	PublishDate   string   `json:"publishDate"`
	CoverURL      string   `json:"coverUrl,omitempty"`
	Subjects      []string `json:"subjects"`
	IsAvailable   bool     `json:"isAvailable"`
}
