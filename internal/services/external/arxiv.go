package external

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ternarybob/scientia/internal/models"
)

// arXiv Atom response structures. Fields match local element names, so
// both the Atom and arxiv.org namespaces resolve without explicit prefixes.
type arxivFeed struct {
	XMLName xml.Name     `xml:"feed"`
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID                string          `xml:"id"`
	Title             string          `xml:"title"`
	Summary           string          `xml:"summary"`
	Authors           []arxivAuthor   `xml:"author"`
	PrimaryCategories []arxivCategory `xml:"primary_category"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

// SearchArxiv queries the arXiv API with a disjunctive exact-phrase query
// over the keywords, sorted by relevance. Failures return an empty list.
func (s *Service) SearchArxiv(ctx context.Context, keywords []string, maxResults int) []*models.Document {
	if len(keywords) == 0 {
		return []*models.Document{}
	}

	queryParts := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		queryParts = append(queryParts, fmt.Sprintf("all:%q", kw))
	}

	params := url.Values{}
	params.Set("search_query", strings.Join(queryParts, " OR "))
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("sortBy", "relevance")
	params.Set("sortOrder", "descending")

	if err := s.arxivLimiter.Wait(ctx); err != nil {
		s.logger.Error().Err(err).Msg("arXiv rate limit wait aborted")
		return []*models.Document{}
	}

	requestURL := s.config.ArxivBaseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to build arXiv request")
		return []*models.Document{}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().Err(err).Msg("arXiv search failed")
		return []*models.Document{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Error().Int("status", resp.StatusCode).Msg("arXiv search returned non-OK status")
		return []*models.Document{}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to read arXiv response")
		return []*models.Document{}
	}

	docs := s.parseArxivResponse(body)

	s.logger.Info().
		Strs("keywords", keywords).
		Int("results", len(docs)).
		Msg("arXiv search complete")

	return docs
}

// parseArxivResponse converts an Atom feed into knowledge documents
func (s *Service) parseArxivResponse(body []byte) []*models.Document {
	var feed arxivFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		s.logger.Error().Err(err).Msg("Failed to parse arXiv XML")
		return []*models.Document{}
	}

	docs := make([]*models.Document, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		title := collapseWhitespace(entry.Title)
		summary := collapseWhitespace(entry.Summary)

		authors := make([]string, 0, len(entry.Authors))
		for _, author := range entry.Authors {
			if author.Name != "" {
				authors = append(authors, author.Name)
			}
		}

		categories := make([]string, 0, len(entry.PrimaryCategories))
		for _, category := range entry.PrimaryCategories {
			if category.Term != "" {
				categories = append(categories, category.Term)
			}
		}

		arxivID := ""
		if entry.ID != "" {
			segments := strings.Split(entry.ID, "/")
			arxivID = segments[len(segments)-1]
		}

		docs = append(docs, &models.Document{
			Content:      fmt.Sprintf("Title: %s\n\nAbstract: %s", title, summary),
			SourceType:   models.SourceTypeArxivPaper,
			SourceURL:    entry.ID,
			SourceTitle:  title,
			SourceAuthor: strings.Join(firstN(authors, 3), ", "),
			Metadata: models.Metadata{
				"arxiv_id":    models.String(arxivID),
				"categories":  models.List(categories),
				"all_authors": models.List(authors),
			},
		})
	}

	return docs
}

// collapseWhitespace trims and normalizes runs of whitespace to single spaces
func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func firstN(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}
