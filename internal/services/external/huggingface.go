package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ternarybob/scientia/internal/models"
)

// hfModel is the subset of the HuggingFace Hub model listing we consume
type hfModel struct {
	ModelID     string   `json:"modelId"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Downloads   int      `json:"downloads"`
	Likes       int      `json:"likes"`
	Tags        []string `json:"tags"`
}

// SearchHuggingFace queries the HuggingFace Hub model search with the
// keywords joined into a single query. Failures return an empty list.
func (s *Service) SearchHuggingFace(ctx context.Context, keywords []string, maxResults int) []*models.Document {
	if len(keywords) == 0 {
		return []*models.Document{}
	}

	params := url.Values{}
	params.Set("search", strings.Join(keywords, " "))
	params.Set("limit", strconv.Itoa(maxResults))

	requestURL := s.config.HuggingFaceBaseURL + "/models?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to build HuggingFace request")
		return []*models.Document{}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().Err(err).Msg("HuggingFace search failed")
		return []*models.Document{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Error().Int("status", resp.StatusCode).Msg("HuggingFace search returned non-OK status")
		return []*models.Document{}
	}

	var hfModels []hfModel
	if err := json.NewDecoder(resp.Body).Decode(&hfModels); err != nil {
		s.logger.Error().Err(err).Msg("Failed to parse HuggingFace response")
		return []*models.Document{}
	}

	if len(hfModels) > maxResults {
		hfModels = hfModels[:maxResults]
	}

	docs := make([]*models.Document, 0, len(hfModels))
	for _, model := range hfModels {
		description := model.Description
		if description == "" {
			description = "No description available"
		}

		docs = append(docs, &models.Document{
			Content:      fmt.Sprintf("HuggingFace Model: %s\n\nDescription: %s", model.ModelID, description),
			SourceType:   models.SourceTypeHuggingFace,
			SourceURL:    "https://huggingface.co/" + model.ModelID,
			SourceTitle:  model.ModelID,
			SourceAuthor: model.Author,
			Metadata: models.Metadata{
				"downloads": models.Number(float64(model.Downloads)),
				"likes":     models.Number(float64(model.Likes)),
				"tags":      models.List(model.Tags),
			},
		})
	}

	s.logger.Info().
		Strs("keywords", keywords).
		Int("results", len(docs)).
		Msg("HuggingFace search complete")

	return docs
}
