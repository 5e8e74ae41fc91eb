package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sguter90/sensormaestro/pkg/models"
)

// Catalog retrieves the summary of the current catalog snapshot
func (c *Client) Catalog(ctx context.Context) (*models.CatalogSummary, error) {
	var summary models.CatalogSummary
	if err := c.getJSON(ctx, "/api/v1/catalog", &summary); err != nil {
		return nil, err
	}

	return &summary, nil
}

// RefreshCatalog asks the server to enumerate its sources again.
// Requires a client configured WithAPIKey.
func (c *Client) RefreshCatalog(ctx context.Context) (*models.CatalogSummary, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/catalog/refresh", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var summary models.CatalogSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &summary, nil
}
