package services

import (
	"context"
	"net/http"

	"github.com/rpupo63/solar-ops-backend/models"
)

// remoteSite tolerates records keyed by either "id" or "_id".
type remoteSite struct {
	models.Site
	MongoID string `json:"_id"`
}

func (r remoteSite) site() models.Site {
	s := r.Site
	if s.ID == "" {
		s.ID = r.MongoID
	}
	return s
}

func (c *Client) ListSites(ctx context.Context) ([]models.Site, error) {
	raw, err := c.do(ctx, locationsService, http.MethodGet, "/locations", nil)
	if err != nil {
		return nil, err
	}
	rows, err := decodeList[remoteSite](raw)
	if err != nil {
		return nil, invalidBody(locationsService, err)
	}
	sites := make([]models.Site, 0, len(rows))
	for _, r := range rows {
		sites = append(sites, r.site())
	}
	return sites, nil
}

func (c *Client) GetSite(ctx context.Context, id string) (*models.Site, error) {
	raw, err := c.do(ctx, locationsService, http.MethodGet, "/locations/"+escape(id), nil)
	return decodeSite(raw, err)
}

func (c *Client) CreateSite(ctx context.Context, in models.SiteInput) (*models.Site, error) {
	raw, err := c.do(ctx, locationsService, http.MethodPost, "/locations", in)
	return decodeSite(raw, err)
}

// UpdateSite sends a partial update.
func (c *Client) UpdateSite(ctx context.Context, id string, changes map[string]any) (*models.Site, error) {
	raw, err := c.do(ctx, locationsService, http.MethodPatch, "/locations/"+escape(id), changes)
	return decodeSite(raw, err)
}

func (c *Client) DeleteSite(ctx context.Context, id string) error {
	_, err := c.do(ctx, locationsService, http.MethodDelete, "/locations/"+escape(id), nil)
	return err
}

func decodeSite(raw []byte, err error) (*models.Site, error) {
	if err != nil {
		return nil, err
	}
	r, err := decodeOne[remoteSite](raw)
	if err != nil {
		return nil, invalidBody(locationsService, err)
	}
	s := r.site()
	return &s, nil
}
