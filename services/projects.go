package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/rpupo63/solar-ops-backend/models"
	"github.com/rpupo63/solar-ops-backend/tracker"
)

// remoteProject shadows Users because the remote API returns them either
// as id strings or as user objects.
type remoteProject struct {
	models.Project
	MongoID string          `json:"_id"`
	Users   json.RawMessage `json:"users"`
}

func (r remoteProject) project() (*models.Project, error) {
	p := r.Project
	if p.ID == "" {
		p.ID = r.MongoID
	}
	users, err := decodeUsers(r.Users)
	if err != nil {
		return nil, err
	}
	p.Users = users
	return tracker.EnsureIDs(&p), nil
}

func decodeUsers(raw json.RawMessage) ([]models.User, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err == nil {
		users := make([]models.User, 0, len(ids))
		for _, id := range ids {
			users = append(users, models.User{ID: id})
		}
		return users, nil
	}
	var accounts []remoteAccount
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(accounts))
	for _, a := range accounts {
		users = append(users, a.account().Ref())
	}
	return users, nil
}

func (c *Client) ListProjects(ctx context.Context) ([]*models.Project, error) {
	raw, err := c.do(ctx, projectsService, http.MethodGet, "/projects", nil)
	if err != nil {
		return nil, err
	}
	rows, err := decodeList[remoteProject](raw)
	if err != nil {
		return nil, invalidBody(projectsService, err)
	}
	projects := make([]*models.Project, 0, len(rows))
	for _, r := range rows {
		p, err := r.project()
		if err != nil {
			return nil, invalidBody(projectsService, err)
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (*models.Project, error) {
	raw, err := c.do(ctx, projectsService, http.MethodGet, "/projects/"+escape(id), nil)
	return decodeProject(raw, err)
}

// CreateProject submits a new project and returns the stored record.
func (c *Client) CreateProject(ctx context.Context, payload models.ProjectPayload) (*models.Project, error) {
	raw, err := c.do(ctx, projectsService, http.MethodPost, "/projects", payload)
	return decodeProject(raw, err)
}

func (c *Client) UpdateProject(ctx context.Context, id string, payload models.ProjectPayload) (*models.Project, error) {
	raw, err := c.do(ctx, projectsService, http.MethodPatch, "/projects/"+escape(id), payload)
	return decodeProject(raw, err)
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	_, err := c.do(ctx, projectsService, http.MethodDelete, "/projects/"+escape(id), nil)
	return err
}

func decodeProject(raw []byte, err error) (*models.Project, error) {
	if err != nil {
		return nil, err
	}
	r, err := decodeOne[remoteProject](raw)
	if err != nil {
		return nil, invalidBody(projectsService, err)
	}
	p, err := r.project()
	if err != nil {
		return nil, invalidBody(projectsService, err)
	}
	return p, nil
}
