package services

import (
	"context"
	"net/http"

	"github.com/rpupo63/solar-ops-backend/models"
)

type remoteAccount struct {
	models.Account
	MongoID string `json:"_id"`
}

func (r remoteAccount) account() models.Account {
	a := r.Account
	if a.ID == "" {
		a.ID = r.MongoID
	}
	return a
}

func (c *Client) ListUsers(ctx context.Context) ([]models.Account, error) {
	raw, err := c.do(ctx, usersService, http.MethodGet, "/users", nil)
	if err != nil {
		return nil, err
	}
	rows, err := decodeList[remoteAccount](raw)
	if err != nil {
		return nil, invalidBody(usersService, err)
	}
	accounts := make([]models.Account, 0, len(rows))
	for _, r := range rows {
		accounts = append(accounts, r.account())
	}
	return accounts, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*models.Account, error) {
	raw, err := c.do(ctx, usersService, http.MethodGet, "/user/"+escape(id), nil)
	return decodeAccount(raw, err)
}

func (c *Client) GetUserByNationalID(ctx context.Context, nationalID string) (*models.Account, error) {
	raw, err := c.do(ctx, usersService, http.MethodGet, "/user/national-id/"+escape(nationalID), nil)
	return decodeAccount(raw, err)
}

func (c *Client) UpdateUser(ctx context.Context, id string, changes map[string]any) (*models.Account, error) {
	raw, err := c.do(ctx, usersService, http.MethodPatch, "/user/"+escape(id), changes)
	return decodeAccount(raw, err)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.do(ctx, usersService, http.MethodDelete, "/user/"+escape(id), nil)
	return err
}

func decodeAccount(raw []byte, err error) (*models.Account, error) {
	if err != nil {
		return nil, err
	}
	r, err := decodeOne[remoteAccount](raw)
	if err != nil {
		return nil, invalidBody(usersService, err)
	}
	a := r.account()
	return &a, nil
}
