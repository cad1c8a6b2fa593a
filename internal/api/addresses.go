package api

import (
	"context"
	"fmt"
	"net/http"

	"storefront/internal/models"
)

func (c *Client) Addresses(ctx context.Context) ([]models.Address, error) {
	var out page[models.Address]
	err := c.send(ctx, request{method: http.MethodGet, path: "/addresses/", out: &out, auth: true})
	return out, err
}

func (c *Client) CreateAddress(ctx context.Context, input models.AddressInput) (models.Address, error) {
	var out models.Address
	err := c.send(ctx, request{method: http.MethodPost, path: "/addresses/create/", body: input, out: &out, auth: true})
	return out, err
}

func (c *Client) SetDefaultAddress(ctx context.Context, id int64) error {
	return c.send(ctx, request{method: http.MethodPost, path: fmt.Sprintf("/addresses/%d/set-default/", id), auth: true})
}

func (c *Client) DeleteAddress(ctx context.Context, id int64) error {
	return c.send(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/addresses/%d/delete/", id), auth: true})
}
