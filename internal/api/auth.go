package api

import (
	"context"
	"net/http"

	"storefront/internal/models"
)

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.send(ctx, request{method: http.MethodPost, path: "/register/", body: req, out: &out})
	return out, err
}

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.send(ctx, request{method: http.MethodPost, path: "/login/", body: req, out: &out})
	return out, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.send(ctx, request{method: http.MethodPost, path: "/logout/", auth: true})
}

func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var out models.User
	err := c.send(ctx, request{method: http.MethodGet, path: "/profile/", out: &out, auth: true})
	return out, err
}
