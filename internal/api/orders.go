package api

import (
	"context"
	"fmt"
	"net/http"

	"storefront/internal/models"
)

// CreateOrder submits an order. The idempotency key lets the server drop a
// duplicate when the same checkout is retried.
func (c *Client) CreateOrder(ctx context.Context, req models.OrderRequest, idempotencyKey string) (models.Order, error) {
	header := http.Header{}
	if idempotencyKey != "" {
		header.Set("Idempotency-Key", idempotencyKey)
	}
	var out models.Order
	err := c.send(ctx, request{
		method: http.MethodPost,
		path:   "/orders/create/",
		body:   req,
		out:    &out,
		auth:   true,
		header: header,
	})
	return out, err
}

// Orders returns models.ErrInvalidOrdersShape (wrapped) when the server
// answers with an unrecognised payload.
func (c *Client) Orders(ctx context.Context) (models.OrderList, error) {
	var out models.OrderList
	err := c.send(ctx, request{method: http.MethodGet, path: "/orders/", out: &out, auth: true})
	if err != nil {
		return models.OrderList{}, err
	}
	return out, nil
}

func (c *Client) Order(ctx context.Context, id int64) (models.Order, error) {
	var out models.Order
	err := c.send(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/orders/%d/", id), out: &out, auth: true})
	return out, err
}
