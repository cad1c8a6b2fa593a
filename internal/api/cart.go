package api

import (
	"context"
	"fmt"
	"net/http"

	"storefront/internal/models"
)

func (c *Client) Cart(ctx context.Context) (models.CartSnapshot, error) {
	var out models.CartSnapshot
	err := c.send(ctx, request{method: http.MethodGet, path: "/cart/", out: &out, auth: true})
	return out, err
}

func (c *Client) AddCartItem(ctx context.Context, productID int64, quantity int) error {
	return c.send(ctx, request{
		method: http.MethodPost,
		path:   "/cart/",
		body:   models.AddCartItemRequest{ProductID: productID, Quantity: quantity},
		auth:   true,
	})
}

func (c *Client) UpdateCartItem(ctx context.Context, itemID int64, quantity int) error {
	return c.send(ctx, request{
		method: http.MethodPut,
		path:   fmt.Sprintf("/cart/items/%d/", itemID),
		body:   models.UpdateCartItemRequest{Quantity: quantity},
		auth:   true,
	})
}

func (c *Client) DeleteCartItem(ctx context.Context, itemID int64) error {
	return c.send(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/cart/items/%d/", itemID), auth: true})
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.send(ctx, request{method: http.MethodDelete, path: "/cart/", auth: true})
}
