package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"storefront/internal/models"
)

// page decodes either a bare JSON array or a paginated {"results": [...]}.
type page[T any] []T

func (p *page[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*p = items
		return nil
	}
	var wrapped struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	*p = wrapped.Results
	return nil
}

func productQuery(filter models.ProductFilter) url.Values {
	query := url.Values{}
	set := func(key, value string) {
		if value != "" {
			query.Set(key, value)
		}
	}
	set("category", filter.Category)
	set("search", filter.Search)
	set("care_level", filter.CareLevel)
	set("plant_type", filter.PlantType)
	set("min_price", filter.MinPrice)
	set("max_price", filter.MaxPrice)
	set("ordering", filter.Ordering)
	if filter.Featured {
		query.Set("is_featured", "true")
	}
	return query
}

func (c *Client) Products(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	var out page[models.Product]
	err := c.send(ctx, request{method: http.MethodGet, path: "/products/", query: productQuery(filter), out: &out})
	return out, err
}

func (c *Client) Product(ctx context.Context, id int64) (models.Product, error) {
	var out models.Product
	err := c.send(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/products/%d/", id), out: &out})
	return out, err
}

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out page[models.Category]
	err := c.send(ctx, request{method: http.MethodGet, path: "/categories/", out: &out})
	return out, err
}
