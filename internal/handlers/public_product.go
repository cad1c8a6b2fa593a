package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
)

// Catalog is the remote product catalog.
type Catalog interface {
	Products(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	Product(ctx context.Context, id int64) (models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

type productResponse struct {
	models.Product
	UnitPrice string `json:"unit_price"`
	OnSale    bool   `json:"is_on_sale"`
	InStock   bool   `json:"in_stock"`
}

func toProductResponse(product models.Product) productResponse {
	return productResponse{
		Product:   product,
		UnitPrice: product.UnitPrice().StringFixed(2),
		OnSale:    product.IsOnSale(),
		InStock:   product.InStock(),
	}
}

func GetProducts(catalog Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid pagination parameters")
			return
		}

		filter := models.ProductFilter{
			Category:  strings.TrimSpace(c.Query("category")),
			Search:    strings.TrimSpace(c.Query("search")),
			Featured:  c.Query("featured") == "true",
			CareLevel: strings.TrimSpace(c.Query("care_level")),
			PlantType: strings.TrimSpace(c.Query("plant_type")),
			MinPrice:  strings.TrimSpace(c.Query("min_price")),
			MaxPrice:  strings.TrimSpace(c.Query("max_price")),
			Ordering:  strings.TrimSpace(c.Query("ordering")),
		}

		products, err := catalog.Products(c.Request.Context(), filter)
		if err != nil {
			respondFailure(c, route, err)
			return
		}

		pageItems := paginate(products, page, limit)
		data := make([]productResponse, 0, len(pageItems))
		for _, product := range pageItems {
			data = append(data, toProductResponse(product))
		}

		c.JSON(http.StatusOK, gin.H{
			"data":  data,
			"page":  page,
			"limit": limit,
			"total": len(products),
		})
	}
}

func GetProduct(catalog Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c, "id")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		product, err := catalog.Product(c.Request.Context(), id)
		if err != nil {
			respondFailure(c, route, err)
			return
		}
		c.JSON(http.StatusOK, toProductResponse(product))
	}
}
