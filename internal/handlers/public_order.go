package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"storefront/internal/delivery"
	"storefront/internal/models"
	"storefront/internal/pricing"
)

// Orders is the remote order history.
type Orders interface {
	Orders(ctx context.Context) (models.OrderList, error)
}

type orderResponse struct {
	models.Order
	EstimatedDelivery string `json:"estimated_delivery"`
}

func GetOrders(orders Orders, policy pricing.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
		defer handlePanic(c, route)

		list, err := orders.Orders(c.Request.Context())
		if errors.Is(err, models.ErrInvalidOrdersShape) {
			log.WithField("route", route).WithError(err).Warn("unexpected orders payload")
			c.JSON(http.StatusOK, gin.H{"data": []orderResponse{}, "error": "Invalid orders data format received"})
			return
		}
		if err != nil {
			respondFailure(c, route, err)
			return
		}

		data := make([]orderResponse, 0, len(list))
		for _, order := range list {
			resp := orderResponse{Order: order}
			if !order.CreatedAt.IsZero() {
				resp.EstimatedDelivery = delivery.Format(delivery.ForOrder(order, policy))
			}
			data = append(data, resp)
		}
		c.JSON(http.StatusOK, gin.H{"data": data})
	}
}

// GetLastOrder serves the confirmation backup of the most recent order.
func GetLastOrder(sessions Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/last"
		defer handlePanic(c, route)

		order, err := sessions.LastOrder(c.Request.Context())
		if err != nil {
			respondFailure(c, route, err)
			return
		}
		if order == nil {
			respondWithError(c, http.StatusNotFound, route, "no recent order")
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
