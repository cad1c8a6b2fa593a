package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"storefront/internal/cart"
	"storefront/internal/delivery"
	"storefront/internal/models"
	"storefront/internal/pricing"
)

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,min=1"`
	Quantity  int   `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func cartResponse(snapshot models.CartSnapshot, policy pricing.Policy, now time.Time) gin.H {
	totals := policy.Calculate(snapshot)
	estimate := delivery.FromNow(now, policy)
	return gin.H{
		"cart":              snapshot,
		"count":             snapshot.Count(),
		"totals":            totals.Rounded(),
		"display":           totals.Display(),
		"estimatedDelivery": estimate,
		"deliveryText":      delivery.Format(estimate),
	}
}

func GetCart(carts *cart.Service, policy pricing.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /cart"
		defer handlePanic(c, route)

		snapshot, err := carts.LoadCart(c.Request.Context())
		if err != nil {
			respondFailure(c, route, err)
			return
		}
		c.JSON(http.StatusOK, cartResponse(snapshot, policy, time.Now()))
	}
}

func AddCartItem(carts *cart.Service, policy pricing.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/items"
		defer handlePanic(c, route)

		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if err := carts.AddItem(c.Request.Context(), req.ProductID, req.Quantity); err != nil {
			respondFailure(c, route, err)
			return
		}
		c.JSON(http.StatusCreated, cartResponse(carts.Store().Snapshot(), policy, time.Now()))
	}
}

func UpdateCartItem(carts *cart.Service, policy pricing.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /cart/items/:productId"
		defer handlePanic(c, route)

		productID, ok := parseIDParam(c, "productId")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if err := carts.SetQuantity(c.Request.Context(), productID, *req.Quantity); err != nil {
			respondFailure(c, route, err)
			return
		}
		c.JSON(http.StatusOK, cartResponse(carts.Store().Snapshot(), policy, time.Now()))
	}
}

func RemoveCartItem(carts *cart.Service, policy pricing.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart/items/:productId"
		defer handlePanic(c, route)

		productID, ok := parseIDParam(c, "productId")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		if err := carts.RemoveItem(c.Request.Context(), productID); err != nil {
			respondFailure(c, route, err)
			return
		}
		c.JSON(http.StatusOK, cartResponse(carts.Store().Snapshot(), policy, time.Now()))
	}
}

func ClearCart(carts *cart.Service, policy pricing.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart"
		defer handlePanic(c, route)

		if err := carts.Clear(c.Request.Context()); err != nil {
			respondFailure(c, route, err)
			return
		}
		c.JSON(http.StatusOK, cartResponse(carts.Store().Snapshot(), policy, time.Now()))
	}
}

// CartEvents streams cart change notifications as server-sent events. The
// current count is sent first so a fresh header badge is right immediately.
func CartEvents(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /cart/events"
		defer handlePanic(c, route)

		events, unsubscribe := store.Subscribe(8)
		defer unsubscribe()

		logger := log.WithField("route", route)
		logger.Debug("cart event stream opened")

		c.SSEvent("count", gin.H{"count": store.Count()})
		c.Writer.Flush()

		c.Stream(func(w io.Writer) bool {
			select {
			case <-c.Request.Context().Done():
				return false
			case event, ok := <-events:
				if !ok {
					return false
				}
				c.SSEvent(string(event.Kind), event)
				return true
			}
		})
		logger.Debug("cart event stream closed")
	}
}
