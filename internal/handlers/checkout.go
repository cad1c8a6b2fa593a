package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"storefront/internal/checkout"
	"storefront/internal/models"
)

// Checkouts holds the checkout in progress. The local surface serves one
// shopper, so there is at most one.
type Checkouts struct {
	mu      sync.Mutex
	current *checkout.Session
	factory func() *checkout.Session
}

func NewCheckouts(factory func() *checkout.Session) *Checkouts {
	return &Checkouts{factory: factory}
}

// begin replaces the current checkout unless it is mid-submission.
func (h *Checkouts) begin() (*checkout.Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current != nil && h.current.State() == checkout.StateSubmitting {
		return nil, false
	}
	h.current = h.factory()
	return h.current, true
}

func (h *Checkouts) active() *checkout.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

type selectAddressRequest struct {
	AddressID int64 `json:"address_id" binding:"required,min=1"`
}

type paymentMethodRequest struct {
	Method models.PaymentMethod `json:"method" binding:"required"`
}

func withCheckout(h *Checkouts, route string, fn func(*gin.Context, *checkout.Session)) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		session := h.active()
		if session == nil {
			respondWithError(c, http.StatusNotFound, route, "no checkout in progress")
			return
		}
		fn(c, session)
	}
}

func StartCheckout(h *Checkouts) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout"
		defer handlePanic(c, route)

		session, ok := h.begin()
		if !ok {
			respondWithError(c, http.StatusConflict, route, "an order is being placed")
			return
		}
		if err := session.Start(c.Request.Context()); err != nil {
			respondFailure(c, route, err)
			return
		}
		c.JSON(http.StatusOK, session.View())
	}
}

func GetCheckout(h *Checkouts) gin.HandlerFunc {
	return withCheckout(h, "GET /checkout", func(c *gin.Context, session *checkout.Session) {
		c.JSON(http.StatusOK, session.View())
	})
}

func AddCheckoutAddress(h *Checkouts) gin.HandlerFunc {
	const route = "POST /checkout/addresses"
	return withCheckout(h, route, func(c *gin.Context, session *checkout.Session) {
		var input models.AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondValidationError(c, err)
			return
		}
		if _, err := session.AddAddress(c.Request.Context(), input); err != nil {
			respondFailure(c, route, err)
			return
		}
		c.JSON(http.StatusCreated, session.View())
	})
}

func SelectCheckoutAddress(h *Checkouts) gin.HandlerFunc {
	const route = "PUT /checkout/address"
	return withCheckout(h, route, func(c *gin.Context, session *checkout.Session) {
		var req selectAddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if err := session.SelectAddress(req.AddressID); err != nil {
			respondFailure(c, route, err)
			return
		}
		c.JSON(http.StatusOK, session.View())
	})
}

func ProceedToPayment(h *Checkouts) gin.HandlerFunc {
	const route = "POST /checkout/payment"
	return withCheckout(h, route, func(c *gin.Context, session *checkout.Session) {
		if err := session.ProceedToPayment(); err != nil {
			respondFailure(c, route, err)
			return
		}
		c.JSON(http.StatusOK, session.View())
	})
}

func BackToAddress(h *Checkouts) gin.HandlerFunc {
	const route = "DELETE /checkout/payment"
	return withCheckout(h, route, func(c *gin.Context, session *checkout.Session) {
		if err := session.BackToAddress(); err != nil {
			respondFailure(c, route, err)
			return
		}
		c.JSON(http.StatusOK, session.View())
	})
}

func SelectPaymentMethod(h *Checkouts) gin.HandlerFunc {
	const route = "PUT /checkout/payment-method"
	return withCheckout(h, route, func(c *gin.Context, session *checkout.Session) {
		var req paymentMethodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if err := session.SelectPaymentMethod(req.Method); err != nil {
			respondFailure(c, route, err)
			return
		}
		c.JSON(http.StatusOK, session.View())
	})
}

// SetPaymentDetails stores the form and reports field errors live; it never
// fails on invalid values.
func SetPaymentDetails(h *Checkouts) gin.HandlerFunc {
	const route = "PUT /checkout/payment-details"
	return withCheckout(h, route, func(c *gin.Context, session *checkout.Session) {
		var details models.PaymentDetails
		if err := c.ShouldBindJSON(&details); err != nil {
			respondValidationError(c, err)
			return
		}
		session.SetPaymentDetails(details)
		c.JSON(http.StatusOK, session.View())
	})
}

func SubmitCheckout(h *Checkouts) gin.HandlerFunc {
	const route = "POST /checkout/submit"
	return withCheckout(h, route, func(c *gin.Context, session *checkout.Session) {
		if _, err := session.Submit(c.Request.Context()); err != nil {
			respondFailure(c, route, err)
			return
		}
		c.JSON(http.StatusCreated, session.View())
	})
}
