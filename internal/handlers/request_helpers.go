package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"storefront/internal/api"
	"storefront/internal/cart"
	"storefront/internal/checkout"
	"storefront/internal/validation"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.WithField("route", route).Errorf("panic recovered: %v", r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.WithField("route", route).Warnf("returning error %d: %s", status, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondFailure maps domain and remote errors onto HTTP responses.
func respondFailure(c *gin.Context, route string, err error) {
	logger := log.WithField("route", route).WithError(err)

	if fields, ok := validation.AsFieldErrors(err); ok {
		logger.Info("validation failed")
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation failed",
			"fields": fields,
		})
		return
	}

	var illegal *checkout.IllegalTransitionError
	switch {
	case errors.As(err, &illegal):
		respondWithError(c, http.StatusConflict, route, illegal.Error())
		return
	case errors.Is(err, checkout.ErrCartEmpty):
		respondWithError(c, http.StatusConflict, route, checkout.Message(err))
		return
	case errors.Is(err, checkout.ErrNoAddress),
		errors.Is(err, checkout.ErrNoPaymentMethod),
		errors.Is(err, checkout.ErrUnknownAddress):
		respondWithError(c, http.StatusBadRequest, route, checkout.Message(err))
		return
	case errors.Is(err, cart.ErrItemNotInCart):
		respondWithError(c, http.StatusNotFound, route, "product is not in the cart")
		return
	case errors.Is(err, api.ErrSessionExpired):
		logger.Warn("session expired")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": api.Message(err), "code": "session_expired"})
		return
	case errors.Is(err, api.ErrNotAuthenticated):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": api.Message(err), "code": "not_authenticated"})
		return
	case errors.Is(err, api.ErrRequestFailed):
		status := api.StatusCode(err)
		if status < 400 || status >= 500 {
			status = http.StatusBadGateway
		}
		respondWithError(c, status, route, api.Message(err))
		return
	}

	logger.Error("unexpected failure")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
