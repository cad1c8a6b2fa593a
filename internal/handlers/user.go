package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"storefront/internal/models"
	"storefront/internal/validation"
)

// AddressBook is the remote address API.
type AddressBook interface {
	Addresses(ctx context.Context) ([]models.Address, error)
	CreateAddress(ctx context.Context, input models.AddressInput) (models.Address, error)
	SetDefaultAddress(ctx context.Context, id int64) error
	DeleteAddress(ctx context.Context, id int64) error
}

func GetUserAddresses(book AddressBook) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /addresses"
		defer handlePanic(c, route)

		addresses, err := book.Addresses(c.Request.Context())
		if err != nil {
			respondFailure(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"addresses": addresses})
	}
}

func CreateUserAddress(book AddressBook, validator *validation.AddressValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /addresses"
		defer handlePanic(c, route)

		var input models.AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondValidationError(c, err)
			return
		}
		if err := validator.Validate(&input); err != nil {
			respondFailure(c, route, err)
			return
		}

		address, err := book.CreateAddress(c.Request.Context(), input)
		if err != nil {
			respondFailure(c, route, err)
			return
		}
		log.WithField("component", "ADDRESS").WithField("addressId", address.ID).Info("address created")
		c.JSON(http.StatusCreated, address)
	}
}

func SetDefaultUserAddress(book AddressBook) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /addresses/:id/default"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c, "id")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid address id")
			return
		}
		if err := book.SetDefaultAddress(c.Request.Context(), id); err != nil {
			respondFailure(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "default address updated"})
	}
}

func DeleteUserAddress(book AddressBook) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /addresses/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c, "id")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid address id")
			return
		}
		if err := book.DeleteAddress(c.Request.Context(), id); err != nil {
			respondFailure(c, route, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
