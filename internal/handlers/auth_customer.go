package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"storefront/internal/cart"
	"storefront/internal/models"
)

// Accounts is the remote account API.
type Accounts interface {
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)
	Logout(ctx context.Context) error
}

// Sessions is the local credential store.
type Sessions interface {
	SaveLogin(ctx context.Context, tokens models.AuthTokens, user *models.User) error
	Clear(ctx context.Context) error
	User(ctx context.Context) (*models.User, error)
	Authenticated(ctx context.Context) bool
	LastOrder(ctx context.Context) (*models.CompletedOrder, error)
}

func respondValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": details,
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func Register(accounts Accounts, sessions Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/register"
		defer handlePanic(c, route)

		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))

		resp, err := accounts.Register(c.Request.Context(), req)
		if err != nil {
			respondFailure(c, route, err)
			return
		}

		if tokens := resp.Tokens(); !tokens.Empty() {
			if err := sessions.SaveLogin(c.Request.Context(), tokens, resp.User); err != nil {
				respondFailure(c, route, err)
				return
			}
		}

		log.WithField("component", "AUTH").Info("account registered")
		c.JSON(http.StatusCreated, gin.H{"message": resp.Message, "user": resp.User})
	}
}

// Login signs in against the remote store and primes the cart mirror.
func Login(accounts Accounts, sessions Sessions, carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/login"
		defer handlePanic(c, route)

		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		resp, err := accounts.Login(c.Request.Context(), req)
		if err != nil {
			respondFailure(c, route, err)
			return
		}

		tokens := resp.Tokens()
		if tokens.Empty() {
			respondWithError(c, http.StatusBadGateway, route, "store did not return a token")
			return
		}
		if err := sessions.SaveLogin(c.Request.Context(), tokens, resp.User); err != nil {
			respondFailure(c, route, err)
			return
		}

		logger := log.WithField("component", "AUTH")
		if _, err := carts.LoadCart(c.Request.Context()); err != nil {
			logger.WithError(err).Warn("cart load after login failed")
		}
		logger.Info("user signed in")

		c.JSON(http.StatusOK, gin.H{
			"message":   resp.Message,
			"user":      resp.User,
			"cartCount": carts.Store().Count(),
		})
	}
}

// Logout always clears local credentials, even if the remote call fails.
func Logout(accounts Accounts, sessions Sessions, store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/logout"
		defer handlePanic(c, route)

		logger := log.WithField("component", "AUTH")
		if err := accounts.Logout(c.Request.Context()); err != nil {
			logger.WithError(err).Warn("remote logout failed")
		}
		if err := sessions.Clear(c.Request.Context()); err != nil {
			respondFailure(c, route, err)
			return
		}
		store.Reset()

		c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
	}
}

func GetMe(sessions Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /auth/me"
		defer handlePanic(c, route)

		user, err := sessions.User(c.Request.Context())
		if err != nil {
			respondFailure(c, route, err)
			return
		}
		if user == nil {
			respondWithError(c, http.StatusNotFound, route, "user not found")
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
