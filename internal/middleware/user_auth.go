package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Authenticator reports whether credentials are stored locally.
type Authenticator interface {
	Authenticated(ctx context.Context) bool
}

// RequireSession rejects requests made while nobody is signed in, before
// any remote call is attempted.
func RequireSession(sessions Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessions.Authenticated(c.Request.Context()) {
			log.WithField("component", "AUTH").WithField("path", c.FullPath()).Info("no session")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "not authenticated",
				"code":  "not_authenticated",
			})
			return
		}
		c.Next()
	}
}
