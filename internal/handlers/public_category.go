package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetCategories(catalog Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /categories"
		defer handlePanic(c, route)

		categories, err := catalog.Categories(c.Request.Context())
		if err != nil {
			respondFailure(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": categories})
	}
}
