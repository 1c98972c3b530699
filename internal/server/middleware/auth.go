package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/contentcraft/contentcraft-api/pkg/api"
	"github.com/gin-gonic/gin"
)

// Auth checks for a valid Bearer token in the Authorization header against
// the configured static keys. With no keys configured the API is open,
// which is the expected mode for a single-tenant deployment behind a
// private network.
func Auth(staticKeys []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(staticKeys) == 0 {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Missing Authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Invalid Authorization header format")
			return
		}

		token := parts[1]
		for _, k := range staticKeys {
			if subtle.ConstantTimeCompare([]byte(token), []byte(k)) == 1 {
				c.Next()
				return
			}
		}

		abortUnauthorized(c, "Invalid API key")
	}
}

func abortUnauthorized(c *gin.Context, detail string) {
	problem := api.NewError(401, "Unauthorized", detail)
	c.AbortWithStatusJSON(problem.Status, problem)
}
