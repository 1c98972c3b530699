package middleware

import (
	"net/http"

	"github.com/contentcraft/contentcraft-api/pkg/api"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler is a custom error handling middleware that handles all errors returned by handlers
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// check if there is an error, if so, get the last error
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err

			// first, we need to check if it's a custom error
			if problem, ok := err.(*api.Problem); ok {
				// if there is an internal log attached, log it
				if problem.Log != nil {
					logger.Error("request failed",
						zap.Int("status", problem.Status),
						zap.String("title", problem.Title),
						zap.Error(problem.Log),
					)
				}

				// RFC 9457 dictates the json is at the root
				c.JSON(problem.Status, problem)
				c.Abort()
				return
			}

			// at this point it's an unknown error.
			// we just should to 500 for catch-all server error
			logger.Error("unhandled error", zap.Error(err))

			// send the JSON response in a standard error shape
			c.JSON(http.StatusInternalServerError, api.NewError(
				http.StatusInternalServerError,
				"Internal Server Error",
				"An unexpected error occurred.",
			))

			// we want to prevent the other middleware from writing to the response
			c.Abort()
		}
	}
}
