package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/skillmate/skillmate-api/pkg/helpers"
	"github.com/skillmate/skillmate-api/pkg/response"
)

// Auth validates the access token cookie and ensures an active session with
// a matching session id exists in Redis. On success it sets accountID,
// accountName, and accountEmail in the Gin context.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}

		key := "account:session:" + claims.AccountID
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 {
			response.AbortError(c, http.StatusUnauthorized, "session not found", nil)
			return
		}
		// Token rotation invalidates older session ids.
		if data["sid"] != claims.SessionID {
			response.AbortError(c, http.StatusUnauthorized, "session expired", nil)
			return
		}

		c.Set("accountID", claims.AccountID)
		c.Set("accountName", data["name"])
		c.Set("accountEmail", data["email"])
		c.Next()
	}
}
