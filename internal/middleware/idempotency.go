package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyHeader = "Idempotency-Key"

	// Replays are honored for a day, long enough to cover client retry
	// loops around booking and payment submissions.
	idempotencyTTL = 24 * time.Hour
)

// storedResponse is the replayable form of a completed response.
type storedResponse struct {
	StatusCode int             `json:"status_code"`
	Body       json.RawMessage `json:"body"`
}

// bodyCapture duplicates everything written to the client into a buffer.
type bodyCapture struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// idempotencyCacheKey scopes a client-supplied key to one method and path.
// The same key sent to a different endpoint, or for a different resource,
// must never replay this response.
func idempotencyCacheKey(method, path, key string) string {
	return "idempotency:" + method + ":" + path + ":" + key
}

// IdempotencyMiddleware replays the stored response for a mutating request
// that carries an Idempotency-Key header already seen on the same endpoint.
// Server errors are not stored, so a failed attempt stays retryable.
func IdempotencyMiddleware(redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := idempotencyCacheKey(c.Request.Method, c.Request.URL.Path, key)

		data, err := redisClient.Get(ctx, cacheKey).Bytes()
		if err != nil && err != redis.Nil {
			// Redis trouble never blocks the request itself.
			c.Next()
			return
		}

		if err == nil {
			var stored storedResponse
			if json.Unmarshal(data, &stored) == nil {
				c.Data(stored.StatusCode, "application/json", stored.Body)
				c.Abort()
				return
			}
		}

		w := &bodyCapture{ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if status := c.Writer.Status(); status >= 200 && status < 500 {
			payload, err := json.Marshal(storedResponse{
				StatusCode: status,
				Body:       w.buf.Bytes(),
			})
			if err != nil {
				return
			}
			_ = redisClient.Set(ctx, cacheKey, payload, idempotencyTTL).Err()
		}
	}
}
