package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/preplock/internal/logger"
)

const (
	// OwnerHeader carries the caller's user id.
	OwnerHeader = "X-User-ID"
	ownerKey    = "owner_id"
)

var errMissingOwner = errors.New("missing " + OwnerHeader + " header")

// RequireOwner rejects requests without an owner header.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := strings.TrimSpace(c.GetHeader(OwnerHeader))
		if owner == "" {
			RespondError(c, http.StatusUnauthorized, codeUnauthorized, errMissingOwner)
			return
		}
		c.Set(ownerKey, owner)
		c.Next()
	}
}

func ownerID(c *gin.Context) string {
	return c.GetString(ownerKey)
}

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []any{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if owner := ownerID(c); owner != "" {
			fields = append(fields, "user_id", owner)
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
