package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"tiktok-planner/infrastructure/logger"
	"tiktok-planner/infrastructure/metrics"

	"github.com/gin-gonic/gin"
)

// hashIP returns a short irreversible prefix so requests can be correlated
// without logging raw client addresses.
func hashIP(ip string) string {
	h := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(h[:])[:12]
}

// RequestLogger logs each request through logrus and records it in the
// request metrics. Query strings are not logged.
func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		elapsed := time.Since(start)
		status := ctx.Writer.Status()
		metrics.ObserveRequest(ctx.Request.Method, ctx.FullPath(), status, elapsed)

		entry := logger.GetLogger().
			WithField("method", ctx.Request.Method).
			WithField("path", ctx.Request.URL.Path).
			WithField("status", status).
			WithField("duration_ms", elapsed.Milliseconds()).
			WithField("ip_hash", hashIP(ctx.ClientIP())).
			WithField("bytes_sent", ctx.Writer.Size())

		switch {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}
