package middleware

import (
	"time"

	"post_service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoggerMiddleware 请求日志中间件
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		cost := time.Since(start)
		traceID, _ := c.Get("traceID")

		logger.Log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.String("ip", c.ClientIP()),
			zap.Duration("cost", cost),
			zap.Any("traceID", traceID),
		)

		// 聚合 gin 收集到的错误，避免静默丢失
		for _, e := range c.Errors.Errors() {
			logger.Log.Error("request error",
				zap.String("path", path),
				zap.String("error", e),
			)
		}
	}
}
