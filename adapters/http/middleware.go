package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/auth"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

const (
	GinContextKeyUserID        = "userID"
	GinContextKeyTokenID       = "tokenID"
	GinContextKeyTokenExpiry   = "tokenExpiry"
	GinContextKeyCorrelationID = "correlationID"
	GinContextKeyLogger        = "requestLogger"

	HeaderCorrelationID = "X-Correlation-ID"
)

// ErrorMiddleware renders the last error a handler pushed with c.Error.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr := apperror.From(err)
		status := apperror.ToHTTPStatus(appErr)

		reqLog := LoggerFromContext(c, log)
		if status >= http.StatusInternalServerError {
			reqLog.Error("Request failed", err, zap.Int("status", status))
		} else {
			reqLog.Warn("Request rejected", zap.Int("status", status), zap.String("details", appErr.Details))
		}

		c.JSON(status, appErr.ToJSON())
	}
}

// AuthMiddleware admits requests carrying a valid, unrevoked admin token.
func AuthMiddleware(jwtSvc *auth.JWTService, revoker service.TokenRevoker, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWith(c, apperror.NewTokenRejected("authorization header is required", nil))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			abortWith(c, apperror.NewTokenRejected("invalid token format", nil))
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			abortWith(c, apperror.NewTokenRejected("invalid or expired token", err))
			return
		}

		revoked, err := revoker.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			log.Error("Token revocation check failed", err, zap.String("jti", claims.ID))
			abortWith(c, apperror.NewInternal("token revocation check failed", err))
			return
		}
		if revoked {
			abortWith(c, apperror.NewTokenRejected("token has been revoked", nil))
			return
		}

		if !claims.IsAdmin {
			abortWith(c, apperror.NewPermissionDenied("admin role required"))
			return
		}

		c.Set(GinContextKeyUserID, claims.UserID)
		c.Set(GinContextKeyTokenID, claims.ID)
		c.Set(GinContextKeyTokenExpiry, claims.ExpiresAt.Time)

		c.Next()
	}
}

func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func GetUserIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(GinContextKeyUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func getTokenFromGinContext(c *gin.Context) (string, time.Time, bool) {
	jti := c.GetString(GinContextKeyTokenID)
	exp, ok := c.Get(GinContextKeyTokenExpiry)
	if jti == "" || !ok {
		return "", time.Time{}, false
	}
	expiry, ok := exp.(time.Time)
	return jti, expiry, ok
}

func CorrelationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderCorrelationID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(GinContextKeyCorrelationID, id)
		c.Header(HeaderCorrelationID, id)
		c.Next()
	}
}

// RequestLoggerMiddleware attaches a request-scoped logger and logs completion.
func RequestLoggerMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		reqLog := log.With(
			zap.String("correlation_id", c.GetString(GinContextKeyCorrelationID)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
		)
		c.Set(GinContextKeyLogger, reqLog)

		start := time.Now()
		c.Next()

		reqLog.Info("request completed",
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

func LoggerFromContext(c *gin.Context, fallback logger.Logger) logger.Logger {
	if v, ok := c.Get(GinContextKeyLogger); ok {
		if l, ok := v.(logger.Logger); ok {
			return l
		}
	}
	return fallback
}

// BodyLimitMiddleware caps request bodies. Multipart overhead is allowed on
// top of the upload limit.
func BodyLimitMiddleware(maxUploadBytes int64) gin.HandlerFunc {
	limit := maxUploadBytes + 1<<20
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Window() time.Duration
}

// RateLimitMiddleware limits requests per client IP. When the limiter backend
// is unavailable the request is let through and a warning is logged.
func RateLimitMiddleware(limiter RateLimiter, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			LoggerFromContext(c, log).Warn("Rate limiter unavailable, allowing request", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			messagesRateLimited.Inc()
			c.Header("Retry-After", strconv.Itoa(int(limiter.Window().Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "too many requests",
				"message": "Too many messages, please try again later",
			})
			return
		}
		c.Next()
	}
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
