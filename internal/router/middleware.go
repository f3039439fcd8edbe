package router

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/millerserhii/shipment-tracking-api/internal/authz"
	"github.com/millerserhii/shipment-tracking-api/internal/config"
	handlershared "github.com/millerserhii/shipment-tracking-api/internal/http/handlers/shared"
	"github.com/millerserhii/shipment-tracking-api/internal/http/response"
	"github.com/millerserhii/shipment-tracking-api/internal/logger"
	"github.com/millerserhii/shipment-tracking-api/internal/repository"
	"github.com/millerserhii/shipment-tracking-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

const auditBodyProbeLimit = 1 << 20

// CORSMiddleware handles cross-origin headers and preflight.
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware assigns every request an id, honoring one sent
// by the caller.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// AuditLogMiddleware writes one info entry per completed request with
// method, full path, remote address, host name and elapsed time. For
// calls under pathPrefix it also probes the JSON body; malformed JSON
// is ignored, a body that is not valid UTF-8 is warned about. A panic
// in a handler is logged once at error level and re-raised, so the
// completion entry is skipped for it.
func AuditLogMiddleware(log *zap.Logger, pathPrefix string) gin.HandlerFunc {
	if log == nil {
		log = zap.L()
	}
	sugar := log.Sugar()
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return func(c *gin.Context) {
		start := time.Now()

		if pathPrefix == "" || strings.HasPrefix(c.Request.URL.Path, pathPrefix) {
			probeRequestBody(sugar, c)
		}

		defer func() {
			if recovered := recover(); recovered != nil {
				sugar.Errorw("unhandled_exception",
					"request_id", getRequestID(c),
					"method", c.Request.Method,
					"path", c.Request.RequestURI,
					"remote_addr", c.ClientIP(),
					"hostname", hostname,
					"panic", recovered,
					"stack", string(debug.Stack()),
				)
				panic(recovered)
			}
		}()

		c.Next()

		sugar.Infow("request",
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.RequestURI,
			"remote_addr", c.ClientIP(),
			"hostname", hostname,
			"status", c.Writer.Status(),
			"run_time_ms", time.Since(start).Milliseconds(),
		)
	}
}

func probeRequestBody(sugar *zap.SugaredLogger, c *gin.Context) {
	if c.Request == nil || c.Request.Body == nil {
		return
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, auditBodyProbeLimit))
	if err != nil {
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	if len(body) == 0 {
		return
	}
	if !utf8.Valid(body) {
		sugar.Warnw("request_body_not_utf8",
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.RequestURI,
		)
		return
	}
	// Decode failures are expected for non-JSON payloads and carry no
	// signal worth logging.
	var payload interface{}
	_ = json.Unmarshal(body, &payload)
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// AuthRequiredMiddleware rejects requests without a valid bearer
// token. The principal is loaded fresh from storage so a revoked
// superuser flag takes effect immediately.
func AuthRequiredMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := resolvePrincipal(c, secretKey, userRepo)
		if !ok {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		handlershared.SetPrincipal(c, principal)
		c.Next()
	}
}

// AuthOptionalMiddleware resolves the principal when a valid token is
// present and lets the request through anonymously otherwise.
func AuthOptionalMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if principal, ok := resolvePrincipal(c, secretKey, userRepo); ok {
			handlershared.SetPrincipal(c, principal)
		}
		c.Next()
	}
}

// SuperuserRequiredMiddleware gates the admin surface.
func SuperuserRequiredMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := handlershared.GetPrincipal(c)
		if !principal.IsSuperuser {
			logger.Warnw("superuser_required_denied",
				"request_id", getRequestID(c),
				"user_id", principal.ID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)
			response.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func resolvePrincipal(c *gin.Context, secretKey string, userRepo repository.UserRepository) (authz.Principal, bool) {
	if secretKey == "" || userRepo == nil {
		return authz.Principal{}, false
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return authz.Principal{}, false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return authz.Principal{}, false
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &service.JWTClaims{}
	token, err := parser.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return authz.Principal{}, false
	}

	user, err := userRepo.GetByID(claims.UserID)
	if err != nil || user == nil {
		return authz.Principal{}, false
	}
	return authz.Principal{
		ID:          user.ID,
		Email:       user.Email,
		IsSuperuser: user.IsSuperuser,
	}, true
}
