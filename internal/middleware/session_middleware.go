package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/session"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/utils"
)

const sessionKey = "session"

// SessionMiddleware resolves the caller's session from the bearer token.
// Requests without a token continue as anonymous.
type SessionMiddleware struct {
	parser      *session.TokenParser
	rateLimiter *InvalidAuthRateLimiter
}

// NewSessionMiddleware constructs a new SessionMiddleware.
func NewSessionMiddleware(parser *session.TokenParser, rateLimiter *InvalidAuthRateLimiter) *SessionMiddleware {
	return &SessionMiddleware{parser: parser, rateLimiter: rateLimiter}
}

// Handle returns a Gin middleware function that attaches the session.
func (m *SessionMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				m.handleAuthError(c, "UNAUTHORIZED", "Invalid authorization header")
				return
			}
			token = parts[1]
		}

		sess, err := m.parser.Parse(token)
		if err != nil {
			m.handleAuthError(c, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set(sessionKey, sess)
		if auth, ok := session.Auth(sess); ok {
			c.Set("user_id", auth.UserID)
		}
		c.Next()
	}
}

// RequireAuth rejects anonymous callers.
func (m *SessionMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.IsAuthenticated(GetSession(c)) {
			utils.Error(c, 401, "UNAUTHORIZED", "Sign in required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (m *SessionMiddleware) handleAuthError(c *gin.Context, code, message string) {
	// Apply rate limit for invalid auth attempts
	ip := c.ClientIP()
	if !m.rateLimiter.Allow(ip) {
		utils.Error(c, 429, "TOO_MANY_REQUESTS", "Too many invalid authentication attempts")
		c.Abort()
		return
	}

	utils.Error(c, 401, code, message)
	c.Abort()
}

// GetSession returns the caller's session from context, anonymous when none
// was attached.
func GetSession(c *gin.Context) session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return session.Anonymous{}
	}
	sess, ok := v.(session.Session)
	if !ok {
		return session.Anonymous{}
	}
	return sess
}
