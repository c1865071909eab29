package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// HeaderUserID lets callers act on behalf of a specific user. There is no
// authentication layer; absent the header the configured demo user is used.
const HeaderUserID = "X-User-ID"

// ctxKeyUserID is shared with the handlers and the rate limiter.
const ctxKeyUserID = "userID"

// Identity resolves the acting user for each request and stores it under
// the "userID" context key. A value already set upstream wins.
func Identity(defaultUser string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userIDFromCtx(c) == "" {
			uid := strings.TrimSpace(c.GetHeader(HeaderUserID))
			if uid == "" {
				uid = defaultUser
			}
			c.Set(ctxKeyUserID, uid)
		}
		c.Next()
	}
}

// userIDFromCtx returns the user stored by Identity, or "" when unset.
func userIDFromCtx(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
