package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Frey210/SiWarga/pkg/response"
)

// MustGetUserID safely extracts user_id from the Gin context.
// If the JWT middleware did not inject it, a 401 is written and ok is false.
// Callers should return immediately when ok is false.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetRole safely extracts role from the Gin context.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// getTokenInfo extracts the token id and expiry injected by the JWT
// middleware. Used by logout to blacklist the current token.
func getTokenInfo(c *gin.Context) (jti string, expiresAt time.Time, ok bool) {
	jv, exists := c.Get("jti")
	if !exists {
		return "", time.Time{}, false
	}
	jti, jok := jv.(string)
	if !jok || jti == "" {
		return "", time.Time{}, false
	}
	ev, exists := c.Get("token_expires_at")
	if !exists {
		return "", time.Time{}, false
	}
	expiresAt, eok := ev.(time.Time)
	if !eok {
		return "", time.Time{}, false
	}
	return jti, expiresAt, true
}
