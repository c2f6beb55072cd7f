package http

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// shareTokenFromRequest toma el token del body o, si falta, del header
// Authorization: Bearer.
func shareTokenFromRequest(c *gin.Context, fromBody string) string {
	if token := strings.TrimSpace(fromBody); token != "" {
		return token
	}
	return bearerToken(c)
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[len("Bearer "):])
}

// requestOrigin arma scheme://host del request, respetando X-Forwarded-Proto.
func requestOrigin(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := strings.TrimSpace(c.GetHeader("X-Forwarded-Proto")); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	host := c.Request.Host
	if host == "" {
		return ""
	}
	return scheme + "://" + host
}
