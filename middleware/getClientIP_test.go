package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newIPContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/api/ai/chat", nil)
	return c
}

func TestGetClientIPPrefersForwardedFor(t *testing.T) {
	c := newIPContext(t)
	c.Request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	c.Request.Header.Set("X-Real-IP", "10.0.0.2")

	assert.Equal(t, "203.0.113.7", getClientIP(c))
}

func TestGetClientIPFallsBackToRealIP(t *testing.T) {
	c := newIPContext(t)
	c.Request.Header.Set("X-Real-IP", "203.0.113.9")

	assert.Equal(t, "203.0.113.9", getClientIP(c))
}

func TestGetClientIPStripsPortFromRemoteAddr(t *testing.T) {
	c := newIPContext(t)
	c.Request.RemoteAddr = "198.51.100.4:51442"

	assert.Equal(t, "198.51.100.4", getClientIP(c))
}
