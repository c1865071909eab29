package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identity("demo-user"))
	var seen string
	r.GET("/me", func(c *gin.Context) { seen = c.GetString("userID"); c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/me", nil))
	if seen != "demo-user" {
		t.Fatalf("default user = %q", seen)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(HeaderUserID, "  user-7 ")
	r.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "user-7" {
		t.Fatalf("header user = %q", seen)
	}

	up := gin.New()
	up.Use(func(c *gin.Context) { c.Set("userID", "authn"); c.Next() }, Identity("demo-user"))
	up.GET("/me", func(c *gin.Context) { seen = c.GetString("userID") })
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(HeaderUserID, "ignored")
	up.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "authn" {
		t.Fatalf("upstream identity must win, got %q", seen)
	}
}
