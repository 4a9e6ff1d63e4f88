package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGet_NopBeforeInit(t *testing.T) {
	if Get() == nil {
		t.Fatal("Get() returned nil before Init")
	}
}

func TestRequestIDMiddleware_SetsHeaderAndContext(t *testing.T) {
	var seen string
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		seen = c.GetString("request_id")
		if FromContext(c) == nil {
			t.Error("FromContext returned nil")
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))

	header := w.Header().Get("X-Request-ID")
	if header == "" {
		t.Fatal("X-Request-ID header not set")
	}
	if seen != header {
		t.Errorf("context request_id = %q, header = %q", seen, header)
	}
}
