package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/VCSTDN/PROG6212-Part-2-SikhumbuzoNgwane/pkg/logger"
	"github.com/gin-gonic/gin"
)

func newRequestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID())
	router.GET("/Home/ClaimStatus", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"claims": []any{}, "request_id": GetRequestID(c)})
	})
	return router
}

func TestRequestIDGenerated(t *testing.T) {
	router := newRequestIDRouter()

	req := httptest.NewRequest("GET", "/Home/ClaimStatus", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("Expected X-Request-ID header to be set")
	}
}

func TestRequestIDHonorsCallerSuppliedID(t *testing.T) {
	router := newRequestIDRouter()

	existingID := "form-retry-7c1d"
	req := httptest.NewRequest("GET", "/Home/ClaimStatus", nil)
	req.Header.Set(RequestIDHeader, existingID)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if responseID := w.Header().Get(RequestIDHeader); responseID != existingID {
		t.Errorf("Expected request ID '%s', got '%s'", existingID, responseID)
	}
}

func TestRequestIDReachesRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var fromContext string
	router := gin.New()
	router.Use(RequestID())
	router.GET("/Home/ClaimStatus", func(c *gin.Context) {
		fromContext, _ = c.Request.Context().Value(logger.RequestIDKey).(string)
		c.JSON(http.StatusOK, gin.H{"claims": []any{}})
	})

	req := httptest.NewRequest("GET", "/Home/ClaimStatus", nil)
	req.Header.Set(RequestIDHeader, "ctx-check-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if fromContext != "ctx-check-42" {
		t.Errorf("Expected request id in request context, got '%s'", fromContext)
	}
}

func TestGetRequestIDEmpty(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if requestID := GetRequestID(c); requestID != "" {
		t.Errorf("Expected empty string, got '%s'", requestID)
	}
}
