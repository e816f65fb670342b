package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RayyanKhan4004/PEMPAK-api/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	router := gin.New()
	router.Use(NewRateLimiter(2, time.Minute).Middleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i, want := range []int{200, 200, 429} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.10:1234"
		router.ServeHTTP(w, req)
		if w.Code != want {
			t.Errorf("request %d: status = %d, want %d", i+1, w.Code, want)
		}
	}
}

func TestTimeoutInstallsDeadline(t *testing.T) {
	router := gin.New()
	router.Use(Timeout())
	router.GET("/", func(c *gin.Context) {
		deadline, ok := c.Request.Context().Deadline()
		if !ok {
			t.Error("expected a request deadline")
		}
		if remaining := time.Until(deadline); remaining > RequestBudget {
			t.Errorf("deadline %v away, want <= %v", remaining, RequestBudget)
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestJWTMiddleware(t *testing.T) {
	const secret = "test-secret"

	router := gin.New()
	router.GET("/me", JWT(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString("email")})
	})

	token, err := utils.SignedToken(secret, "user-1", "a@x.com")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"bearer header", "Bearer " + token, "", http.StatusOK},
		{"cookie fallback", "", token, http.StatusOK},
		{"missing token", "", "", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "Bearer", Value: tt.cookie})
			}
			router.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
