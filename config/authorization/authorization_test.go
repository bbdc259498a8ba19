package authorization

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwt "SehatCare/config/jwt"
	"SehatCare/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/doctor-only", JWTAuth(), Authorize("doctor"), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(util.CtxUserID))
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	jwt.Configure("secret", time.Hour)
	r := newRouter()

	doctorToken, err := jwt.GenerateJWT("doc-1", "doc@example.com", "doctor")
	require.NoError(t, err)
	userToken, err := jwt.GenerateJWT("user-1", "user@example.com", "user")
	require.NoError(t, err)

	cases := []struct {
		name   string
		setup  func(*http.Request)
		status int
	}{
		{"no token", func(*http.Request) {}, http.StatusUnauthorized},
		{"garbage token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"wrong role", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+userToken) }, http.StatusForbidden},
		{"bearer doctor", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+doctorToken) }, http.StatusOK},
		{"cookie doctor", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: util.TokenCookie, Value: doctorToken}) }, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/doctor-only", nil)
			tc.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "doc-1", w.Body.String())
			}
		})
	}
}
