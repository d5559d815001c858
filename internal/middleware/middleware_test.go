package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-jwt-secret-key-32-characters")

func signToken(t *testing.T, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func setupProtectedRouter(requiredRole string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := []gin.HandlerFunc{JWTAuth(testSecret)}
	if requiredRole != "" {
		handlers = append(handlers, RequireRole(requiredRole))
	}
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := c.Get("userID")
		role, _ := c.Get("userRole")
		authType, _ := c.Get("auth_type")
		c.JSON(http.StatusOK, gin.H{
			"userID":    userID,
			"userRole":  role,
			"auth_type": authType,
		})
	})

	router.GET("/protected", handlers...)
	return router
}

func doRequest(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthAcceptsDashboardToken(t *testing.T) {
	router := setupProtectedRouter("")

	// Dashboard login tokens carry uid as a JSON number
	token := signToken(t, jwt.MapClaims{
		"uid":      1,
		"username": "admin",
		"role":     "admin",
		"exp":      time.Now().Add(time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	})

	w := doRequest(router, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"auth_type":"jwt"`)
}

func TestJWTAuthAcceptsOAuthToken(t *testing.T) {
	router := setupProtectedRouter("")

	// OAuth2 access tokens carry uid as a numeric string and an aud claim
	token := signToken(t, jwt.MapClaims{
		"uid":  "7",
		"aud":  "kitchen_display",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	w := doRequest(router, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"auth_type":"oauth2"`)
}

func TestJWTAuthRejectsBadRequests(t *testing.T) {
	router := setupProtectedRouter("")

	testCases := []struct {
		name          string
		authorization string
	}{
		{name: "missing header", authorization: ""},
		{name: "not bearer scheme", authorization: "Basic abc"},
		{name: "empty bearer token", authorization: "Bearer "},
		{name: "garbage token", authorization: "Bearer not.a.jwt"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.authorization)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	router := setupProtectedRouter("")

	token := signToken(t, jwt.MapClaims{
		"uid":  1,
		"role": "admin",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	router := setupProtectedRouter("")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":  1,
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("another-secret-entirely"))
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRequiresClaims(t *testing.T) {
	router := setupProtectedRouter("")

	t.Run("missing uid", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"role": "admin",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		w := doRequest(router, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing role", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"uid": 1,
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		w := doRequest(router, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown role", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"uid":  1,
			"role": "superuser",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		w := doRequest(router, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRoleBlocksNonAdmins(t *testing.T) {
	router := setupProtectedRouter("admin")

	userToken := signToken(t, jwt.MapClaims{
		"uid":  2,
		"role": "user",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	w := doRequest(router, "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken := signToken(t, jwt.MapClaims{
		"uid":  1,
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	w = doRequest(router, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
