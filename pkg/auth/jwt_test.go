package auth

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

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	m := NewJWTManager("super-secret")

	token, expiresAt, err := m.GenerateAccessToken("owner@example.com", "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(AccessTokenTTL), expiresAt, time.Minute)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("super-secret")
	m.now = func() time.Time { return time.Now().Add(-13 * time.Hour) }

	token, _, err := m.GenerateAccessToken("owner@example.com", "admin")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	token, _, err := NewJWTManager("right-secret").GenerateAccessToken("owner@example.com", "admin")
	require.NoError(t, err)

	_, err = NewJWTManager("wrong-secret").ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_RejectsNoneAlg(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: "admin",
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTManager("super-secret").ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.NoError(t, VerifyPassword(hash, "correct horse"))
	assert.ErrorIs(t, VerifyPassword(hash, "battery staple"), ErrInvalidCredentials)
	assert.ErrorIs(t, VerifyPassword("", "correct horse"), ErrInvalidCredentials)
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := NewJWTManager("super-secret")
	adminToken, _, err := m.GenerateAccessToken("owner@example.com", "admin")
	require.NoError(t, err)
	staffToken, _, err := m.GenerateAccessToken("staff@example.com", "staff")
	require.NoError(t, err)

	router := gin.New()
	router.GET("/admin", AuthMiddleware(m, nil), RequireRole("admin"), func(c *gin.Context) {
		claims, _ := ClaimsFromContext(c)
		c.JSON(http.StatusOK, gin.H{"email": claims.Email})
	})

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
	}{
		{name: "no header", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc", wantStatus: http.StatusUnauthorized},
		{name: "wrong role", header: "Bearer " + staffToken, wantStatus: http.StatusForbidden},
		{name: "admin", header: "Bearer " + adminToken, wantStatus: http.StatusOK},
		{name: "admin via query", query: "?token=" + adminToken, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
