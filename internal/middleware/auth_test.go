package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phynetix/grading-api/config"
	"github.com/phynetix/grading-api/internal/dto"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func newRouter(cfg *config.Config, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(cfg)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserIDFromContext(c).String(), "role": c.GetString(ContextUserRole)})
	})
	r.GET("/me", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	future := time.Now().Add(time.Hour).Unix()
	cfg := &config.Config{Auth: config.Auth{JWTSecret: testSecret, Issuer: "https://project.supabase.co/auth/v1"}}

	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{
			name:    "missing header",
			header:  "",
			status:  http.StatusUnauthorized,
			message: "Missing authorization header",
		},
		{
			name:    "not a bearer token",
			header:  "Basic dXNlcjpwYXNz",
			status:  http.StatusUnauthorized,
			message: "Unauthorized",
		},
		{
			name:    "garbage token",
			header:  "Bearer not.a.jwt",
			status:  http.StatusUnauthorized,
			message: "Unauthorized",
		},
		{
			name:    "wrong secret",
			header:  "Bearer " + signToken(t, "another-secret", jwt.MapClaims{"sub": userID.String(), "exp": future, "iss": cfg.Auth.Issuer}),
			status:  http.StatusUnauthorized,
			message: "Unauthorized",
		},
		{
			name:    "expired",
			header:  "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": userID.String(), "exp": time.Now().Add(-time.Minute).Unix(), "iss": cfg.Auth.Issuer}),
			status:  http.StatusUnauthorized,
			message: "Unauthorized",
		},
		{
			name:    "no expiry",
			header:  "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": userID.String(), "iss": cfg.Auth.Issuer}),
			status:  http.StatusUnauthorized,
			message: "Unauthorized",
		},
		{
			name:    "wrong issuer",
			header:  "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": userID.String(), "exp": future, "iss": "someone-else"}),
			status:  http.StatusUnauthorized,
			message: "Unauthorized",
		},
		{
			name:    "subject is not a uuid",
			header:  "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": "student@example.com", "exp": future, "iss": cfg.Auth.Issuer}),
			status:  http.StatusUnauthorized,
			message: "Unauthorized",
		},
		{
			name:   "valid token",
			header: "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": userID.String(), "exp": future, "iss": cfg.Auth.Issuer}),
			status: http.StatusOK,
		},
	}

	router := newRouter(cfg)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tc.status, w.Body.String())
			}
			if tc.status != http.StatusOK {
				var body dto.ErrorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("decode body: %v", err)
				}
				if body.Error != tc.message {
					t.Errorf("error = %q, want %q", body.Error, tc.message)
				}
				return
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["user_id"] != userID.String() {
				t.Errorf("user_id = %q, want %q", body["user_id"], userID)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	cfg := &config.Config{Auth: config.Auth{JWTSecret: testSecret}}
	router := newRouter(cfg, RequireRole("admin"))
	future := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name   string
		claims jwt.MapClaims
		status int
	}{
		{name: "app_metadata role", claims: jwt.MapClaims{"sub": uuid.NewString(), "exp": future, "app_metadata": map[string]interface{}{"role": "admin"}}, status: http.StatusOK},
		{name: "user_role claim", claims: jwt.MapClaims{"sub": uuid.NewString(), "exp": future, "user_role": "admin"}, status: http.StatusOK},
		{name: "student", claims: jwt.MapClaims{"sub": uuid.NewString(), "exp": future, "user_role": "student"}, status: http.StatusForbidden},
		{name: "no role", claims: jwt.MapClaims{"sub": uuid.NewString(), "exp": future}, status: http.StatusForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, tc.claims))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tc.status, w.Body.String())
			}
		})
	}
}

func TestUserIDFromContext_Unauthenticated(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := UserIDFromContext(c); got != uuid.Nil {
		t.Errorf("UserIDFromContext() = %s, want nil uuid", got)
	}
}
