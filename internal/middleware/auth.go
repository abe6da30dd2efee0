package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phynetix/grading-api/config"
	"github.com/phynetix/grading-api/internal/dto"
	"github.com/rs/zerolog/log"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// claims mirrors a Supabase access token. The role lives in app_metadata on
// hosted projects and in a top-level user_role claim when a custom access
// token hook is used.
type claims struct {
	UserRole    string `json:"user_role,omitempty"`
	AppMetadata struct {
		Role string `json:"role,omitempty"`
	} `json:"app_metadata"`
	jwt.RegisteredClaims
}

func (c *claims) role() string {
	if c.AppMetadata.Role != "" {
		return c.AppMetadata.Role
	}
	return c.UserRole
}

// AuthMiddleware validates the bearer token and sets the caller's user id and
// role on the gin context.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	secret := []byte(cfg.Auth.JWTSecret)
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Auth.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Auth.Issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
			return
		}

		tokenClaims := &claims{}
		token, err := parser.ParseWithClaims(strings.TrimSpace(parts[1]), tokenClaims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			reason := "invalid token"
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				reason = "token expired"
			case errors.Is(err, jwt.ErrTokenSignatureInvalid):
				reason = "bad signature"
			case errors.Is(err, jwt.ErrTokenInvalidIssuer):
				reason = "wrong issuer"
			}
			log.Warn().Err(err).Str("reason", reason).Str("path", c.Request.URL.Path).Msg("AuthMiddleware: Token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
			return
		}

		userID, err := uuid.Parse(tokenClaims.Subject)
		if err != nil || userID == uuid.Nil {
			log.Warn().Str("sub", tokenClaims.Subject).Msg("AuthMiddleware: Subject is not a user id")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, tokenClaims.role())
		c.Next()
	}
}

// RequireRole lets the request through only when the authenticated role is
// one of roles. It must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		log.Warn().Str("role", role).Strs("required", roles).Str("path", c.Request.URL.Path).Msg("RequireRole: Insufficient permissions")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "Forbidden"})
	}
}

// UserIDFromContext returns the authenticated user id, or uuid.Nil when the
// request did not pass AuthMiddleware.
func UserIDFromContext(c *gin.Context) uuid.UUID {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
