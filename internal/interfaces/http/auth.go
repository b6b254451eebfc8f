package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/branchbooks/reviewd/internal/domain/review"
)

const actorContextKey = "actor"

// TokenVerifier turns a bearer token into an Actor. The review core only
// ever sees the resulting capability assertion; how tokens are issued is
// outside this service.
type TokenVerifier interface {
	Verify(token string) (review.Actor, error)
}

// JWTVerifier verifies HMAC-signed tokens carrying the caller identity and
// admin flag
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a verifier for the given signing secret
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

type actorClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// Verify parses and validates the token, returning the embedded actor
func (v *JWTVerifier) Verify(token string) (review.Actor, error) {
	var claims actorClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return review.Actor{}, fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return review.Actor{}, fmt.Errorf("invalid token")
	}

	return review.Actor{ID: claims.Subject, Admin: claims.Admin}, nil
}

// authMiddleware authenticates the caller and stores the resulting Actor in
// the request context. It does not authorize: the admin gate belongs to the
// services, so an authenticated non-admin still reaches them and receives
// Forbidden there.
func authMiddleware(verifier TokenVerifier, logger Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "missing bearer token",
			})
			return
		}

		actor, err := verifier.Verify(token)
		if err != nil {
			logger.Info("Rejected token", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "invalid token",
			})
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// actorFrom retrieves the authenticated Actor from the request context
func actorFrom(c *gin.Context) review.Actor {
	if v, ok := c.Get(actorContextKey); ok {
		if actor, ok := v.(review.Actor); ok {
			return actor
		}
	}
	return review.Actor{}
}
