package middleware

import (
	"context"
	"net/http"
	"strings"

	"energen/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ClaimsKey = "claims"
)

// JWTClaims are the custom claims embedded in every token. The access and
// refresh tokens of one login share SesionID.
type JWTClaims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Tipo     string `json:"tipo"`
	SesionID string `json:"sid"`
	jwt.RegisteredClaims
}

// UUID returns the parsed user id; uuid.Nil if the claim is malformed.
func (c *JWTClaims) UUID() uuid.UUID {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// Denylist reports logged-out token and session ids.
type Denylist interface {
	IsRevoked(ctx context.Context, jti string) bool
}

// JWTAuth validates the Bearer access token on every protected route.
// denylist may be nil.
func JWTAuth(secret string, denylist Denylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		// Refresh tokens are only good for /auth/refresh.
		if err != nil || !token.Valid || claims.Tipo == "refresh" || claims.UUID() == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token invalido o expirado"))
			return
		}
		if denylist != nil && (revocado(c, denylist, claims.ID) || revocado(c, denylist, claims.SesionID)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Sesion cerrada"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func revocado(c *gin.Context, d Denylist, id string) bool {
	return id != "" && d.IsRevoked(c.Request.Context(), id)
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *JWTClaims {
	claims, _ := c.MustGet(ClaimsKey).(*JWTClaims)
	return claims
}
