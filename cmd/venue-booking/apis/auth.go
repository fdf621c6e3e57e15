package apis

import (
	"net/http"
	"strings"
	"venue-booking-backend/cmd/venue-booking/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	RoleAdmin = "admin"
	RoleClub  = "club"

	claimsKey = "claims"
)

// Claims is what the login service puts in the bearer token. Tokens are only
// verified here, never issued.
type Claims struct {
	Role     string `json:"role"`
	ClubName string `json:"clubName,omitempty"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
	}
}

// Require rejects requests without a valid HS256 bearer token carrying role.
func (a *Authenticator) Require(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			if !ok || raw == "" {
				return c.JSON(
					http.StatusUnauthorized,
					model.BaseResponse{
						Message: "missing bearer token",
					},
				)
			}

			claims := &Claims{}
			_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
				return a.secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil {
				return c.JSON(
					http.StatusUnauthorized,
					model.BaseResponse{
						Message: "invalid token",
					},
				)
			}

			if claims.Role != role {
				return c.JSON(
					http.StatusForbidden,
					model.BaseResponse{
						Message: "insufficient role",
					},
				)
			}
			if role == RoleClub && claims.ClubName == "" {
				return c.JSON(
					http.StatusForbidden,
					model.BaseResponse{
						Message: "token has no club",
					},
				)
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// Sign issues a token for the given role. The service itself only needs it
// for tests and local tooling.
func (a *Authenticator) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func claimsFrom(c echo.Context) *Claims {
	claims, _ := c.Get(claimsKey).(*Claims)
	if claims == nil {
		return &Claims{}
	}
	return claims
}
