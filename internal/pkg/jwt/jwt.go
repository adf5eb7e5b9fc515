// Package jwt wraps token verification for requests reaching this
// backend. Tokens are issued by the account service; we share its HS256
// secret and only validate.
package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	JWTAuth() *jwtauth.JWTAuth

	// EncodeClaims signs an ad-hoc token. Production tokens come from the
	// account service; this exists for local tooling and tests.
	EncodeClaims(claims map[string]interface{}) (string, error)
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) EncodeClaims(claims map[string]interface{}) (string, error) {
	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, err
}
