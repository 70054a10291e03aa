package utils

import (
	"time"

	"github.com/golang-jwt/jwt"
)

// Claims is the token payload. Downstream authorization trusts these fields.
type Claims struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phonenumber"`
	Role        string `json:"role"`
	jwt.StandardClaims
}

// GenerateJWT signs a token carrying the user's identity and role.
func GenerateJWT(secret string, expires time.Duration, name, email, phone, role string) (string, error) {
	claims := &Claims{
		Name:        name,
		Email:       email,
		PhoneNumber: phone,
		Role:        role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(expires).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateJWT verifies the signature and standard claims.
func ValidateJWT(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}

// DecodeJWT extracts the claims without verifying the signature. Only use it
// behind the authentication middleware, which has already validated the token.
func DecodeJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := &jwt.Parser{}
	_, _, err := parser.ParseUnverified(tokenString, claims)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
