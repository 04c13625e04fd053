package main

import (
	"errors"
	"time"

	"skywatch/models"
	"skywatch/reports"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type authClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// signJWT creates an HS256 token carrying the user id and role, 24h expiry.
func signJWT(secret string, userID primitive.ObjectID, role models.Role) (string, error) {
	now := time.Now()
	claims := authClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.Hex(),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "skywatch",
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// parseJWT validates the token and returns the caller identity.
func parseJWT(secret, tokenStr string) (reports.Identity, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &authClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return reports.Identity{}, errors.New("invalid token")
	}
	claims, ok := tok.Claims.(*authClaims)
	if !ok || claims.Subject == "" || claims.Role == "" {
		return reports.Identity{}, errors.New("invalid claims")
	}
	uid, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return reports.Identity{}, errors.New("invalid subject")
	}
	return reports.Identity{ID: uid, Role: models.Role(claims.Role)}, nil
}
