package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// resetAudience scopes reset tokens so a session token can never be
// redeemed as a password reset and vice versa.
const resetAudience = "password-reset"

// defaultResetTTL bounds how long a reset link stays redeemable.
const defaultResetTTL = time.Hour

// ResetClaims carries the account email a reset token was issued for.
type ResetClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateResetToken creates a short-lived password-reset token.
func GenerateResetToken(cfg *JWTConfig, email string) (string, error) {
	ttl := cfg.ResetTTL
	if ttl <= 0 {
		ttl = defaultResetTTL
	}
	now := time.Now()
	claims := ResetClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{resetAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(cfg.Secret)
}

// ValidateResetToken checks a reset token and returns the email it was
// issued for. Expired or tampered tokens fail.
func ValidateResetToken(cfg *JWTConfig, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ResetClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return cfg.Secret, nil
	}, jwt.WithAudience(resetAudience))
	if err != nil {
		return "", fmt.Errorf("parse reset token: %w", err)
	}

	claims, ok := token.Claims.(*ResetClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid reset token claims")
	}
	if claims.Email == "" {
		return "", fmt.Errorf("reset token missing email")
	}

	return claims.Email, nil
}
