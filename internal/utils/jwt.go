// internal/utils/jwt.go
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/prodmarket/marketplace-backend/internal/models"
)

type JWTClaims struct {
	UserID                 uuid.UUID   `json:"user_id"`
	Email                  string      `json:"email"`
	Role                   models.Role `json:"role"`
	BusinessID             uuid.UUID   `json:"business_id"`
	PasswordChangeRequired bool        `json:"password_change_required"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	secretKey            string
	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration
}

func NewJWTManager(secretKey string, accessDuration, refreshDuration time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:            secretKey,
		accessTokenDuration:  accessDuration,
		refreshTokenDuration: refreshDuration,
	}
}

// GenerateTokenPair creates access and refresh tokens for the user.
func (j *JWTManager) GenerateTokenPair(user *models.User) (accessToken, refreshToken string, err error) {
	accessToken, err = j.generateToken(user, j.accessTokenDuration, "access")
	if err != nil {
		return "", "", err
	}

	refreshToken, err = j.generateToken(user, j.refreshTokenDuration, "refresh")
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (j *JWTManager) generateToken(user *models.User, duration time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID:                 user.ID,
		Email:                  user.Email,
		Role:                   user.Role,
		BusinessID:             user.BusinessID,
		PasswordChangeRequired: user.PasswordChangeRequired,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "marketplace-backend",
			Subject:   user.ID.String(),
			ID:        uuid.New().String(),
			Audience:  []string{tokenType},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ValidateToken parses and validates a token string and returns its claims.
func (j *JWTManager) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// ValidateRefreshToken ensures the token was issued as a refresh token.
func (j *JWTManager) ValidateRefreshToken(tokenString string) (*JWTClaims, error) {
	claims, err := j.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	isRefresh := false
	for _, aud := range claims.Audience {
		if aud == "refresh" {
			isRefresh = true
			break
		}
	}
	if !isRefresh {
		return nil, errors.New("token is not a refresh token")
	}

	return claims, nil
}
