package jwt

import (
	"encoding/json"
	"errors"
	"fmt"
	types "portrait-backend/internal/common/type"
	"portrait-backend/internal/pkg/helper"
	"portrait-backend/internal/pkg/logger"
	"portrait-backend/internal/pkg/validation"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AdminDataKey = "admin_data"
	tokenTTL     = 12 * time.Hour
)

var ErrMissingClaims = errors.New("admin data not found in token claims")

func getJWTSecret() []byte {
	secret := helper.GetEnv("JWT_SECRET")
	if secret == "" {
		logger.Warning.Println("JWT_SECRET not found, using default secret")
		secret = "$d3f4uIt_s3cr3t_key#"
	}
	return []byte(secret)
}

// GenerateToken signs an HS256 token for an admin; used by ops tooling and tests.
func GenerateToken(data types.AdminWithAuth) (string, *time.Time, error) {
	exp := time.Now().Add(tokenTTL)

	claims := jwt.MapClaims{
		"exp":        exp.Unix(),
		"iat":        time.Now().Unix(),
		AdminDataKey: data,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(getJWTSecret())
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, &exp, nil
}

func ValidateToken(jwtToken string) (*types.AdminWithAuth, error) {
	token, err := jwt.Parse(jwtToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getJWTSecret(), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims[AdminDataKey] == nil {
		return nil, ErrMissingClaims
	}

	raw, err := json.Marshal(claims[AdminDataKey])
	if err != nil {
		return nil, fmt.Errorf("error marshalling admin data: %w", err)
	}

	var admin types.AdminWithAuth
	if err = json.Unmarshal(raw, &admin); err != nil {
		return nil, fmt.Errorf("error unmarshalling admin data: %w", err)
	}

	if err = validation.Validate(admin); err != nil {
		return nil, err
	}

	return &admin, nil
}
