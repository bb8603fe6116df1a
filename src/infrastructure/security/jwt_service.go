package security

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	domainErrors "diet-challenge-api/src/domain/errors"

	"github.com/golang-jwt/jwt/v4"
)

// AppToken is a signed JWT together with its expiry
type AppToken struct {
	Token          string
	TokenType      string
	ExpirationTime time.Time
}

type IJWTService interface {
	GenerateJWTToken(userID int, tokenType string, role string) (*AppToken, error)
	GetClaimsAndVerifyToken(tokenString string, tokenType string) (jwt.MapClaims, error)
}

type JWTService struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService reads the JWT secrets and lifetimes from the environment.
// JWT_ACCESS_TIME_MINUTE and JWT_REFRESH_TIME_HOUR default to 60 and 24.
func NewJWTService() *JWTService {
	accessMinutes, err := strconv.Atoi(os.Getenv("JWT_ACCESS_TIME_MINUTE"))
	if err != nil || accessMinutes <= 0 {
		accessMinutes = 60
	}
	refreshHours, err := strconv.Atoi(os.Getenv("JWT_REFRESH_TIME_HOUR"))
	if err != nil || refreshHours <= 0 {
		refreshHours = 24
	}
	return &JWTService{
		accessSecret:  os.Getenv("JWT_ACCESS_SECRET_KEY"),
		refreshSecret: os.Getenv("JWT_REFRESH_SECRET_KEY"),
		accessTTL:     time.Duration(accessMinutes) * time.Minute,
		refreshTTL:    time.Duration(refreshHours) * time.Hour,
	}
}

func (s *JWTService) secretFor(tokenType string) (string, error) {
	switch tokenType {
	case "access":
		if s.accessSecret == "" {
			return "", errors.New("JWT_ACCESS_SECRET_KEY not configured")
		}
		return s.accessSecret, nil
	case "refresh":
		if s.refreshSecret == "" {
			return "", errors.New("JWT_REFRESH_SECRET_KEY not configured")
		}
		return s.refreshSecret, nil
	default:
		return "", fmt.Errorf("unknown token type: %s", tokenType)
	}
}

func (s *JWTService) GenerateJWTToken(userID int, tokenType string, role string) (*AppToken, error) {
	secret, err := s.secretFor(tokenType)
	if err != nil {
		return nil, domainErrors.NewAppError(err, domainErrors.UnknownError)
	}

	ttl := s.accessTTL
	if tokenType == "refresh" {
		ttl = s.refreshTTL
	}
	expirationTime := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"id":   userID,
		"type": tokenType,
		"role": role,
		"exp":  expirationTime.Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, domainErrors.NewAppError(err, domainErrors.UnknownError)
	}

	return &AppToken{
		Token:          signed,
		TokenType:      tokenType,
		ExpirationTime: expirationTime,
	}, nil
}

func (s *JWTService) GetClaimsAndVerifyToken(tokenString string, tokenType string) (jwt.MapClaims, error) {
	secret, err := s.secretFor(tokenType)
	if err != nil {
		return nil, domainErrors.NewAppError(err, domainErrors.UnknownError)
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, domainErrors.NewAppError(err, domainErrors.NotAuthorized)
	}

	if t, ok := claims["type"].(string); !ok || t != tokenType {
		return nil, domainErrors.NewAppError(errors.New("token type mismatch"), domainErrors.NotAuthorized)
	}
	if exp, ok := claims["exp"].(float64); !ok || int64(exp) < time.Now().Unix() {
		return nil, domainErrors.NewAppError(errors.New("token expired"), domainErrors.NotAuthorized)
	}

	return claims, nil
}
