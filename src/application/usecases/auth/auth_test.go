package auth

import (
	"errors"
	"testing"
	"time"

	domainErrors "diet-challenge-api/src/domain/errors"
	domainUser "diet-challenge-api/src/domain/user"
	logger "diet-challenge-api/src/infrastructure/logger"
	"diet-challenge-api/src/infrastructure/security"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepository struct {
	getByEmailFn func(string) (*domainUser.User, error)
	getByIDFn    func(int) (*domainUser.User, error)
	createFn     func(*domainUser.User) (*domainUser.User, error)
}

func (m *mockUserRepository) GetByEmail(email string) (*domainUser.User, error) {
	return m.getByEmailFn(email)
}
func (m *mockUserRepository) GetByID(id int) (*domainUser.User, error) {
	return m.getByIDFn(id)
}
func (m *mockUserRepository) Create(newUser *domainUser.User) (*domainUser.User, error) {
	if m.createFn != nil {
		return m.createFn(newUser)
	}
	return nil, nil
}

type mockJWTService struct {
	generateTokenFn func(int, string, string) (*security.AppToken, error)
	verifyTokenFn   func(string, string) (jwt.MapClaims, error)
}

func (m *mockJWTService) GenerateJWTToken(userID int, tokenType string, role string) (*security.AppToken, error) {
	return m.generateTokenFn(userID, tokenType, role)
}

func (m *mockJWTService) GetClaimsAndVerifyToken(tokenString string, tokenType string) (jwt.MapClaims, error) {
	return m.verifyTokenFn(tokenString, tokenType)
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	loggerInstance, err := logger.NewDevelopmentLogger()
	if err != nil {
		t.Fatal(err)
	}
	return loggerInstance
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(hash)
}

func TestLoginSuccess(t *testing.T) {
	userRepo := &mockUserRepository{
		getByEmailFn: func(email string) (*domainUser.User, error) {
			return &domainUser.User{
				ID:           1,
				Email:        email,
				HashPassword: hashPassword(t, "secret123"),
				Role:         "admin",
			}, nil
		},
	}
	jwtService := &mockJWTService{
		generateTokenFn: func(userID int, tokenType string, role string) (*security.AppToken, error) {
			return &security.AppToken{
				Token:          tokenType + "-token",
				TokenType:      tokenType,
				ExpirationTime: time.Now().Add(time.Hour),
			}, nil
		},
	}

	useCase := NewAuthUseCase(userRepo, jwtService, testLogger(t))
	user, tokens, err := useCase.Login("admin@example.com", "secret123")

	assert.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "access-token", tokens.AccessToken)
	assert.Equal(t, "refresh-token", tokens.RefreshToken)
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo := &mockUserRepository{
		getByEmailFn: func(email string) (*domainUser.User, error) {
			return &domainUser.User{
				ID:           1,
				Email:        email,
				HashPassword: hashPassword(t, "secret123"),
				Role:         "admin",
			}, nil
		},
	}
	useCase := NewAuthUseCase(userRepo, &mockJWTService{}, testLogger(t))

	_, _, err := useCase.Login("admin@example.com", "wrong")

	assert.Error(t, err)
	var appErr *domainErrors.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, domainErrors.NotAuthorized, appErr.Type)
}

func TestLoginUnknownUser(t *testing.T) {
	userRepo := &mockUserRepository{
		getByEmailFn: func(email string) (*domainUser.User, error) {
			return &domainUser.User{}, nil
		},
	}
	useCase := NewAuthUseCase(userRepo, &mockJWTService{}, testLogger(t))

	_, _, err := useCase.Login("nobody@example.com", "secret123")

	assert.Error(t, err)
	var appErr *domainErrors.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, domainErrors.NotAuthorized, appErr.Type)
}

func TestAccessTokenByRefreshToken(t *testing.T) {
	userRepo := &mockUserRepository{
		getByIDFn: func(id int) (*domainUser.User, error) {
			return &domainUser.User{ID: id, Email: "admin@example.com", Role: "admin"}, nil
		},
	}
	refreshExpiry := time.Now().Add(24 * time.Hour).Unix()
	jwtService := &mockJWTService{
		generateTokenFn: func(userID int, tokenType string, role string) (*security.AppToken, error) {
			return &security.AppToken{
				Token:          "new-access-token",
				TokenType:      tokenType,
				ExpirationTime: time.Now().Add(time.Hour),
			}, nil
		},
		verifyTokenFn: func(tokenString string, tokenType string) (jwt.MapClaims, error) {
			assert.Equal(t, "refresh", tokenType)
			return jwt.MapClaims{"id": float64(7), "exp": float64(refreshExpiry)}, nil
		},
	}

	useCase := NewAuthUseCase(userRepo, jwtService, testLogger(t))
	user, tokens, err := useCase.AccessTokenByRefreshToken("refresh-token")

	assert.NoError(t, err)
	assert.Equal(t, 7, user.ID)
	assert.Equal(t, "new-access-token", tokens.AccessToken)
	assert.Equal(t, "refresh-token", tokens.RefreshToken)
}

func TestAccessTokenByRefreshTokenInvalid(t *testing.T) {
	jwtService := &mockJWTService{
		verifyTokenFn: func(tokenString string, tokenType string) (jwt.MapClaims, error) {
			return nil, domainErrors.NewAppError(errors.New("token expired"), domainErrors.NotAuthorized)
		},
	}
	useCase := NewAuthUseCase(&mockUserRepository{}, jwtService, testLogger(t))

	_, _, err := useCase.AccessTokenByRefreshToken("stale-token")

	assert.Error(t, err)
}
