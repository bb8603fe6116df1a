package di

import (
	"testing"

	domainUser "diet-challenge-api/src/domain/user"
	"diet-challenge-api/src/infrastructure/security"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(email string) (*domainUser.User, error) {
	args := m.Called(email)
	return args.Get(0).(*domainUser.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id int) (*domainUser.User, error) {
	args := m.Called(id)
	return args.Get(0).(*domainUser.User), args.Error(1)
}

func (m *MockUserRepository) Create(newUser *domainUser.User) (*domainUser.User, error) {
	args := m.Called(newUser)
	return args.Get(0).(*domainUser.User), args.Error(1)
}

type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateJWTToken(userID int, tokenType string, role string) (*security.AppToken, error) {
	args := m.Called(userID, tokenType, role)
	return args.Get(0).(*security.AppToken), args.Error(1)
}

func (m *MockJWTService) GetClaimsAndVerifyToken(tokenString string, tokenType string) (jwt.MapClaims, error) {
	args := m.Called(tokenString, tokenType)
	return args.Get(0).(jwt.MapClaims), args.Error(1)
}

func TestNewTestApplicationContext(t *testing.T) {
	mockUserRepo := &MockUserRepository{}
	mockJWTService := &MockJWTService{}
	loggerInstance := GetLogger()

	appContext := NewTestApplicationContext(mockUserRepo, mockJWTService, loggerInstance)

	assert.NotNil(t, appContext)
	assert.Equal(t, mockJWTService, appContext.JWTService)
	assert.Equal(t, mockUserRepo, appContext.UserRepository)
	assert.NotNil(t, appContext.AuthController)
	assert.NotNil(t, appContext.AuthUseCase)
}

func TestGetLoggerIsSingleton(t *testing.T) {
	first := GetLogger()
	second := GetLogger()

	assert.NotNil(t, first)
	assert.Same(t, first, second)
}
