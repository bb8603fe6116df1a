package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	useCaseAuth "diet-challenge-api/src/application/usecases/auth"
	userDomain "diet-challenge-api/src/domain/user"
	logger "diet-challenge-api/src/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

// MockAuthUseCase implements IAuthUseCase for testing
type MockAuthUseCase struct {
	loginFunc                func(string, string) (*userDomain.User, *useCaseAuth.AuthTokens, error)
	accessTokenByRefreshFunc func(string) (*userDomain.User, *useCaseAuth.AuthTokens, error)
}

func (m *MockAuthUseCase) Login(email, password string) (*userDomain.User, *useCaseAuth.AuthTokens, error) {
	if m.loginFunc != nil {
		return m.loginFunc(email, password)
	}
	return nil, nil, nil
}

func (m *MockAuthUseCase) AccessTokenByRefreshToken(refreshToken string) (*userDomain.User, *useCaseAuth.AuthTokens, error) {
	if m.accessTokenByRefreshFunc != nil {
		return m.accessTokenByRefreshFunc(refreshToken)
	}
	return nil, nil, nil
}

func setupLogger(t *testing.T) *logger.Logger {
	loggerInstance, err := logger.NewDevelopmentLogger()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return loggerInstance
}

func testTokens() *useCaseAuth.AuthTokens {
	return &useCaseAuth.AuthTokens{
		AccessToken:               "test-access-token",
		RefreshToken:              "test-refresh-token",
		ExpirationAccessDateTime:  time.Now().Add(time.Hour),
		ExpirationRefreshDateTime: time.Now().Add(24 * time.Hour),
	}
}

func TestNewAuthController(t *testing.T) {
	mockUseCase := &MockAuthUseCase{}
	controller := NewAuthController(mockUseCase, setupLogger(t))

	if controller == nil {
		t.Error("Expected NewAuthController to return a non-nil controller")
	}
}

func TestAuthController_Login_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockUseCase := &MockAuthUseCase{
		loginFunc: func(email, password string) (*userDomain.User, *useCaseAuth.AuthTokens, error) {
			user := &userDomain.User{
				UserName: "admin",
				Email:    "admin@example.com",
				Role:     "admin",
				Status:   true,
				ID:       1,
			}
			return user, testTokens(), nil
		},
	}
	controller := NewAuthController(mockUseCase, setupLogger(t))

	requestBody, _ := json.Marshal(LoginRequest{
		Email:    "admin@example.com",
		Password: "password123",
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(requestBody))
	req.Header.Set("Content-Type", "application/json")
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	controller.Login(c)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Data.Email != "admin@example.com" {
		t.Errorf("Expected email admin@example.com, got %s", response.Data.Email)
	}
	if response.Security.JWTAccessToken != "test-access-token" {
		t.Errorf("Expected access token to be returned, got %s", response.Security.JWTAccessToken)
	}
}

func TestAuthController_Login_InvalidRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	controller := NewAuthController(&MockAuthUseCase{}, setupLogger(t))

	requestBody := []byte(`{"email": "admin@example.com"}`) // Missing password

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(requestBody))
	req.Header.Set("Content-Type", "application/json")
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	controller.Login(c)

	if len(c.Errors) == 0 {
		t.Error("Expected error to be added to context")
	}
}

func TestAuthController_GetAccessTokenByRefreshToken_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockUseCase := &MockAuthUseCase{
		accessTokenByRefreshFunc: func(refreshToken string) (*userDomain.User, *useCaseAuth.AuthTokens, error) {
			user := &userDomain.User{
				UserName: "admin",
				Email:    "admin@example.com",
				Role:     "admin",
				Status:   true,
				ID:       1,
			}
			return user, testTokens(), nil
		},
	}
	controller := NewAuthController(mockUseCase, setupLogger(t))

	requestBody, _ := json.Marshal(AccessTokenRequest{RefreshToken: "test-refresh-token"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/access-token", bytes.NewBuffer(requestBody))
	req.Header.Set("Content-Type", "application/json")
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	controller.GetAccessTokenByRefreshToken(c)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestAuthController_GetAccessTokenByRefreshToken_InvalidRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	controller := NewAuthController(&MockAuthUseCase{}, setupLogger(t))

	requestBody := []byte(`{}`) // Missing refreshToken

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/access-token", bytes.NewBuffer(requestBody))
	req.Header.Set("Content-Type", "application/json")
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	controller.GetAccessTokenByRefreshToken(c)

	if len(c.Errors) == 0 {
		t.Error("Expected error to be added to context")
	}
}
