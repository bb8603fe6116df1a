package auth

import "time"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AccessTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type UserData struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   bool   `json:"status"`
	ID       int    `json:"id"`
}

type SecurityData struct {
	JWTAccessToken            string    `json:"jwtAccessToken"`
	JWTRefreshToken           string    `json:"jwtRefreshToken"`
	ExpirationAccessDateTime  time.Time `json:"expirationAccessDateTime"`
	ExpirationRefreshDateTime time.Time `json:"expirationRefreshDateTime"`
}

type LoginResponse struct {
	Data     UserData     `json:"data"`
	Security SecurityData `json:"security"`
}
