package challenger

import (
	"time"

	domainChallenger "diet-challenge-api/src/domain/challenger"
)

type RegisterRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Mobile      string `json:"mobile" binding:"required,numeric,min=10,max=12"`
	CountryCode string `json:"countryCode"`
}

type VerifyOTPRequest struct {
	OTP string `json:"otp" binding:"required,len=4,numeric"`
}

type SubmitRequest struct {
	Duration    string `json:"duration" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Subcategory string `json:"subcategory"`
	Type        string `json:"type" binding:"required"`
}

type ChallengerIDRequest struct {
	ID int `uri:"id" binding:"required"`
}

type ChallengerResponse struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Mobile       string    `json:"mobile"`
	CountryCode  string    `json:"countryCode"`
	Duration     string    `json:"duration,omitempty"`
	Category     string    `json:"category,omitempty"`
	Subcategory  string    `json:"subcategory,omitempty"`
	Type         string    `json:"type,omitempty"`
	OTPVerified  bool      `json:"otpVerified"`
	ReminderSent bool      `json:"reminderSent"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type SubmitResponse struct {
	Data   ChallengerResponse `json:"data"`
	PDFURL string             `json:"pdfUrl,omitempty"`
}

type MetaResponse struct {
	Durations     []string `json:"durations"`
	Categories    []string `json:"categories"`
	Subcategories []string `json:"subcategories"`
	Types         []string `json:"types"`
}

func toResponse(ch *domainChallenger.Challenger) ChallengerResponse {
	return ChallengerResponse{
		ID:           ch.ID,
		Name:         ch.Name,
		Mobile:       ch.Mobile,
		CountryCode:  ch.CountryCode,
		Duration:     ch.Duration,
		Category:     ch.Category,
		Subcategory:  ch.Subcategory,
		Type:         ch.Type,
		OTPVerified:  ch.OTPVerified,
		ReminderSent: ch.ReminderSent,
		CreatedAt:    ch.CreatedAt,
		UpdatedAt:    ch.UpdatedAt,
	}
}
