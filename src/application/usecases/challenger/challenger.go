package challenger

import (
	"errors"
	"time"

	domainChallenger "diet-challenge-api/src/domain/challenger"
	"diet-challenge-api/src/domain/common"
	domainErrors "diet-challenge-api/src/domain/errors"
	logger "diet-challenge-api/src/infrastructure/logger"
	"diet-challenge-api/src/infrastructure/messaging"
	challengerRepo "diet-challenge-api/src/infrastructure/repository/mysql/challenger"
	dietPlanRepo "diet-challenge-api/src/infrastructure/repository/mysql/dietplan"
	"diet-challenge-api/src/infrastructure/storage/s3"

	"go.uber.org/zap"
)

// pdfURLExpiry bounds how long an issued plan download link stays valid
const pdfURLExpiry = 24 * time.Hour

// RegisterInput is a new registration before OTP verification
type RegisterInput struct {
	Name        string
	Mobile      string
	CountryCode string
	IP          string
	Referer     string
}

// SubmitInput completes a verified registration with the chosen plan
type SubmitInput struct {
	ChallengerID int
	Duration     string
	Category     string
	Subcategory  string
	Type         string
}

// SubmitResult carries the matched plan assignment back to the caller
type SubmitResult struct {
	Challenger *domainChallenger.Challenger
	PDFURL     string
}

type IChallengerUseCase interface {
	Register(input *RegisterInput) (*domainChallenger.Challenger, error)
	VerifyOTP(challengerID int, otp string) (*domainChallenger.Challenger, error)
	ResendOTP(challengerID int) error
	Submit(input *SubmitInput) (*SubmitResult, error)
	GetByID(id int) (*domainChallenger.Challenger, error)
	List(page, limit int, filters map[string]interface{}) (*[]domainChallenger.Challenger, int64, error)
}

type ChallengerUseCase struct {
	challengerRepository challengerRepo.ChallengerRepositoryInterface
	dietPlanRepository   dietPlanRepo.DietPlanRepositoryInterface
	otpSender            messaging.OTPSenderInterface
	objectStore          s3.ObjectStoreInterface
	generateOTP          func() string
	Logger               *logger.Logger
}

func NewChallengerUseCase(
	challengerRepository challengerRepo.ChallengerRepositoryInterface,
	dietPlanRepository dietPlanRepo.DietPlanRepositoryInterface,
	otpSender messaging.OTPSenderInterface,
	objectStore s3.ObjectStoreInterface,
	commonService common.CommonService,
	loggerInstance *logger.Logger,
) *ChallengerUseCase {
	return &ChallengerUseCase{
		challengerRepository: challengerRepository,
		dietPlanRepository:   dietPlanRepository,
		otpSender:            otpSender,
		objectStore:          objectStore,
		generateOTP:          commonService.GenerateOTP,
		Logger:               loggerInstance,
	}
}

// SetOTPGenerator overrides OTP generation, for tests
func (s *ChallengerUseCase) SetOTPGenerator(gen func() string) {
	s.generateOTP = gen
}

// Register creates an unverified challenger row and sends the OTP. A failed
// OTP send does not roll the row back; the caller can resend.
func (s *ChallengerUseCase) Register(input *RegisterInput) (*domainChallenger.Challenger, error) {
	otp := s.generateOTP()

	created, err := s.challengerRepository.Create(&domainChallenger.Challenger{
		Name:        input.Name,
		Mobile:      input.Mobile,
		CountryCode: input.CountryCode,
		OTP:         otp,
		OTPVerified: false,
		IP:          input.IP,
		Referer:     input.Referer,
	})
	if err != nil {
		return nil, err
	}

	if err := s.otpSender.SendOTP(created.Mobile, created.CountryCode, otp); err != nil {
		s.Logger.Error("Error sending registration OTP", zap.Error(err), zap.Int("challengerID", created.ID))
	}

	s.Logger.Info("Challenger registered", zap.Int("id", created.ID), zap.String("mobile", created.Mobile))
	return created, nil
}

// VerifyOTP marks the registration verified when the supplied code matches
func (s *ChallengerUseCase) VerifyOTP(challengerID int, otp string) (*domainChallenger.Challenger, error) {
	challenger, err := s.challengerRepository.GetByID(challengerID)
	if err != nil {
		return nil, err
	}
	if challenger.OTPVerified {
		return challenger, nil
	}
	if challenger.OTP == "" || challenger.OTP != otp {
		s.Logger.Warn("OTP verification failed", zap.Int("challengerID", challengerID))
		return nil, domainErrors.NewAppError(errors.New("invalid OTP"), domainErrors.ValidationError)
	}

	updated, err := s.challengerRepository.Update(challengerID, map[string]interface{}{
		"otpVerified": true,
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("Challenger OTP verified", zap.Int("id", challengerID))
	return updated, nil
}

// ResendOTP issues a fresh code to an unverified registration
func (s *ChallengerUseCase) ResendOTP(challengerID int) error {
	challenger, err := s.challengerRepository.GetByID(challengerID)
	if err != nil {
		return err
	}
	if challenger.OTPVerified {
		return domainErrors.NewAppError(errors.New("registration already verified"), domainErrors.ValidationError)
	}

	otp := s.generateOTP()
	if _, err := s.challengerRepository.Update(challengerID, map[string]interface{}{
		"otp": otp,
	}); err != nil {
		return err
	}

	return s.otpSender.SendOTP(challenger.Mobile, challenger.CountryCode, otp)
}

// Submit records the chosen plan attributes on a verified registration,
// matches a diet plan and assigns its PDF
func (s *ChallengerUseCase) Submit(input *SubmitInput) (*SubmitResult, error) {
	challenger, err := s.challengerRepository.GetByID(input.ChallengerID)
	if err != nil {
		return nil, err
	}
	if !challenger.OTPVerified {
		return nil, domainErrors.NewAppError(errors.New("registration not verified"), domainErrors.ValidationError)
	}

	plan, err := s.dietPlanRepository.FindMatch(input.Duration, input.Category, input.Subcategory, input.Type)
	if err != nil {
		s.Logger.Error("No diet plan matched submission",
			zap.Error(err),
			zap.Int("challengerID", input.ChallengerID),
			zap.String("duration", input.Duration),
			zap.String("category", input.Category))
		return nil, err
	}

	updated, err := s.challengerRepository.Update(input.ChallengerID, map[string]interface{}{
		"duration":    input.Duration,
		"category":    input.Category,
		"subcategory": input.Subcategory,
		"type":        input.Type,
		"pdf":         plan.PDFKey,
	})
	if err != nil {
		return nil, err
	}

	url, err := s.objectStore.PresignedURL(plan.PDFKey, pdfURLExpiry)
	if err != nil {
		// the assignment stands even when the link cannot be issued now
		s.Logger.Error("Error presigning plan PDF", zap.Error(err), zap.String("key", plan.PDFKey))
		url = ""
	}

	s.Logger.Info("Challenger submission completed",
		zap.Int("id", updated.ID),
		zap.String("duration", updated.Duration),
		zap.Int("planID", plan.ID))
	return &SubmitResult{Challenger: updated, PDFURL: url}, nil
}

func (s *ChallengerUseCase) GetByID(id int) (*domainChallenger.Challenger, error) {
	return s.challengerRepository.GetByID(id)
}

// List returns a page of challengers for the admin dashboard
func (s *ChallengerUseCase) List(page, limit int, filters map[string]interface{}) (*[]domainChallenger.Challenger, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 20
	}
	return s.challengerRepository.List(page, limit, filters)
}
