package challenger

import (
	"errors"
	"io"
	"testing"
	"time"

	domainChallenger "diet-challenge-api/src/domain/challenger"
	"diet-challenge-api/src/domain/common"
	domainDietPlan "diet-challenge-api/src/domain/dietplan"
	domainErrors "diet-challenge-api/src/domain/errors"
	"diet-challenge-api/src/infrastructure/helper"
	logger "diet-challenge-api/src/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockChallengerRepository struct {
	createFn func(challenger *domainChallenger.Challenger) (*domainChallenger.Challenger, error)
	getFn    func(id int) (*domainChallenger.Challenger, error)
	updateFn func(id int, challengerMap map[string]interface{}) (*domainChallenger.Challenger, error)
	updates  []map[string]interface{}
}

func (m *mockChallengerRepository) Create(challenger *domainChallenger.Challenger) (*domainChallenger.Challenger, error) {
	return m.createFn(challenger)
}

func (m *mockChallengerRepository) GetByID(id int) (*domainChallenger.Challenger, error) {
	return m.getFn(id)
}

func (m *mockChallengerRepository) Update(id int, challengerMap map[string]interface{}) (*domainChallenger.Challenger, error) {
	m.updates = append(m.updates, challengerMap)
	return m.updateFn(id, challengerMap)
}

func (m *mockChallengerRepository) List(page, limit int, filters map[string]interface{}) (*[]domainChallenger.Challenger, int64, error) {
	return &[]domainChallenger.Challenger{}, 0, nil
}

func (m *mockChallengerRepository) ListEligible(cohort domainChallenger.Cohort, excludedMobiles []string, offset, limit int) (*[]domainChallenger.Challenger, error) {
	return &[]domainChallenger.Challenger{}, nil
}

func (m *mockChallengerRepository) MarkReminderSentByMobile(mobile string) error {
	return nil
}

type mockDietPlanRepository struct {
	findMatchFn func(duration, category, subcategory, planType string) (*domainDietPlan.DietPlan, error)
}

func (m *mockDietPlanRepository) Create(planDomain *domainDietPlan.DietPlan) (*domainDietPlan.DietPlan, error) {
	return planDomain, nil
}

func (m *mockDietPlanRepository) GetByID(id int) (*domainDietPlan.DietPlan, error) {
	return nil, errors.New("not implemented")
}

func (m *mockDietPlanRepository) List(filter domainDietPlan.Filter, page, limit int) (*[]domainDietPlan.DietPlan, int64, error) {
	return &[]domainDietPlan.DietPlan{}, 0, nil
}

func (m *mockDietPlanRepository) Update(id int, planMap map[string]interface{}) (*domainDietPlan.DietPlan, error) {
	return nil, errors.New("not implemented")
}

func (m *mockDietPlanRepository) Delete(id int) error { return nil }

func (m *mockDietPlanRepository) FindMatch(duration, category, subcategory, planType string) (*domainDietPlan.DietPlan, error) {
	return m.findMatchFn(duration, category, subcategory, planType)
}

type mockOTPSender struct {
	sendFn func(mobile, countryCode, otp string) error
	sent   []string
}

func (m *mockOTPSender) SendOTP(mobile, countryCode, otp string) error {
	m.sent = append(m.sent, otp)
	if m.sendFn != nil {
		return m.sendFn(mobile, countryCode, otp)
	}
	return nil
}

type mockObjectStore struct {
	presignFn func(key string, expiry time.Duration) (string, error)
}

func (m *mockObjectStore) Put(key string, body []byte, contentType string) error { return nil }
func (m *mockObjectStore) Get(key string) ([]byte, error)                        { return nil, nil }
func (m *mockObjectStore) StreamRead(key string) (io.ReadCloser, int64, error)   { return nil, 0, nil }
func (m *mockObjectStore) Delete(key string) error                               { return nil }
func (m *mockObjectStore) NewKey(prefix, filename string) string                 { return prefix + "/" + filename }

func (m *mockObjectStore) PresignedURL(key string, expiry time.Duration) (string, error) {
	if m.presignFn != nil {
		return m.presignFn(key, expiry)
	}
	return "https://example.com/" + key, nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	loggerInstance, err := logger.NewDevelopmentLogger()
	if err != nil {
		t.Fatal(err)
	}
	return loggerInstance
}

func newTestUseCase(
	t *testing.T,
	challengerRepository *mockChallengerRepository,
	dietPlanRepository *mockDietPlanRepository,
	otpSender *mockOTPSender,
	objectStore *mockObjectStore,
) *ChallengerUseCase {
	t.Helper()
	commonService := common.NewCommonService(helper.NewValidator(testLogger(t)))
	return NewChallengerUseCase(challengerRepository, dietPlanRepository, otpSender, objectStore, commonService, testLogger(t))
}

func TestRegisterCreatesAndSendsOTP(t *testing.T) {
	var createdChallenger *domainChallenger.Challenger
	challengerRepository := &mockChallengerRepository{
		createFn: func(challenger *domainChallenger.Challenger) (*domainChallenger.Challenger, error) {
			challenger.ID = 7
			createdChallenger = challenger
			return challenger, nil
		},
	}
	otpSender := &mockOTPSender{}

	useCase := newTestUseCase(t, challengerRepository, &mockDietPlanRepository{}, otpSender, &mockObjectStore{})
	useCase.SetOTPGenerator(func() string { return "4321" })

	result, err := useCase.Register(&RegisterInput{
		Name:        "Asha",
		Mobile:      "9876543210",
		CountryCode: "+91",
		IP:          "10.0.0.1",
		Referer:     "https://landing.example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, 7, result.ID)
	assert.Equal(t, "4321", createdChallenger.OTP)
	assert.False(t, createdChallenger.OTPVerified)
	assert.Equal(t, "10.0.0.1", createdChallenger.IP)
	assert.Equal(t, []string{"4321"}, otpSender.sent)
}

func TestRegisterSurvivesOTPSendFailure(t *testing.T) {
	challengerRepository := &mockChallengerRepository{
		createFn: func(challenger *domainChallenger.Challenger) (*domainChallenger.Challenger, error) {
			challenger.ID = 8
			return challenger, nil
		},
	}
	otpSender := &mockOTPSender{
		sendFn: func(mobile, countryCode, otp string) error {
			return errors.New("provider down")
		},
	}

	useCase := newTestUseCase(t, challengerRepository, &mockDietPlanRepository{}, otpSender, &mockObjectStore{})

	result, err := useCase.Register(&RegisterInput{Name: "Ravi", Mobile: "9000000001"})
	require.NoError(t, err)
	assert.Equal(t, 8, result.ID)
}

func TestVerifyOTPSuccess(t *testing.T) {
	challengerRepository := &mockChallengerRepository{
		getFn: func(id int) (*domainChallenger.Challenger, error) {
			return &domainChallenger.Challenger{ID: id, OTP: "1234"}, nil
		},
		updateFn: func(id int, challengerMap map[string]interface{}) (*domainChallenger.Challenger, error) {
			return &domainChallenger.Challenger{ID: id, OTP: "1234", OTPVerified: true}, nil
		},
	}

	useCase := newTestUseCase(t, challengerRepository, &mockDietPlanRepository{}, &mockOTPSender{}, &mockObjectStore{})

	result, err := useCase.VerifyOTP(3, "1234")
	require.NoError(t, err)
	assert.True(t, result.OTPVerified)
	require.Len(t, challengerRepository.updates, 1)
	assert.Equal(t, true, challengerRepository.updates[0]["otpVerified"])
}

func TestVerifyOTPWrongCode(t *testing.T) {
	challengerRepository := &mockChallengerRepository{
		getFn: func(id int) (*domainChallenger.Challenger, error) {
			return &domainChallenger.Challenger{ID: id, OTP: "1234"}, nil
		},
	}

	useCase := newTestUseCase(t, challengerRepository, &mockDietPlanRepository{}, &mockOTPSender{}, &mockObjectStore{})

	_, err := useCase.VerifyOTP(3, "9999")
	require.Error(t, err)
	var appErr *domainErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainErrors.ValidationError, appErr.Type)
	assert.Empty(t, challengerRepository.updates)
}

func TestVerifyOTPAlreadyVerifiedIsIdempotent(t *testing.T) {
	challengerRepository := &mockChallengerRepository{
		getFn: func(id int) (*domainChallenger.Challenger, error) {
			return &domainChallenger.Challenger{ID: id, OTP: "1234", OTPVerified: true}, nil
		},
	}

	useCase := newTestUseCase(t, challengerRepository, &mockDietPlanRepository{}, &mockOTPSender{}, &mockObjectStore{})

	result, err := useCase.VerifyOTP(3, "whatever")
	require.NoError(t, err)
	assert.True(t, result.OTPVerified)
	assert.Empty(t, challengerRepository.updates)
}

func TestResendOTPGeneratesFreshCode(t *testing.T) {
	challengerRepository := &mockChallengerRepository{
		getFn: func(id int) (*domainChallenger.Challenger, error) {
			return &domainChallenger.Challenger{ID: id, Mobile: "9000000002", OTP: "1111"}, nil
		},
		updateFn: func(id int, challengerMap map[string]interface{}) (*domainChallenger.Challenger, error) {
			return &domainChallenger.Challenger{ID: id}, nil
		},
	}
	otpSender := &mockOTPSender{}

	useCase := newTestUseCase(t, challengerRepository, &mockDietPlanRepository{}, otpSender, &mockObjectStore{})
	useCase.SetOTPGenerator(func() string { return "5678" })

	err := useCase.ResendOTP(3)
	require.NoError(t, err)
	require.Len(t, challengerRepository.updates, 1)
	assert.Equal(t, "5678", challengerRepository.updates[0]["otp"])
	assert.Equal(t, []string{"5678"}, otpSender.sent)
}

func TestResendOTPRejectsVerified(t *testing.T) {
	challengerRepository := &mockChallengerRepository{
		getFn: func(id int) (*domainChallenger.Challenger, error) {
			return &domainChallenger.Challenger{ID: id, OTPVerified: true}, nil
		},
	}

	useCase := newTestUseCase(t, challengerRepository, &mockDietPlanRepository{}, &mockOTPSender{}, &mockObjectStore{})

	err := useCase.ResendOTP(3)
	var appErr *domainErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainErrors.ValidationError, appErr.Type)
}

func TestSubmitAssignsMatchedPlan(t *testing.T) {
	challengerRepository := &mockChallengerRepository{
		getFn: func(id int) (*domainChallenger.Challenger, error) {
			return &domainChallenger.Challenger{ID: id, OTPVerified: true}, nil
		},
		updateFn: func(id int, challengerMap map[string]interface{}) (*domainChallenger.Challenger, error) {
			return &domainChallenger.Challenger{ID: id, Duration: "7 days"}, nil
		},
	}
	dietPlanRepository := &mockDietPlanRepository{
		findMatchFn: func(duration, category, subcategory, planType string) (*domainDietPlan.DietPlan, error) {
			assert.Equal(t, "7 days", duration)
			assert.Equal(t, "Weight Loss", category)
			return &domainDietPlan.DietPlan{ID: 11, PDFKey: "diet-plans/wl-veg-7.pdf"}, nil
		},
	}

	useCase := newTestUseCase(t, challengerRepository, dietPlanRepository, &mockOTPSender{}, &mockObjectStore{})

	result, err := useCase.Submit(&SubmitInput{
		ChallengerID: 3,
		Duration:     "7 days",
		Category:     "Weight Loss",
		Subcategory:  "Veg",
		Type:         "Regular",
	})
	require.NoError(t, err)

	require.Len(t, challengerRepository.updates, 1)
	assert.Equal(t, "diet-plans/wl-veg-7.pdf", challengerRepository.updates[0]["pdf"])
	assert.Equal(t, "https://example.com/diet-plans/wl-veg-7.pdf", result.PDFURL)
}

func TestSubmitRequiresVerifiedRegistration(t *testing.T) {
	challengerRepository := &mockChallengerRepository{
		getFn: func(id int) (*domainChallenger.Challenger, error) {
			return &domainChallenger.Challenger{ID: id, OTPVerified: false}, nil
		},
	}

	useCase := newTestUseCase(t, challengerRepository, &mockDietPlanRepository{}, &mockOTPSender{}, &mockObjectStore{})

	_, err := useCase.Submit(&SubmitInput{ChallengerID: 3, Duration: "7 days"})
	var appErr *domainErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainErrors.ValidationError, appErr.Type)
}

func TestSubmitToleratesPresignFailure(t *testing.T) {
	challengerRepository := &mockChallengerRepository{
		getFn: func(id int) (*domainChallenger.Challenger, error) {
			return &domainChallenger.Challenger{ID: id, OTPVerified: true}, nil
		},
		updateFn: func(id int, challengerMap map[string]interface{}) (*domainChallenger.Challenger, error) {
			return &domainChallenger.Challenger{ID: id}, nil
		},
	}
	dietPlanRepository := &mockDietPlanRepository{
		findMatchFn: func(duration, category, subcategory, planType string) (*domainDietPlan.DietPlan, error) {
			return &domainDietPlan.DietPlan{ID: 12, PDFKey: "diet-plans/x.pdf"}, nil
		},
	}
	objectStore := &mockObjectStore{
		presignFn: func(key string, expiry time.Duration) (string, error) {
			return "", errors.New("s3 unavailable")
		},
	}

	useCase := newTestUseCase(t, challengerRepository, dietPlanRepository, &mockOTPSender{}, objectStore)

	result, err := useCase.Submit(&SubmitInput{ChallengerID: 3, Duration: "7 days"})
	require.NoError(t, err)
	assert.Empty(t, result.PDFURL)
}
