package messaging

import (
	logger "diet-challenge-api/src/infrastructure/logger"
	"diet-challenge-api/src/infrastructure/repository/interakt"
	"diet-challenge-api/src/infrastructure/utils"

	"go.uber.org/zap"
)

// OTPSenderInterface delivers a registration code over WhatsApp
type OTPSenderInterface interface {
	SendOTP(mobile, countryCode, otp string) error
}

type OTPSender struct {
	client       interakt.InteraktClientInterface
	templateName string
	Logger       *logger.Logger
}

// NewOTPSender creates an OTP sender. The template name comes from
// OTP_TEMPLATE_NAME so a rejected template can be swapped without a deploy.
func NewOTPSender(client interakt.InteraktClientInterface, loggerInstance *logger.Logger) *OTPSender {
	return &OTPSender{
		client:       client,
		templateName: utils.GetEnv("OTP_TEMPLATE_NAME", "otp_verification"),
		Logger:       loggerInstance,
	}
}

func (s *OTPSender) SendOTP(mobile, countryCode, otp string) error {
	if countryCode == "" {
		countryCode = "+91"
	}

	request := &interakt.TemplateRequest{
		CountryCode: countryCode,
		PhoneNumber: mobile,
		Type:        "Template",
		Template: interakt.Template{
			Name:         s.templateName,
			LanguageCode: "en",
			BodyValues:   []string{otp},
		},
	}

	result, err := s.client.SendTemplate(request)
	if err != nil {
		s.Logger.Error("Failed to send OTP", zap.Error(err), zap.String("mobile", mobile))
		return err
	}
	if !result.Result {
		s.Logger.Error("OTP rejected by provider", zap.String("mobile", mobile), zap.String("responseData", result.Raw))
		return ErrProviderRejected
	}

	s.Logger.Info("OTP sent", zap.String("mobile", mobile))
	return nil
}
