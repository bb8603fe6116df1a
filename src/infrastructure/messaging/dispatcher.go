package messaging

import (
	"encoding/json"
	"errors"
	"math/rand"

	logger "diet-challenge-api/src/infrastructure/logger"
	"diet-challenge-api/src/infrastructure/repository/interakt"

	"go.uber.org/zap"
)

// ErrProviderRejected marks a 2xx response whose body carried result:false.
// It is retryable, like a transport failure, but logged with the raw body.
var ErrProviderRejected = errors.New("provider returned false result")

const fallbackDuration = "7 days"

// defaultImageURLs maps plan durations to the badge artwork sent in the
// message header
var defaultImageURLs = map[string]string{
	"7 days":  "https://daawat-rice-challenge.s3.ap-south-1.amazonaws.com/badge/bronze.jpeg",
	"14 days": "https://daawat-rice-challenge.s3.ap-south-1.amazonaws.com/badge/silver.jpeg",
	"21 days": "https://daawat-rice-challenge.s3.ap-south-1.amazonaws.com/badge/gold.jpeg",
	"30 days": "https://daawat-rice-challenge.s3.ap-south-1.amazonaws.com/badge/platinum.jpeg",
}

// defaultTemplates maps plan durations to approved template names. More than
// one name per duration means the dispatcher rotates between them per call.
var defaultTemplates = map[string][]string{
	"7 days":  {"chlng_comp_7_zepto_10", "chlng_comp_7_zepto_15"},
	"14 days": {"chlng_comp_14_zepto_10", "challenge_complete_14days_zepto_15"},
	"21 days": {"chlng_comp_21_zepto_10", "chlng_comp_21_zepto_15"},
	"30 days": {"30days_chlng_comp_15", "30days_chlng_comp_10"},
}

// TemplatePicker selects an index in [0,n) when several templates are
// configured for one duration. Production uses uniform random rotation;
// tests substitute a deterministic stub.
type TemplatePicker func(n int) int

// DispatchInput identifies one recipient of a completion message
type DispatchInput struct {
	ChallengerID int
	Name         string
	Mobile       string
	CountryCode  string
	Duration     string
}

// DispatchOutcome carries everything the delivery ledger needs to persist,
// whatever the outcome was
type DispatchOutcome struct {
	Payload    string // outbound payload JSON, stored verbatim
	Response   string // raw provider response, empty on transport failure
	ResponseID string
}

// DispatcherInterface performs one outbound templated send per invocation
type DispatcherInterface interface {
	Dispatch(input *DispatchInput) (*DispatchOutcome, error)
}

type Dispatcher struct {
	client    interakt.InteraktClientInterface
	imageURLs map[string]string
	templates map[string][]string
	picker    TemplatePicker
	Logger    *logger.Logger
}

// NewDispatcher creates a dispatcher with the default duration maps and
// uniform-random template rotation
func NewDispatcher(client interakt.InteraktClientInterface, loggerInstance *logger.Logger) *Dispatcher {
	return &Dispatcher{
		client:    client,
		imageURLs: defaultImageURLs,
		templates: defaultTemplates,
		picker:    rand.Intn,
		Logger:    loggerInstance,
	}
}

// NewDispatcherWithConfig creates a dispatcher with explicit maps and picker,
// used by tests and by deployments overriding the asset set
func NewDispatcherWithConfig(
	client interakt.InteraktClientInterface,
	imageURLs map[string]string,
	templates map[string][]string,
	picker TemplatePicker,
	loggerInstance *logger.Logger,
) *Dispatcher {
	if imageURLs == nil {
		imageURLs = defaultImageURLs
	}
	if templates == nil {
		templates = defaultTemplates
	}
	if picker == nil {
		picker = rand.Intn
	}
	return &Dispatcher{
		client:    client,
		imageURLs: imageURLs,
		templates: templates,
		picker:    picker,
		Logger:    loggerInstance,
	}
}

// MediaURL resolves the header artwork for a duration, falling back to the
// 7-day asset for unmapped durations
func (d *Dispatcher) MediaURL(duration string) string {
	if url, ok := d.imageURLs[duration]; ok {
		return url
	}
	return d.imageURLs[fallbackDuration]
}

// TemplateName resolves the template for a duration, rotating when several
// are configured
func (d *Dispatcher) TemplateName(duration string) string {
	names, ok := d.templates[duration]
	if !ok || len(names) == 0 {
		names = d.templates[fallbackDuration]
	}
	if len(names) == 1 {
		return names[0]
	}
	return names[d.picker(len(names))]
}

// Dispatch builds the provider payload for one recipient and performs exactly
// one outbound call. The returned outcome always carries the payload; the
// provider response is included whenever one was received.
func (d *Dispatcher) Dispatch(input *DispatchInput) (*DispatchOutcome, error) {
	countryCode := input.CountryCode
	if countryCode == "" {
		countryCode = "+91"
	}

	request := &interakt.TemplateRequest{
		CountryCode: countryCode,
		PhoneNumber: input.Mobile,
		Type:        "Template",
		Template: interakt.Template{
			Name:         d.TemplateName(input.Duration),
			LanguageCode: "en",
			HeaderValues: []string{d.MediaURL(input.Duration)},
			BodyValues:   []string{input.Name},
		},
	}

	payloadJSON, _ := json.Marshal(request)
	outcome := &DispatchOutcome{Payload: string(payloadJSON)}

	result, err := d.client.SendTemplate(request)
	if err != nil {
		d.Logger.Error("Failed to send WhatsApp message",
			zap.Error(err),
			zap.String("mobile", input.Mobile),
			zap.String("name", input.Name),
			zap.String("duration", input.Duration))
		return outcome, err
	}

	outcome.Response = result.Raw
	outcome.ResponseID = result.ID

	if !result.Result {
		d.Logger.Error("Failed to send WhatsApp message",
			zap.String("mobile", input.Mobile),
			zap.String("name", input.Name),
			zap.String("duration", input.Duration),
			zap.String("responseData", result.Raw))
		return outcome, ErrProviderRejected
	}

	d.Logger.Info("WhatsApp message sent successfully",
		zap.String("mobile", input.Mobile),
		zap.String("name", input.Name),
		zap.String("duration", input.Duration),
		zap.String("responseID", result.ID))
	return outcome, nil
}
