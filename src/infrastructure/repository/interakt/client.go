package interakt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	logger "diet-challenge-api/src/infrastructure/logger"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.interakt.ai/v1/public/message/"

// TemplateRequest is one outbound templated WhatsApp message
type TemplateRequest struct {
	CountryCode  string   `json:"countryCode"`
	PhoneNumber  string   `json:"phoneNumber"`
	Type         string   `json:"type"`
	Template     Template `json:"template"`
}

type Template struct {
	Name         string   `json:"name"`
	LanguageCode string   `json:"languageCode"`
	HeaderValues []string `json:"headerValues"`
	BodyValues   []string `json:"bodyValues"`
}

// SendResult is the provider's answer to one send. Result=false with a 2xx
// status is a business rejection, not a transport error.
type SendResult struct {
	Result bool   `json:"result"`
	ID     string `json:"id"`
	Raw    string `json:"-"` // verbatim response body for the ledger
}

// InteraktClientInterface defines the messaging provider operations
type InteraktClientInterface interface {
	SendTemplate(request *TemplateRequest) (*SendResult, error)
}

type InteraktClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	Logger     *logger.Logger
}

// NewInteraktClient creates a provider client with a bounded per-call timeout
func NewInteraktClient(baseURL, apiKey string, loggerInstance *logger.Logger) InteraktClientInterface {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &InteraktClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		Logger: loggerInstance,
	}
}

// SendTemplate performs exactly one outbound call. Retries are the retry
// pipeline's concern, never the client's.
func (c *InteraktClient) SendTemplate(request *TemplateRequest) (*SendResult, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshal interakt payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("create interakt request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.Logger.Error("Interakt request failed", zap.Error(err), zap.String("phoneNumber", request.PhoneNumber))
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read interakt response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.Logger.Error("Interakt returned non-2xx status",
			zap.Int("statusCode", resp.StatusCode),
			zap.String("phoneNumber", request.PhoneNumber),
			zap.ByteString("body", raw))
		return nil, fmt.Errorf("interakt returned status %d", resp.StatusCode)
	}

	var result SendResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode interakt response: %w", err)
	}
	result.Raw = string(raw)

	return &result, nil
}
