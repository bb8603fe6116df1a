package messaging

import (
	"errors"
	"testing"

	logger "diet-challenge-api/src/infrastructure/logger"
	"diet-challenge-api/src/infrastructure/repository/interakt"

	"github.com/stretchr/testify/assert"
)

type mockInteraktClient struct {
	sendFn   func(*interakt.TemplateRequest) (*interakt.SendResult, error)
	requests []*interakt.TemplateRequest
}

func (m *mockInteraktClient) SendTemplate(request *interakt.TemplateRequest) (*interakt.SendResult, error) {
	m.requests = append(m.requests, request)
	return m.sendFn(request)
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	loggerInstance, err := logger.NewDevelopmentLogger()
	if err != nil {
		t.Fatal(err)
	}
	return loggerInstance
}

func firstPicker(n int) int { return 0 }

func lastPicker(n int) int { return n - 1 }

func TestMediaURLFallsBackToSevenDays(t *testing.T) {
	d := NewDispatcher(&mockInteraktClient{}, testLogger(t))

	assert.Equal(t, defaultImageURLs["30 days"], d.MediaURL("30 days"))
	assert.Equal(t, defaultImageURLs["7 days"], d.MediaURL("45 days"))
	assert.Equal(t, defaultImageURLs["7 days"], d.MediaURL(""))
}

func TestTemplateNameRotation(t *testing.T) {
	client := &mockInteraktClient{}

	first := NewDispatcherWithConfig(client, nil, nil, firstPicker, testLogger(t))
	last := NewDispatcherWithConfig(client, nil, nil, lastPicker, testLogger(t))

	assert.Equal(t, defaultTemplates["14 days"][0], first.TemplateName("14 days"))
	assert.Equal(t, defaultTemplates["14 days"][1], last.TemplateName("14 days"))

	// unmapped duration falls back to the 7-day template set
	assert.Equal(t, defaultTemplates["7 days"][0], first.TemplateName("90 days"))
}

func TestDispatchSuccess(t *testing.T) {
	client := &mockInteraktClient{
		sendFn: func(request *interakt.TemplateRequest) (*interakt.SendResult, error) {
			return &interakt.SendResult{Result: true, ID: "msg-42", Raw: `{"result":true,"id":"msg-42"}`}, nil
		},
	}
	d := NewDispatcherWithConfig(client, nil, nil, firstPicker, testLogger(t))

	outcome, err := d.Dispatch(&DispatchInput{
		ChallengerID: 1,
		Name:         "Asha",
		Mobile:       "9900000001",
		CountryCode:  "+91",
		Duration:     "21 days",
	})

	assert.NoError(t, err)
	assert.Equal(t, "msg-42", outcome.ResponseID)
	assert.NotEmpty(t, outcome.Payload)
	assert.Equal(t, `{"result":true,"id":"msg-42"}`, outcome.Response)

	if assert.Len(t, client.requests, 1) {
		request := client.requests[0]
		assert.Equal(t, "Template", request.Type)
		assert.Equal(t, "+91", request.CountryCode)
		assert.Equal(t, "9900000001", request.PhoneNumber)
		assert.Equal(t, defaultTemplates["21 days"][0], request.Template.Name)
		assert.Equal(t, []string{defaultImageURLs["21 days"]}, request.Template.HeaderValues)
		assert.Equal(t, []string{"Asha"}, request.Template.BodyValues)
	}
}

func TestDispatchDefaultsCountryCode(t *testing.T) {
	client := &mockInteraktClient{
		sendFn: func(request *interakt.TemplateRequest) (*interakt.SendResult, error) {
			return &interakt.SendResult{Result: true, ID: "msg-1"}, nil
		},
	}
	d := NewDispatcherWithConfig(client, nil, nil, firstPicker, testLogger(t))

	_, err := d.Dispatch(&DispatchInput{Name: "Asha", Mobile: "9900000001", Duration: "7 days"})

	assert.NoError(t, err)
	assert.Equal(t, "+91", client.requests[0].CountryCode)
}

func TestDispatchProviderRejection(t *testing.T) {
	client := &mockInteraktClient{
		sendFn: func(request *interakt.TemplateRequest) (*interakt.SendResult, error) {
			return &interakt.SendResult{Result: false, Raw: `{"result":false,"message":"invalid number"}`}, nil
		},
	}
	d := NewDispatcherWithConfig(client, nil, nil, firstPicker, testLogger(t))

	outcome, err := d.Dispatch(&DispatchInput{Name: "Asha", Mobile: "123", CountryCode: "+91", Duration: "7 days"})

	assert.ErrorIs(t, err, ErrProviderRejected)
	// the rejection body is still preserved for the ledger
	assert.Equal(t, `{"result":false,"message":"invalid number"}`, outcome.Response)
	assert.NotEmpty(t, outcome.Payload)
}

func TestDispatchTransportFailure(t *testing.T) {
	client := &mockInteraktClient{
		sendFn: func(request *interakt.TemplateRequest) (*interakt.SendResult, error) {
			return nil, errors.New("connection refused")
		},
	}
	d := NewDispatcherWithConfig(client, nil, nil, firstPicker, testLogger(t))

	outcome, err := d.Dispatch(&DispatchInput{Name: "Asha", Mobile: "9900000001", CountryCode: "+91", Duration: "7 days"})

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrProviderRejected)
	assert.NotEmpty(t, outcome.Payload)
	assert.Empty(t, outcome.Response)
	assert.Empty(t, outcome.ResponseID)
}
