package interakt

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	logger "diet-challenge-api/src/infrastructure/logger"

	"github.com/stretchr/testify/assert"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	loggerInstance, err := logger.NewDevelopmentLogger()
	if err != nil {
		t.Fatal(err)
	}
	return loggerInstance
}

func sampleRequest() *TemplateRequest {
	return &TemplateRequest{
		CountryCode: "+91",
		PhoneNumber: "9900000001",
		Type:        "Template",
		Template: Template{
			Name:         "chlng_comp_7_zepto_10",
			LanguageCode: "en",
			HeaderValues: []string{"https://example.com/badge.jpeg"},
			BodyValues:   []string{"Asha"},
		},
	}
}

func TestSendTemplate(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":true,"id":"msg-77"}`))
	}))
	defer server.Close()

	client := NewInteraktClient(server.URL, "dGVzdC1rZXk=", testLogger(t))
	result, err := client.SendTemplate(sampleRequest())

	assert.NoError(t, err)
	assert.True(t, result.Result)
	assert.Equal(t, "msg-77", result.ID)
	assert.Equal(t, `{"result":true,"id":"msg-77"}`, result.Raw)

	assert.Equal(t, "Basic dGVzdC1rZXk=", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "+91", gotBody["countryCode"])
	assert.Equal(t, "9900000001", gotBody["phoneNumber"])
	assert.Equal(t, "Template", gotBody["type"])

	template := gotBody["template"].(map[string]interface{})
	assert.Equal(t, "chlng_comp_7_zepto_10", template["name"])
	assert.Equal(t, "en", template["languageCode"])
}

func TestSendTemplateBusinessRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":false,"message":"template not approved"}`))
	}))
	defer server.Close()

	client := NewInteraktClient(server.URL, "key", testLogger(t))
	result, err := client.SendTemplate(sampleRequest())

	// a 2xx false result is the caller's decision, not a client error
	assert.NoError(t, err)
	assert.False(t, result.Result)
	assert.Contains(t, result.Raw, "template not approved")
}

func TestSendTemplateNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"bad api key"}`))
	}))
	defer server.Close()

	client := NewInteraktClient(server.URL, "wrong", testLogger(t))
	result, err := client.SendTemplate(sampleRequest())

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "401")
}

func TestSendTemplateMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewInteraktClient(server.URL, "key", testLogger(t))
	result, err := client.SendTemplate(sampleRequest())

	assert.Error(t, err)
	assert.Nil(t, result)
}
