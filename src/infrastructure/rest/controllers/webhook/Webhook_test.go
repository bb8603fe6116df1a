package webhook

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	domainNotification "diet-challenge-api/src/domain/notification"
	logger "diet-challenge-api/src/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type mockWebhookUseCase struct {
	recordFn func(messageID, status, responseData string) error
	recorded [][2]string
}

func (m *mockWebhookUseCase) RecordStatus(messageID, status, responseData string) error {
	if m.recordFn != nil {
		if err := m.recordFn(messageID, status, responseData); err != nil {
			return err
		}
	}
	m.recorded = append(m.recorded, [2]string{messageID, status})
	return nil
}

func (m *mockWebhookUseCase) History(messageID string) (*[]domainNotification.WebhookLog, error) {
	return nil, nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	loggerInstance, err := logger.NewDevelopmentLogger()
	if err != nil {
		t.Fatal(err)
	}
	return loggerInstance
}

func postWebhook(t *testing.T, useCase *mockWebhookUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	ctx.Request = httptest.NewRequest(http.MethodPost, "/v1/webhooks/delivery-status", bytes.NewBufferString(body))

	controller := NewWebhookController(useCase, testLogger(t))
	controller.DeliveryStatus(ctx)
	return recorder
}

func TestDeliveryStatusCurrentShape(t *testing.T) {
	useCase := &mockWebhookUseCase{}

	recorder := postWebhook(t, useCase, `{"type":"message_api_delivered","data":{"message":{"id":"msg-1","message_status":"Delivered"}}}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, [][2]string{{"msg-1", "Delivered"}}, useCase.recorded)
}

func TestDeliveryStatusLegacyShape(t *testing.T) {
	useCase := &mockWebhookUseCase{}

	recorder := postWebhook(t, useCase, `{"data":{"message_id":"msg-2","status":"Read"}}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, [][2]string{{"msg-2", "Read"}}, useCase.recorded)
}

func TestDeliveryStatusMalformedStill200(t *testing.T) {
	useCase := &mockWebhookUseCase{}

	recorder := postWebhook(t, useCase, `{not json`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, useCase.recorded)
}

func TestDeliveryStatusMissingFieldsStill200(t *testing.T) {
	useCase := &mockWebhookUseCase{}

	recorder := postWebhook(t, useCase, `{"data":{"message":{"id":"msg-3"}}}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, useCase.recorded)
}

func TestDeliveryStatusStoreErrorStill200(t *testing.T) {
	useCase := &mockWebhookUseCase{
		recordFn: func(messageID, status, responseData string) error {
			return errors.New("store unavailable")
		},
	}

	recorder := postWebhook(t, useCase, `{"data":{"message_id":"msg-4","status":"Sent"}}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "error")
}
