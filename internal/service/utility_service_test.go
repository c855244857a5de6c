package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flow-validation-be/internal/dto"
	"flow-validation-be/internal/entity"
	"flow-validation-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayloadRepository struct {
	payloads []*entity.Payload
	err      error
}

func (f *fakePayloadRepository) Create(ctx context.Context, payload *entity.Payload) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

func (f *fakePayloadRepository) CreateBulk(ctx context.Context, payloads []*entity.Payload) error {
	f.payloads = append(f.payloads, payloads...)
	return nil
}

func (f *fakePayloadRepository) FindBySessionId(ctx context.Context, sessionId string) ([]*entity.Payload, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.Payload
	for _, p := range f.payloads {
		if p.SessionId == sessionId {
			out = append(out, p)
		}
	}
	return out, nil
}

func utilityPayload(sessionId, flowId, action string) *entity.Payload {
	return &entity.Payload{
		Id:           uuid.New(),
		SessionId:    sessionId,
		FlowId:       flowId,
		Action:       action,
		RequestJson:  json.RawMessage(`{"context":{"action":"` + action + `"}}`),
		ResponseJson: json.RawMessage(`{"message":{"ack":{"status":"ACK"}}}`),
		CreatedAt:    time.Now(),
	}
}

func TestUtilityService(t *testing.T) {
	testLogger := logger.NewIsolatedLogger("logs/test.log")

	t.Run("posts one request per flow and collects verdicts", func(t *testing.T) {
		var requests []dto.UtilityServiceRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req dto.UtilityServiceRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			requests = append(requests, req)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"valid":true}`))
		}))
		defer server.Close()

		repo := &fakePayloadRepository{payloads: []*entity.Payload{
			utilityPayload("session-1", "flow-a", "search"),
			utilityPayload("session-1", "flow-a", "on_search"),
			utilityPayload("session-1", "flow-b", "search"),
		}}
		svc := NewUtilityService(repo, server.URL, time.Second, testLogger)

		report, err := svc.GenerateUtilityReport(context.Background(), "session-1")
		require.NoError(t, err)
		require.Len(t, report, 2)
		assert.Len(t, requests, 2)

		assert.True(t, report["flow-a"].Success)
		assert.Equal(t, "validated 2 payloads", report["flow-a"].Details)
		assert.True(t, report["flow-b"].Success)
		assert.Equal(t, "validated 1 payloads", report["flow-b"].Details)
	})

	t.Run("non-2xx response becomes a typed failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))
		defer server.Close()

		repo := &fakePayloadRepository{payloads: []*entity.Payload{
			utilityPayload("session-1", "flow-a", "search"),
		}}
		svc := NewUtilityService(repo, server.URL, time.Second, testLogger)

		report, err := svc.GenerateUtilityReport(context.Background(), "session-1")
		require.NoError(t, err)

		result := report["flow-a"]
		assert.False(t, result.Success)
		require.NotNil(t, result.Error)
		assert.Equal(t, http.StatusBadGateway, result.Error.Status)
		assert.Equal(t, "validation service returned status 502", result.Details)
	})

	t.Run("unreachable service becomes a typed failure", func(t *testing.T) {
		repo := &fakePayloadRepository{payloads: []*entity.Payload{
			utilityPayload("session-1", "flow-a", "search"),
		}}
		svc := NewUtilityService(repo, "http://127.0.0.1:1", 200*time.Millisecond, testLogger)

		report, err := svc.GenerateUtilityReport(context.Background(), "session-1")
		require.NoError(t, err)

		result := report["flow-a"]
		assert.False(t, result.Success)
		require.NotNil(t, result.Error)
		assert.Equal(t, "validation service unreachable", result.Details)
	})

	t.Run("non-JSON verdict becomes a typed failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>not json</html>"))
		}))
		defer server.Close()

		repo := &fakePayloadRepository{payloads: []*entity.Payload{
			utilityPayload("session-1", "flow-a", "search"),
		}}
		svc := NewUtilityService(repo, server.URL, time.Second, testLogger)

		report, err := svc.GenerateUtilityReport(context.Background(), "session-1")
		require.NoError(t, err)

		result := report["flow-a"]
		assert.False(t, result.Success)
		assert.Equal(t, "validation service returned a non-JSON body", result.Details)
	})

	t.Run("missing service URL disables utility mode", func(t *testing.T) {
		svc := NewUtilityService(&fakePayloadRepository{}, "", time.Second, testLogger)

		_, err := svc.GenerateUtilityReport(context.Background(), "session-1")
		assert.ErrorIs(t, err, ErrUtilityModeDisabled)
	})

	t.Run("unknown session is reported as not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer server.Close()

		svc := NewUtilityService(&fakePayloadRepository{}, server.URL, time.Second, testLogger)

		_, err := svc.GenerateUtilityReport(context.Background(), "session-unknown")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}
