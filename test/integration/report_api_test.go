package integration

import (
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"flow-validation-be/internal/bootstrap"
	"flow-validation-be/internal/config"
	"flow-validation-be/internal/entity"
	"flow-validation-be/internal/model"
	"flow-validation-be/internal/repository/implementation"
	"flow-validation-be/internal/server"
	"flow-validation-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReportAPI exercises the report endpoint end to end against a real
// database. Skipped when DB_CONNECTION_STRING is not set.
func TestReportAPI(t *testing.T) {
	// Load .env from root (2 levels up) because tests run in package dir
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	if os.Getenv("DB_CONNECTION_STRING") == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	cfg := config.Load()
	cfg.App.RequireAuth = false

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}
	require.NoError(t, db.AutoMigrate(&model.Payload{}))

	container := bootstrap.NewContainer(db, cfg)
	srv := server.New(cfg, container)
	app := srv.GetApp()

	// Seed one two-message flow under a throwaway session.
	sessionId := "it-" + uuid.NewString()
	repo := implementation.NewPayloadRepository(db)
	base := time.Now().UTC()
	payloads := []*entity.Payload{
		seedPayload(sessionId, "flow-1", "search", base),
		seedPayload(sessionId, "flow-1", "on_search", base.Add(time.Second)),
	}
	require.NoError(t, repo.CreateBulk(t.Context(), payloads))
	defer db.Where("session_id = ?", sessionId).Delete(&model.Payload{})

	t.Run("HTML report", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/report/"+sessionId, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 200, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "Flow flow-1")
	})

	t.Run("JSON report", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/report/"+sessionId+"?format=json", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 200, resp.StatusCode)

		var envelope struct {
			Data map[string]struct {
				ValidSequence bool `json:"validSequence"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		assert.Contains(t, envelope.Data, "flow-1")
	})

	t.Run("unknown session returns 404", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/report/no-such-session", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 404, resp.StatusCode)
	})
}

func seedPayload(sessionId, flowId, action string, at time.Time) *entity.Payload {
	request := `{"context":{"domain":"ONDC:TRV11","transaction_id":"txn-it-1","message_id":"` + uuid.NewString() + `","bpp_id":"bpp-1","timestamp":"` + at.Format(time.RFC3339) + `"},"message":{}}`
	response := `{"message":{"ack":{"status":"ACK"}}}`
	if !strings.HasPrefix(action, "on_") {
		response = `{"response":` + response + `}`
	}
	return &entity.Payload{
		Id:           uuid.New(),
		SessionId:    sessionId,
		FlowId:       flowId,
		Action:       action,
		RequestJson:  json.RawMessage(request),
		ResponseJson: json.RawMessage(response),
		CreatedAt:    at,
	}
}
