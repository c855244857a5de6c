package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"flow-validation-be/internal/entity"
	"flow-validation-be/internal/repository/implementation"
	"flow-validation-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds a demo capture session: one flow that follows the expected action
// sequence end to end, and one that skips on_search so the report shows a
// sequence failure.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	repo := implementation.NewPayloadRepository(db)
	ctx := context.Background()

	sessionId := "demo-session"
	base := time.Now().Add(-time.Hour)

	var payloads []*entity.Payload

	// Flow 1: the full default template.
	actions := []string{
		"search", "on_search",
		"search", "on_search",
		"select", "on_select",
		"init", "on_init",
		"confirm", "on_confirm",
	}
	txns := map[int]string{0: "txn-demo-1", 2: "txn-demo-2"}
	txn := ""
	for i, action := range actions {
		if t, ok := txns[i]; ok {
			txn = t
		}
		payloads = append(payloads, demoPayload(sessionId, "flow-complete", action, txn, base.Add(time.Duration(i)*time.Minute)))
	}

	// Flow 2: select arrives without its on_search.
	for i, action := range []string{"search", "select"} {
		payloads = append(payloads, demoPayload(sessionId, "flow-broken", action, "txn-demo-3", base.Add(time.Duration(i)*time.Minute)))
	}

	if err := repo.CreateBulk(ctx, payloads); err != nil {
		color.Red("Seeding failed: %v", err)
		os.Exit(1)
	}

	color.Green("Seeded %d payloads into session %q", len(payloads), sessionId)
	fmt.Printf("Report: http://localhost:3000/api/report/%s\n", sessionId)
}

func demoPayload(sessionId, flowId, action, txn string, createdAt time.Time) *entity.Payload {
	request := map[string]any{
		"context": map[string]any{
			"domain":         "ONDC:TRV11",
			"core_version":   "2.0.0",
			"action":         action,
			"transaction_id": txn,
			"message_id":     uuid.NewString(),
			"bpp_id":         "demo-bpp",
			"timestamp":      createdAt.UTC().Format(time.RFC3339),
		},
		"message": map[string]any{},
	}
	response := map[string]any{
		"response": map[string]any{
			"message": map[string]any{"ack": map[string]any{"status": "ACK"}},
		},
	}

	requestJson, _ := json.Marshal(request)
	responseJson, _ := json.Marshal(response)

	return &entity.Payload{
		Id:           uuid.New(),
		SessionId:    sessionId,
		FlowId:       flowId,
		Action:       action,
		RequestJson:  requestJson,
		ResponseJson: responseJson,
		CreatedAt:    createdAt,
	}
}
