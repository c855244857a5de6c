package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckAck(t *testing.T) {
	t.Run("ACK without error is valid", func(t *testing.T) {
		payload := Document{
			"message": map[string]any{"ack": map[string]any{"status": "ACK"}},
		}

		result := CheckAck(payload)

		assert.True(t, result.IsValid)
		assert.Empty(t, result.Errors)
	})

	t.Run("NACK without error object is invalid", func(t *testing.T) {
		payload := Document{
			"message": map[string]any{"ack": map[string]any{"status": "NACK"}},
		}

		result := CheckAck(payload)

		assert.False(t, result.IsValid)
		assert.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "error object")
	})

	t.Run("NACK with complete error is valid", func(t *testing.T) {
		payload := Document{
			"message": map[string]any{"ack": map[string]any{"status": "NACK"}},
			"error":   map[string]any{"code": "40001", "message": "stale request"},
		}

		result := CheckAck(payload)

		assert.True(t, result.IsValid)
	})

	t.Run("NACK with empty error fields collects both violations", func(t *testing.T) {
		payload := Document{
			"message": map[string]any{"ack": map[string]any{"status": "NACK"}},
			"error":   map[string]any{},
		}

		result := CheckAck(payload)

		assert.False(t, result.IsValid)
		assert.Len(t, result.Errors, 2)
	})

	t.Run("ACK with an error object is invalid", func(t *testing.T) {
		payload := Document{
			"message": map[string]any{"ack": map[string]any{"status": "ACK"}},
			"error":   map[string]any{"code": "40001"},
		}

		result := CheckAck(payload)

		assert.False(t, result.IsValid)
	})

	t.Run("missing ack status is invalid", func(t *testing.T) {
		result := CheckAck(Document{"message": map[string]any{}})

		assert.False(t, result.IsValid)
		assert.Contains(t, result.Errors[0], "message.ack.status")
	})
}
