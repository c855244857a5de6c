package validation

import "fmt"

// AckCheckResult is the outcome of the generic response-schema check.
type AckCheckResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// CheckAck validates the fixed structural contract on a response payload:
// message.ack.status must be a non-empty string; a NACK must carry
// error.code and error.message; a non-NACK must not carry an error object.
// Violations are collected, not short-circuited.
func CheckAck(payload Document) AckCheckResult {
	var errs []string

	status := payload.String("message", "ack", "status")
	if status == "" {
		errs = append(errs, "response is missing message.ack.status")
	}

	if status == "NACK" {
		if !payload.Has("error") {
			errs = append(errs, "NACK response is missing the error object")
		} else {
			if payload.String("error", "code") == "" {
				errs = append(errs, "NACK response is missing error.code")
			}
			if payload.String("error", "message") == "" {
				errs = append(errs, "NACK response is missing error.message")
			}
		}
	} else if status != "" && payload.Has("error") {
		errs = append(errs, fmt.Sprintf("response with ack status %q must not carry an error object", status))
	}

	return AckCheckResult{IsValid: len(errs) == 0, Errors: errs}
}
