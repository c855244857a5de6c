package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"flow-validation-be/internal/dto"
	"flow-validation-be/internal/pkg/logger"
	"flow-validation-be/internal/repository/contract"
)

// ErrUtilityModeDisabled is returned when no external validation service is
// configured.
var ErrUtilityModeDisabled = errors.New("utility report mode is not configured")

type IUtilityService interface {
	// GenerateUtilityReport posts each flow's payloads to the external
	// log-validation service and collects per-flow verdicts. Service
	// failures become typed per-flow results, never errors.
	GenerateUtilityReport(ctx context.Context, sessionId string) (map[string]dto.UtilityFlowResult, error)
}

type utilityService struct {
	payloadRepo contract.PayloadRepository
	serviceURL  string
	client      *http.Client
	logger      logger.ILogger
}

func NewUtilityService(
	payloadRepo contract.PayloadRepository,
	serviceURL string,
	timeout time.Duration,
	sysLogger logger.ILogger,
) IUtilityService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &utilityService{
		payloadRepo: payloadRepo,
		serviceURL:  serviceURL,
		client:      &http.Client{Timeout: timeout},
		logger:      sysLogger,
	}
}

func (s *utilityService) GenerateUtilityReport(ctx context.Context, sessionId string) (map[string]dto.UtilityFlowResult, error) {
	if s.serviceURL == "" {
		return nil, ErrUtilityModeDisabled
	}

	payloads, err := s.payloadRepo.FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if len(payloads) == 0 {
		return nil, ErrSessionNotFound
	}

	// Group raw payload bodies per flow, preserving capture order.
	flows := make(map[string][]any)
	for _, p := range payloads {
		body := map[string]any{"action": p.Action}
		var request any
		if json.Unmarshal(p.RequestJson, &request) == nil {
			body["request"] = request
		}
		if len(p.ResponseJson) > 0 {
			var response any
			if json.Unmarshal(p.ResponseJson, &response) == nil {
				body["response"] = response
			}
		}
		flows[p.FlowId] = append(flows[p.FlowId], body)
	}

	report := make(map[string]dto.UtilityFlowResult, len(flows))
	for flowId, bodies := range flows {
		report[flowId] = s.validateFlow(ctx, flowId, bodies)
	}
	return report, nil
}

// validateFlow calls the external service for one flow. HTTP-level errors
// and non-2xx responses both become typed failure results.
func (s *utilityService) validateFlow(ctx context.Context, flowId string, payloads []any) dto.UtilityFlowResult {
	reqBody, err := json.Marshal(dto.UtilityServiceRequest{FlowId: flowId, Payloads: payloads})
	if err != nil {
		return dto.UtilityFlowResult{
			Success: false,
			Error:   &dto.UtilityError{Message: err.Error()},
			Details: "could not encode flow payloads",
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.serviceURL, bytes.NewReader(reqBody))
	if err != nil {
		return dto.UtilityFlowResult{
			Success: false,
			Error:   &dto.UtilityError{Message: err.Error()},
			Details: "could not build validation service request",
		}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("utility", "validation service unreachable", map[string]interface{}{
			"flow_id": flowId, "error": err.Error(),
		})
		return dto.UtilityFlowResult{
			Success: false,
			Error:   &dto.UtilityError{Message: err.Error()},
			Details: "validation service unreachable",
		}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return dto.UtilityFlowResult{
			Success: false,
			Error:   &dto.UtilityError{Status: resp.StatusCode, Body: string(body)},
			Details: fmt.Sprintf("validation service returned status %d", resp.StatusCode),
		}
	}

	var verdict any
	if err := json.Unmarshal(body, &verdict); err != nil {
		return dto.UtilityFlowResult{
			Success: false,
			Error:   &dto.UtilityError{Status: resp.StatusCode, Message: err.Error()},
			Details: "validation service returned a non-JSON body",
		}
	}

	return dto.UtilityFlowResult{
		Success:  true,
		Response: verdict,
		Details:  fmt.Sprintf("validated %d payloads", len(payloads)),
	}
}
