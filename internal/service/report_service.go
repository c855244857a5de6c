package service

import (
	"context"
	"errors"

	"flow-validation-be/internal/pkg/logger"
	"flow-validation-be/internal/repository/contract"
	"flow-validation-be/pkg/events"
	pktNats "flow-validation-be/pkg/nats"
	"flow-validation-be/pkg/render"
	"flow-validation-be/pkg/validation"
)

// ErrSessionNotFound is returned when a session has no captured payloads.
var ErrSessionNotFound = errors.New("no payloads captured for session")

type IReportService interface {
	// GenerateReport runs the validation engine over the session's captured
	// payloads and returns the per-flow report.
	GenerateReport(ctx context.Context, sessionId string) (validation.Report, error)

	// RenderReport generates the report and renders it as HTML.
	RenderReport(ctx context.Context, sessionId string) ([]byte, error)
}

type reportService struct {
	payloadRepo      contract.PayloadRepository
	sequence         *validation.SequenceValidator
	renderer         *render.HTMLRenderer
	publisherService IPublisherService
	natsPub          *pktNats.Publisher
	logger           logger.ILogger
}

func NewReportService(
	payloadRepo contract.PayloadRepository,
	sequence *validation.SequenceValidator,
	renderer *render.HTMLRenderer,
	publisherService IPublisherService,
	natsPub *pktNats.Publisher,
	sysLogger logger.ILogger,
) IReportService {
	return &reportService{
		payloadRepo:      payloadRepo,
		sequence:         sequence,
		renderer:         renderer,
		publisherService: publisherService,
		natsPub:          natsPub,
		logger:           sysLogger,
	}
}

func (s *reportService) GenerateReport(ctx context.Context, sessionId string) (validation.Report, error) {
	payloads, err := s.payloadRepo.FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if len(payloads) == 0 {
		return nil, ErrSessionNotFound
	}

	records := make([]*validation.Record, 0, len(payloads))
	for _, p := range payloads {
		request, err := validation.ParseDocument(p.RequestJson)
		if err != nil {
			// A payload whose request cannot be decoded is dropped; the rest
			// of the session still produces a report.
			s.logger.Warn("report", "skipping payload with invalid request JSON", map[string]interface{}{
				"payload_id": p.Id.String(), "flow_id": p.FlowId, "error": err.Error(),
			})
			continue
		}
		response, err := validation.ParseDocument(p.ResponseJson)
		if err != nil {
			s.logger.Warn("report", "payload has invalid response JSON, validating request only", map[string]interface{}{
				"payload_id": p.Id.String(), "flow_id": p.FlowId, "error": err.Error(),
			})
			response = nil
		}
		records = append(records, validation.NewRecord(p.FlowId, p.Action, p.CreatedAt, request, response))
	}

	flows := validation.GroupAndSort(records)
	report := s.sequence.ValidateAll(ctx, sessionId, flows, validation.DefaultTemplate)

	s.publishReportGenerated(ctx, sessionId, report)
	return report, nil
}

func (s *reportService) RenderReport(ctx context.Context, sessionId string) ([]byte, error) {
	report, err := s.GenerateReport(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(sessionId, report)
}

// publishReportGenerated notifies the audit consumer and the NATS bus.
// Best-effort: a dead bus never fails the report.
func (s *reportService) publishReportGenerated(ctx context.Context, sessionId string, report validation.Report) {
	invalid := report.InvalidSequenceCount()

	if s.publisherService != nil {
		if err := s.publisherService.PublishReportGenerated(sessionId, len(report), invalid); err != nil {
			s.logger.Warn("report", "failed to publish report event", map[string]interface{}{
				"session_id": sessionId, "error": err.Error(),
			})
		}
	}

	if err := s.natsPub.Publish(ctx, events.NewReportGenerated(sessionId, len(report), invalid)); err != nil {
		s.logger.Warn("report", "failed to publish report event to NATS", map[string]interface{}{
			"session_id": sessionId, "error": err.Error(),
		})
	}
}
