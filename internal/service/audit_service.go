package service

import (
	"context"
	"encoding/json"
	"log"

	"flow-validation-be/internal/dto"
	"flow-validation-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IAuditService interface {
	Consume(ctx context.Context) error
}

// auditService subscribes to report-generated events and appends them to the
// isolated audit log, so every validation run leaves a trace even though
// reports themselves are never persisted.
type auditService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	auditLogger logger.ILogger
}

func NewAuditService(pubSub *gochannel.GoChannel, topicName string, auditLogger logger.ILogger) IAuditService {
	return &auditService{
		pubSub:      pubSub,
		topicName:   topicName,
		auditLogger: auditLogger,
	}
}

func (s *auditService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *auditService) processMessage(msg *message.Message) {
	var payload dto.ReportGeneratedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal report event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	s.auditLogger.Info("audit", "report generated", map[string]interface{}{
		"session_id":    payload.SessionId,
		"flow_count":    payload.FlowCount,
		"invalid_flows": payload.InvalidFlows,
	})
	msg.Ack()
}
