package service

import (
	"encoding/json"

	"flow-validation-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	PublishReportGenerated(sessionId string, flowCount, invalidFlows int) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (s *publisherService) PublishReportGenerated(sessionId string, flowCount, invalidFlows int) error {
	payload := dto.ReportGeneratedMessage{
		SessionId:    sessionId,
		FlowCount:    flowCount,
		InvalidFlows: invalidFlows,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	return s.pubSub.Publish(s.topicName, msg)
}
