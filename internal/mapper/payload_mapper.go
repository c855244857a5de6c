package mapper

import (
	"encoding/json"

	"flow-validation-be/internal/entity"
	"flow-validation-be/internal/model"

	"gorm.io/datatypes"
)

type PayloadMapper struct{}

func NewPayloadMapper() *PayloadMapper {
	return &PayloadMapper{}
}

func (m *PayloadMapper) ToEntity(p *model.Payload) *entity.Payload {
	if p == nil {
		return nil
	}

	var responseJson json.RawMessage
	if len(p.ResponseJson) > 0 {
		responseJson = json.RawMessage(p.ResponseJson)
	}

	return &entity.Payload{
		Id:           p.Id,
		SessionId:    p.SessionId,
		FlowId:       p.FlowId,
		Action:       p.Action,
		RequestJson:  json.RawMessage(p.RequestJson),
		ResponseJson: responseJson,
		CreatedAt:    p.CreatedAt,
	}
}

func (m *PayloadMapper) ToModel(p *entity.Payload) *model.Payload {
	if p == nil {
		return nil
	}

	return &model.Payload{
		Id:           p.Id,
		SessionId:    p.SessionId,
		FlowId:       p.FlowId,
		Action:       p.Action,
		RequestJson:  datatypes.JSON(p.RequestJson),
		ResponseJson: datatypes.JSON(p.ResponseJson),
		CreatedAt:    p.CreatedAt,
	}
}

func (m *PayloadMapper) ToEntities(models []*model.Payload) []*entity.Payload {
	entities := make([]*entity.Payload, 0, len(models))
	for _, p := range models {
		entities = append(entities, m.ToEntity(p))
	}
	return entities
}
