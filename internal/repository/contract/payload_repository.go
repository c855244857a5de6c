package contract

import (
	"context"

	"flow-validation-be/internal/entity"
)

type PayloadRepository interface {
	Create(ctx context.Context, payload *entity.Payload) error
	CreateBulk(ctx context.Context, payloads []*entity.Payload) error
	FindBySessionId(ctx context.Context, sessionId string) ([]*entity.Payload, error)
}
