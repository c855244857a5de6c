package implementation

import (
	"context"

	"flow-validation-be/internal/entity"
	"flow-validation-be/internal/mapper"
	"flow-validation-be/internal/model"
	"flow-validation-be/internal/repository/contract"
	"flow-validation-be/internal/repository/scope"

	"gorm.io/gorm"
)

type PayloadRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PayloadMapper
}

func NewPayloadRepository(db *gorm.DB) contract.PayloadRepository {
	return &PayloadRepositoryImpl{
		db:     db,
		mapper: mapper.NewPayloadMapper(),
	}
}

func (r *PayloadRepositoryImpl) Create(ctx context.Context, payload *entity.Payload) error {
	m := r.mapper.ToModel(payload)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*payload = *r.mapper.ToEntity(m)
	return nil
}

func (r *PayloadRepositoryImpl) CreateBulk(ctx context.Context, payloads []*entity.Payload) error {
	if len(payloads) == 0 {
		return nil
	}
	models := make([]*model.Payload, 0, len(payloads))
	for _, p := range payloads {
		models = append(models, r.mapper.ToModel(p))
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *PayloadRepositoryImpl) FindBySessionId(ctx context.Context, sessionId string) ([]*entity.Payload, error) {
	var models []*model.Payload
	err := r.db.WithContext(ctx).
		Scopes(scope.BySession(sessionId), scope.OrderByCapture).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
