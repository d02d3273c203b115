package service

import (
	"go.uber.org/zap"

	"cumplimed/backend/internal/repository"
	"cumplimed/backend/pkg/redis"
)

// Service punto de entrada agregado de todos los servicios
type Service struct {
	Document      DocumentService
	ChangeControl ChangeControlService
	Label         LabelService
	Release       ReleaseService
	Recall        RecallService
	SystemConfig  SystemConfigService
}

// NewService crea el agregado de servicios
// El cliente Redis es opcional: con nil el snapshot de configuración se lee
// siempre de la base.
func NewService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) *Service {
	cfgSvc := NewSystemConfigService(repo, cache, logger)
	docSvc := NewDocumentService(repo, logger)
	labelSvc := NewLabelService(repo, cfgSvc, docSvc, logger)

	return &Service{
		Document:      docSvc,
		ChangeControl: NewChangeControlService(repo, logger),
		Label:         labelSvc,
		Release:       NewReleaseService(repo, cfgSvc, docSvc, labelSvc, logger),
		Recall:        NewRecallService(repo, logger),
		SystemConfig:  cfgSvc,
	}
}
