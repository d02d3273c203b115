package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"cumplimed/backend/internal/dto"
	"cumplimed/backend/internal/repository"
	"cumplimed/backend/pkg/redis"
)

// ── Errores del módulo de configuración operacional ──

var (
	ErrSystemConfigNotFound = errors.New("configuración operacional no inicializada")
)

// OperationalSnapshot vista inmutable de la configuración operacional que se
// inyecta en cada llamada de los motores de etiquetado y liberación; mantiene
// el núcleo testeable sin estado ambiente.
type OperationalSnapshot struct {
	OperationMode        string `json:"operation_mode"`
	LabelingDocumentCode string `json:"labeling_document_code"`
	ReleaseDocumentCode  string `json:"release_document_code"`
}

// SystemConfigService configuración operacional global
type SystemConfigService interface {
	Get(ctx context.Context) (*dto.SystemConfigResponse, error)
	Update(ctx context.Context, req *dto.UpdateSystemConfigRequest, actor string) (*dto.SystemConfigResponse, error)
	// Snapshot lectura con caché (Redis opcional) usada por los demás motores
	Snapshot(ctx context.Context) (*OperationalSnapshot, error)
}

const snapshotTTL = 30 * time.Second

type systemConfigService struct {
	repo   *repository.Repository
	cache  *redis.Client // nil = sin caché, lectura directa
	logger *zap.Logger
}

// NewSystemConfigService crea una instancia de SystemConfigService
func NewSystemConfigService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) SystemConfigService {
	return &systemConfigService{repo: repo, cache: cache, logger: logger}
}

// ────────────────────── Get ──────────────────────

func (s *systemConfigService) Get(ctx context.Context) (*dto.SystemConfigResponse, error) {
	cfg, err := s.repo.SystemConfig.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSystemConfigNotFound
		}
		s.logger.Error("error consultando configuración operacional", zap.Error(err))
		return nil, err
	}

	return &dto.SystemConfigResponse{
		OperationMode:        cfg.OperationMode,
		LabelingDocumentCode: cfg.LabelingDocumentCode,
		ReleaseDocumentCode:  cfg.ReleaseDocumentCode,
		UpdatedAt:            cfg.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// ────────────────────── Update ──────────────────────

func (s *systemConfigService) Update(ctx context.Context, req *dto.UpdateSystemConfigRequest, actor string) (*dto.SystemConfigResponse, error) {
	cfg, err := s.repo.SystemConfig.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSystemConfigNotFound
		}
		s.logger.Error("error consultando configuración operacional", zap.Error(err))
		return nil, err
	}

	if req.OperationMode != nil {
		cfg.OperationMode = *req.OperationMode
	}
	if req.LabelingDocumentCode != nil {
		cfg.LabelingDocumentCode = *req.LabelingDocumentCode
	}
	if req.ReleaseDocumentCode != nil {
		cfg.ReleaseDocumentCode = *req.ReleaseDocumentCode
	}
	cfg.UpdatedBy = &actor

	if err := s.repo.SystemConfig.Update(ctx, cfg); err != nil {
		s.logger.Error("error actualizando configuración operacional", zap.Error(err))
		return nil, err
	}

	// El snapshot cacheado queda obsoleto tras la actualización
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("no se pudo invalidar el snapshot en caché", zap.Error(err))
		}
	}

	return &dto.SystemConfigResponse{
		OperationMode:        cfg.OperationMode,
		LabelingDocumentCode: cfg.LabelingDocumentCode,
		ReleaseDocumentCode:  cfg.ReleaseDocumentCode,
		UpdatedAt:            cfg.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// ────────────────────── Snapshot ──────────────────────

func (s *systemConfigService) Snapshot(ctx context.Context) (*OperationalSnapshot, error) {
	if s.cache != nil {
		var snap OperationalSnapshot
		ok, err := s.cache.GetJSON(ctx, &snap)
		if err != nil {
			s.logger.Warn("error leyendo snapshot de caché, se consulta la base", zap.Error(err))
		} else if ok {
			return &snap, nil
		}
	}

	cfg, err := s.repo.SystemConfig.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSystemConfigNotFound
		}
		return nil, err
	}

	snap := &OperationalSnapshot{
		OperationMode:        cfg.OperationMode,
		LabelingDocumentCode: cfg.LabelingDocumentCode,
		ReleaseDocumentCode:  cfg.ReleaseDocumentCode,
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, snap, snapshotTTL); err != nil {
			s.logger.Warn("no se pudo cachear el snapshot", zap.Error(err))
		}
	}

	return snap, nil
}
