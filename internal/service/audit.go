package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"cumplimed/backend/internal/model"
	"cumplimed/backend/internal/repository"
)

// auditor emisor de eventos de auditoría compartido por todos los motores.
// La escritura es de mejor esfuerzo: un fallo del sink nunca revierte ni
// aborta la mutación principal, solo queda en el log.
type auditor struct {
	repo   repository.AuditRepository
	logger *zap.Logger
}

func newAuditor(repo repository.AuditRepository, logger *zap.Logger) *auditor {
	return &auditor{repo: repo, logger: logger}
}

func (a *auditor) emit(ctx context.Context, entityType, entityID, action string, actor string, metadata map[string]interface{}) {
	entry := &model.AuditLog{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		OccurredAt: time.Now(),
	}
	if actor != "" {
		entry.Actor = &actor
	}
	if len(metadata) > 0 {
		if raw, err := json.Marshal(metadata); err == nil {
			s := string(raw)
			entry.Metadata = &s
		}
	}

	if err := a.repo.Log(ctx, entry); err != nil {
		a.logger.Warn("no se pudo escribir el evento de auditoría",
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
