package repository

import (
	"context"

	"gorm.io/gorm"

	"cumplimed/backend/internal/model"
)

// AuditRepository sink de auditoría (solo escritura, mejor esfuerzo)
type AuditRepository interface {
	Log(ctx context.Context, entry *model.AuditLog) error
}

type auditRepo struct {
	db *gorm.DB
}

// NewAuditRepo crea una instancia de AuditRepository
func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) Log(ctx context.Context, entry *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
