package model

import "time"

// AuditLog evento de auditoría (solo escritura para el núcleo) — tabla audit_logs
type AuditLog struct {
	AuditID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"audit_id"`
	EntityType string    `gorm:"type:varchar(50);not null;index" json:"entity_type"`
	EntityID   string    `gorm:"type:varchar(100);not null;index" json:"entity_id"`
	Action     string    `gorm:"type:varchar(50);not null" json:"action"`
	Actor      *string   `gorm:"type:varchar(100)" json:"actor,omitempty"`
	Metadata   *string   `gorm:"type:jsonb" json:"metadata,omitempty"`
	OccurredAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"occurred_at"`
}

// TableName nombre de la tabla
func (AuditLog) TableName() string { return "audit_logs" }
