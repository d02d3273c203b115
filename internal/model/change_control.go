package model

import "time"

// Estados del ciclo de vida de un control de cambios
const (
	ChangeControlStatusDraft        = "DRAFT"
	ChangeControlStatusInEvaluation = "IN_EVALUACION"
	ChangeControlStatusApproved     = "APROBADO"
	ChangeControlStatusImplemented  = "IMPLEMENTADO"
	ChangeControlStatusCancelled    = "CANCELADO"
)

// Niveles de impacto
const (
	ImpactLevelLow      = "BAJO"
	ImpactLevelMedium   = "MEDIO"
	ImpactLevelHigh     = "ALTO"
	ImpactLevelCritical = "CRITICO"
)

// Decisiones de aprobación
const (
	ApprovalDecisionPending  = "PENDIENTE"
	ApprovalDecisionApproved = "APROBADO"
	ApprovalDecisionRejected = "RECHAZADO"
)

// ChangeControl control de cambios — tabla change_controls
type ChangeControl struct {
	ChangeControlID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"change_control_id"`
	Code              string  `gorm:"type:varchar(50);not null;uniqueIndex"          json:"code"`
	Title             string  `gorm:"type:varchar(200);not null"                     json:"title"`
	Description       string  `gorm:"type:text"                                      json:"description,omitempty"`
	Type              string  `gorm:"type:varchar(50)"                               json:"type,omitempty"`
	ImpactLevel       string  `gorm:"type:varchar(20);not null;default:'BAJO'"       json:"impact_level"` // BAJO | MEDIO | ALTO | CRITICO
	Status            string  `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	LinkedDocumentID  *string `gorm:"type:uuid" json:"linked_document_id,omitempty"`
	AffectedOrderID   *string `gorm:"type:uuid" json:"affected_order_id,omitempty"`
	AffectedBatchID   *string `gorm:"type:uuid" json:"affected_batch_id,omitempty"`
	BaseModel

	// Asociaciones
	LinkedDocument *ControlledDocument     `gorm:"foreignKey:LinkedDocumentID;references:DocumentID" json:"linked_document,omitempty"`
	Approvals      []ChangeControlApproval `gorm:"foreignKey:ChangeControlID;references:ChangeControlID;constraint:OnDelete:CASCADE" json:"approvals,omitempty"`
}

// TableName nombre de la tabla
func (ChangeControl) TableName() string { return "change_controls" }

// ChangeControlApproval aprobación por rol de un control de cambios — tabla change_control_approvals
// Una fila por rol distinto por control de cambios (upsert por rol).
type ChangeControlApproval struct {
	ApprovalID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"approval_id"`
	ChangeControlID string     `gorm:"type:uuid;not null;uniqueIndex:ux_cc_approvals_role" json:"change_control_id"`
	Role            string     `gorm:"type:varchar(50);not null;uniqueIndex:ux_cc_approvals_role" json:"role"`
	Approver        *string    `gorm:"type:varchar(100)" json:"approver,omitempty"`
	Decision        string     `gorm:"type:varchar(20);not null;default:'PENDIENTE'" json:"decision"` // PENDIENTE | APROBADO | RECHAZADO
	DecisionNotes   *string    `gorm:"type:text" json:"decision_notes,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	BaseModel
}

// TableName nombre de la tabla
func (ChangeControlApproval) TableName() string { return "change_control_approvals" }
