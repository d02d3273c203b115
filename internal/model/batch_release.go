package model

import "time"

// Estados de la liberación de lote
const (
	ReleaseStatusPending  = "PENDIENTE_LIBERACION"
	ReleaseStatusReleased = "LIBERADO_QA"
	ReleaseStatusRejected = "RECHAZADO"
)

// BatchRelease checklist y firma de liberación QA — tabla batch_releases
// Una fila por lote de producción (upsert).
type BatchRelease struct {
	ReleaseID         string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"release_id"`
	ProductionBatchID string     `gorm:"type:uuid;not null;uniqueIndex" json:"production_batch_id"`
	QCApproved        bool       `gorm:"not null;default:false" json:"qc_approved"`
	LabelingValidated bool       `gorm:"not null;default:false" json:"labeling_validated"`
	DocumentsCurrent  bool       `gorm:"not null;default:false" json:"documents_current"`
	EvidencesComplete bool       `gorm:"not null;default:false" json:"evidences_complete"`
	ChecklistNotes    *string    `gorm:"type:text" json:"checklist_notes,omitempty"`
	RejectedReason    *string    `gorm:"type:text" json:"rejected_reason,omitempty"`
	Status            string     `gorm:"type:varchar(30);not null;default:'PENDIENTE_LIBERACION'" json:"status"`
	SignedBy          *string    `gorm:"type:varchar(100)" json:"signed_by,omitempty"`
	ApprovalMethod    *string    `gorm:"type:varchar(50)" json:"approval_method,omitempty"`
	ApprovalSignature *string    `gorm:"type:text" json:"approval_signature,omitempty"`
	SignedAt          *time.Time `json:"signed_at,omitempty"`
	BaseModel

	ProductionBatch *ProductionBatch `gorm:"foreignKey:ProductionBatchID;references:BatchID" json:"production_batch,omitempty"`
}

// TableName nombre de la tabla
func (BatchRelease) TableName() string { return "batch_releases" }
