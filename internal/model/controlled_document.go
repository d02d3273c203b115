package model

import "time"

// Estados del ciclo de vida de un documento controlado
const (
	DocumentStatusDraft    = "DRAFT"
	DocumentStatusInReview = "IN_REVIEW"
	DocumentStatusApproved = "APPROVED"
	DocumentStatusObsolete = "OBSOLETE"
)

// Procesos que exigen documento controlado vigente
const (
	ProcessLabeling     = "ETIQUETADO"
	ProcessBatchRelease = "LIBERACION_LOTE"
)

// ControlledDocument documento controlado del sistema de calidad — tabla controlled_documents
// Identidad de negocio = (code, version); nunca se elimina, solo se vuelve OBSOLETE.
type ControlledDocument struct {
	DocumentID     string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"document_id"`
	Code           string     `gorm:"type:varchar(50);not null;uniqueIndex:ux_documents_code_version" json:"code"`
	Title          string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Process        string     `gorm:"type:varchar(50);not null;index"                json:"process"`
	Category       string     `gorm:"type:varchar(50)"                               json:"category,omitempty"`
	Version        int        `gorm:"not null;default:1;uniqueIndex:ux_documents_code_version" json:"version"`
	Status         string     `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"` // DRAFT | IN_REVIEW | APPROVED | OBSOLETE
	Content        string     `gorm:"type:text"                                      json:"content,omitempty"`
	EffectiveDate  *time.Time `json:"effective_date,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	ApprovedBy     *string    `gorm:"type:varchar(100)" json:"approved_by,omitempty"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	ApprovalMethod *string    `gorm:"type:varchar(50)"  json:"approval_method,omitempty"`
	BaseModel
}

// TableName nombre de la tabla
func (ControlledDocument) TableName() string { return "controlled_documents" }
