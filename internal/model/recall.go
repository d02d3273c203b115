package model

import "time"

// Estados del caso de retiro de producto
const (
	RecallStatusOpen      = "ABIERTO"
	RecallStatusExecuting = "EN_EJECUCION"
	RecallStatusClosed    = "CERRADO"
)

// Estados de una notificación de retiro
const (
	NotificationStatusPending   = "PENDIENTE"
	NotificationStatusSent      = "ENVIADA"
	NotificationStatusConfirmed = "CONFIRMADA"
	NotificationStatusFailed    = "FALLIDA"
)

// RecallCase caso de retiro de producto del mercado — tabla recall_cases
type RecallCase struct {
	RecallID              string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"recall_id"`
	Code                  string     `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	ScopeType             string     `gorm:"type:varchar(10);not null" json:"scope_type"` // LOTE | SERIAL
	LotCode               *string    `gorm:"type:varchar(50)" json:"lot_code,omitempty"`
	SerialCode            *string    `gorm:"type:varchar(50)" json:"serial_code,omitempty"`
	Reason                string     `gorm:"type:text" json:"reason,omitempty"`
	AffectedQuantity      int        `gorm:"not null;default:0" json:"affected_quantity"`
	RetrievedQuantity     int        `gorm:"not null;default:0" json:"retrieved_quantity"`
	CoveragePercent       float64    `gorm:"type:numeric(5,2);not null;default:0" json:"coverage_percent"` // derivado
	Status                string     `gorm:"type:varchar(20);not null;default:'ABIERTO';index" json:"status"`
	StartedAt             time.Time  `gorm:"not null" json:"started_at"`
	EndedAt               *time.Time `json:"ended_at,omitempty"`
	ClosureEvidence       *string    `gorm:"type:text" json:"closure_evidence,omitempty"`
	TargetResponseMinutes *int       `json:"target_response_minutes,omitempty"`
	ActualResponseMinutes *int       `json:"actual_response_minutes,omitempty"`
	BaseModel

	Notifications []RecallNotification `gorm:"foreignKey:RecallID;references:RecallID;constraint:OnDelete:CASCADE" json:"notifications,omitempty"`
}

// TableName nombre de la tabla
func (RecallCase) TableName() string { return "recall_cases" }

// RecallNotification notificación a un destinatario dentro de un retiro — tabla recall_notifications
type RecallNotification struct {
	NotificationID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	RecallID       string     `gorm:"type:uuid;not null;index" json:"recall_id"`
	Recipient      string     `gorm:"type:varchar(200);not null" json:"recipient"`
	Channel        string     `gorm:"type:varchar(50);not null" json:"channel"`
	Status         string     `gorm:"type:varchar(20);not null;default:'PENDIENTE'" json:"status"` // PENDIENTE | ENVIADA | CONFIRMADA | FALLIDA
	SentAt         *time.Time `json:"sent_at,omitempty"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	BaseModel
}

// TableName nombre de la tabla
func (RecallNotification) TableName() string { return "recall_notifications" }
