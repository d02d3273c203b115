package dto

// ── DTO del módulo de retiros de producto ──

// CreateRecallRequest abre un caso de retiro
type CreateRecallRequest struct {
	ScopeType             string  `json:"scope_type"  binding:"required,oneof=LOTE SERIAL"`
	LotCode               *string `json:"lot_code"    binding:"omitempty,max=50"`
	SerialCode            *string `json:"serial_code" binding:"omitempty,max=50"`
	Reason                string  `json:"reason"`
	AffectedQuantity      int     `json:"affected_quantity" binding:"required,min=0"`
	TargetResponseMinutes *int    `json:"target_response_minutes" binding:"omitempty,min=1"`
}

// UpdateRecallProgressRequest actualiza las unidades recuperadas
type UpdateRecallProgressRequest struct {
	RetrievedQuantity int `json:"retrieved_quantity" binding:"min=0"`
}

// CloseRecallRequest cierra un caso de retiro
type CloseRecallRequest struct {
	ClosureEvidence       string  `json:"closure_evidence" binding:"required"`
	EndedAt               *string `json:"ended_at"` // RFC3339; por defecto ahora
	ActualResponseMinutes *int    `json:"actual_response_minutes" binding:"omitempty,min=1"`
}

// AddNotificationRequest agrega una notificación al caso
type AddNotificationRequest struct {
	Recipient string  `json:"recipient" binding:"required,max=200"`
	Channel   string  `json:"channel"   binding:"required,max=50"`
	Status    *string `json:"status"    binding:"omitempty,oneof=PENDIENTE ENVIADA CONFIRMADA FALLIDA"`
	SentAt    *string `json:"sent_at"`
}

// NotificationResponse notificación de retiro
type NotificationResponse struct {
	ID             string  `json:"id"`
	Recipient      string  `json:"recipient"`
	Channel        string  `json:"channel"`
	Status         string  `json:"status"`
	SentAt         *string `json:"sent_at,omitempty"`
	AcknowledgedAt *string `json:"acknowledged_at,omitempty"`
}

// RecallResponse caso de retiro con notificaciones
type RecallResponse struct {
	ID                    string                 `json:"id"`
	Code                  string                 `json:"code"`
	ScopeType             string                 `json:"scope_type"`
	LotCode               *string                `json:"lot_code,omitempty"`
	SerialCode            *string                `json:"serial_code,omitempty"`
	Reason                string                 `json:"reason,omitempty"`
	AffectedQuantity      int                    `json:"affected_quantity"`
	RetrievedQuantity     int                    `json:"retrieved_quantity"`
	CoveragePercent       float64                `json:"coverage_percent"`
	Status                string                 `json:"status"`
	StartedAt             string                 `json:"started_at"`
	EndedAt               *string                `json:"ended_at,omitempty"`
	TargetResponseMinutes *int                   `json:"target_response_minutes,omitempty"`
	ActualResponseMinutes *int                   `json:"actual_response_minutes,omitempty"`
	Notifications         []NotificationResponse `json:"notifications"`
}
