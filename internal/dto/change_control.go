package dto

// ── DTO del módulo de control de cambios ──

// CreateChangeControlRequest solicitud de creación de control de cambios
type CreateChangeControlRequest struct {
	Title           string  `json:"title"        binding:"required,min=2,max=200"`
	Description     string  `json:"description"`
	Type            string  `json:"type"         binding:"omitempty,max=50"`
	ImpactLevel     string  `json:"impact_level" binding:"required,oneof=BAJO MEDIO ALTO CRITICO"`
	LinkedDocument  *string `json:"linked_document_id" binding:"omitempty,uuid"`
	AffectedOrder   *string `json:"affected_order_id"  binding:"omitempty,uuid"`
	AffectedBatch   *string `json:"affected_batch_id"  binding:"omitempty,uuid"`
}

// UpdateChangeControlRequest solicitud de actualización (parcial)
type UpdateChangeControlRequest struct {
	Title          *string `json:"title"        binding:"omitempty,min=2,max=200"`
	Description    *string `json:"description"`
	Type           *string `json:"type"         binding:"omitempty,max=50"`
	ImpactLevel    *string `json:"impact_level" binding:"omitempty,oneof=BAJO MEDIO ALTO CRITICO"`
	Status         *string `json:"status"       binding:"omitempty,oneof=DRAFT IN_EVALUACION APROBADO IMPLEMENTADO CANCELADO"`
	LinkedDocument *string `json:"linked_document_id" binding:"omitempty,uuid"`
	AffectedOrder  *string `json:"affected_order_id"  binding:"omitempty,uuid"`
	AffectedBatch  *string `json:"affected_batch_id"  binding:"omitempty,uuid"`
}

// UpsertApprovalRequest registra o actualiza la aprobación de un rol
type UpsertApprovalRequest struct {
	Role          string  `json:"role"     binding:"required,min=2,max=50"`
	Decision      string  `json:"decision" binding:"required,oneof=PENDIENTE APROBADO RECHAZADO"`
	Approver      *string `json:"approver" binding:"omitempty,max=100"`
	DecisionNotes *string `json:"decision_notes"`
}

// ApprovalResponse aprobación por rol
type ApprovalResponse struct {
	ID            string  `json:"id"`
	Role          string  `json:"role"`
	Approver      *string `json:"approver,omitempty"`
	Decision      string  `json:"decision"`
	DecisionNotes *string `json:"decision_notes,omitempty"`
	DecidedAt     *string `json:"decided_at,omitempty"`
}

// ChangeControlResponse control de cambios con sus aprobaciones
type ChangeControlResponse struct {
	ID             string             `json:"id"`
	Code           string             `json:"code"`
	Title          string             `json:"title"`
	Description    string             `json:"description,omitempty"`
	Type           string             `json:"type,omitempty"`
	ImpactLevel    string             `json:"impact_level"`
	Status         string             `json:"status"`
	LinkedDocument *string            `json:"linked_document_id,omitempty"`
	AffectedOrder  *string            `json:"affected_order_id,omitempty"`
	AffectedBatch  *string            `json:"affected_batch_id,omitempty"`
	Approvals      []ApprovalResponse `json:"approvals"`
	CreatedAt      string             `json:"created_at"`
	UpdatedAt      string             `json:"updated_at"`
}
