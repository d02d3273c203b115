package dto

// ── DTO del módulo de liberación de lotes ──

// UpsertChecklistRequest guarda el checklist de liberación de un lote
// Cada guardado invalida cualquier firma previa.
type UpsertChecklistRequest struct {
	ProductionBatchID string  `json:"production_batch_id" binding:"required,uuid"`
	QCApproved        bool    `json:"qc_approved"`
	LabelingValidated bool    `json:"labeling_validated"`
	DocumentsCurrent  bool    `json:"documents_current"`
	EvidencesComplete bool    `json:"evidences_complete"`
	ChecklistNotes    *string `json:"checklist_notes"`
	RejectedReason    *string `json:"rejected_reason"`
}

// SignReleaseRequest firma la liberación QA de un lote
type SignReleaseRequest struct {
	ApprovalMethod    string `json:"approval_method"    binding:"required,max=50"`
	ApprovalSignature string `json:"approval_signature" binding:"required"`
}

// ReleaseResponse estado de liberación de un lote
type ReleaseResponse struct {
	ID                string  `json:"id"`
	ProductionBatchID string  `json:"production_batch_id"`
	QCApproved        bool    `json:"qc_approved"`
	LabelingValidated bool    `json:"labeling_validated"`
	DocumentsCurrent  bool    `json:"documents_current"`
	EvidencesComplete bool    `json:"evidences_complete"`
	ChecklistNotes    *string `json:"checklist_notes,omitempty"`
	RejectedReason    *string `json:"rejected_reason,omitempty"`
	Status            string  `json:"status"`
	SignedBy          *string `json:"signed_by,omitempty"`
	ApprovalMethod    *string `json:"approval_method,omitempty"`
	SignedAt          *string `json:"signed_at,omitempty"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}
