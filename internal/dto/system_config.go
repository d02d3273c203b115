package dto

// ── DTO del módulo de configuración operacional ──

// UpdateSystemConfigRequest actualización parcial de la configuración global
type UpdateSystemConfigRequest struct {
	OperationMode        *string `json:"operation_mode"         binding:"omitempty,oneof=lote serial"`
	LabelingDocumentCode *string `json:"labeling_document_code" binding:"omitempty,min=2,max=50"`
	ReleaseDocumentCode  *string `json:"release_document_code"  binding:"omitempty,min=2,max=50"`
}

// SystemConfigResponse configuración operacional vigente
type SystemConfigResponse struct {
	OperationMode        string `json:"operation_mode"`
	LabelingDocumentCode string `json:"labeling_document_code"`
	ReleaseDocumentCode  string `json:"release_document_code"`
	UpdatedAt            string `json:"updated_at"`
}
