package dto

// ── DTO del módulo de documentos controlados ──

// CreateDocumentRequest solicitud de creación de documento controlado
type CreateDocumentRequest struct {
	Code          string  `json:"code"           binding:"required,min=2,max=50"`
	Title         string  `json:"title"          binding:"required,min=2,max=200"`
	Process       string  `json:"process"        binding:"required,min=2,max=50"`
	Category      string  `json:"category"       binding:"omitempty,max=50"`
	Version       *int    `json:"version"        binding:"omitempty,min=1"`
	Content       string  `json:"content"`
	EffectiveDate *string `json:"effective_date"` // "2026-01-15"
	ExpiresAt     *string `json:"expires_at"`
}

// ApproveDocumentRequest solicitud de aprobación de documento
type ApproveDocumentRequest struct {
	ApprovalMethod *string `json:"approval_method" binding:"omitempty,max=50"`
}

// DocumentResponse respuesta con un documento controlado
type DocumentResponse struct {
	ID             string  `json:"id"`
	Code           string  `json:"code"`
	Title          string  `json:"title"`
	Process        string  `json:"process"`
	Category       string  `json:"category,omitempty"`
	Version        int     `json:"version"`
	Status         string  `json:"status"`
	Content        string  `json:"content,omitempty"`
	EffectiveDate  *string `json:"effective_date,omitempty"`
	ExpiresAt      *string `json:"expires_at,omitempty"`
	ApprovedBy     *string `json:"approved_by,omitempty"`
	ApprovedAt     *string `json:"approved_at,omitempty"`
	ApprovalMethod *string `json:"approval_method,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// ActiveDocumentsRequest filtro de documentos vigentes por proceso
type ActiveDocumentsRequest struct {
	Process string `form:"process" binding:"required,min=2,max=50"`
}
