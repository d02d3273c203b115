package dto

// ── DTO del módulo de etiquetado regulatorio ──

// UpsertLabelRequest crea o actualiza la etiqueta regulatoria de un lote o unidad
type UpsertLabelRequest struct {
	ProductionBatchID string  `json:"production_batch_id" binding:"required,uuid"`
	BatchUnitID       *string `json:"batch_unit_id"       binding:"omitempty,uuid"`
	ScopeType         string  `json:"scope_type"          binding:"required,oneof=LOTE SERIAL"`
	DeviceType        string  `json:"device_type"         binding:"required,oneof=CLASE_I CLASE_II CLASE_III"`
	CodingStandard    string  `json:"coding_standard"     binding:"required,oneof=GS1 HIBCC INTERNO"`
	LotCode           string  `json:"lot_code"            binding:"required,max=50"`
	SerialCode        *string `json:"serial_code"         binding:"omitempty,max=50"`
	ManufactureDate   string  `json:"manufacture_date"    binding:"required"` // "2026-01-15"
	ExpirationDate    *string `json:"expiration_date"`
	GTIN              *string `json:"gtin"                binding:"omitempty,max=14"`
	UdiDi             *string `json:"udi_di"              binding:"omitempty,max=50"`
	UdiPi             *string `json:"udi_pi"              binding:"omitempty,max=50"`
	ManufacturerName  *string `json:"manufacturer_name"   binding:"omitempty,max=200"`
	InvimaCode        *string `json:"invima_code"         binding:"omitempty,max=50"`
	InternalCode      *string `json:"internal_code"       binding:"omitempty,max=100"`
}

// LabelResponse etiqueta regulatoria
type LabelResponse struct {
	ID                string   `json:"id"`
	ProductionBatchID string   `json:"production_batch_id"`
	BatchUnitID       *string  `json:"batch_unit_id,omitempty"`
	ScopeType         string   `json:"scope_type"`
	DeviceType        string   `json:"device_type"`
	CodingStandard    string   `json:"coding_standard"`
	LotCode           string   `json:"lot_code"`
	SerialCode        *string  `json:"serial_code,omitempty"`
	ManufactureDate   string   `json:"manufacture_date"`
	ExpirationDate    *string  `json:"expiration_date,omitempty"`
	GTIN              *string  `json:"gtin,omitempty"`
	UdiDi             *string  `json:"udi_di,omitempty"`
	UdiPi             *string  `json:"udi_pi,omitempty"`
	ManufacturerName  *string  `json:"manufacturer_name,omitempty"`
	InvimaCode        *string  `json:"invima_code,omitempty"`
	InternalCode      *string  `json:"internal_code,omitempty"`
	CodingValue       string   `json:"coding_value"`
	Status            string   `json:"status"`
	ValidationErrors  []string `json:"validation_errors"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

// DispatchReadinessResponse resultado del chequeo de aptitud de despacho
type DispatchReadinessResponse struct {
	Eligible              bool     `json:"eligible"`
	Errors                []string `json:"errors"`
	RequiredSerialLabels  int      `json:"required_serial_labels"`
	ValidatedSerialLabels int      `json:"validated_serial_labels"`
}
