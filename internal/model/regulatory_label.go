package model

import "time"

// Alcance de la etiqueta
const (
	LabelScopeLot    = "LOTE"
	LabelScopeSerial = "SERIAL"
)

// Clasificación de riesgo del dispositivo
const (
	DeviceTypeClassI   = "CLASE_I"
	DeviceTypeClassII  = "CLASE_II"
	DeviceTypeClassIII = "CLASE_III"
)

// Estándares de codificación soportados
const (
	CodingStandardGS1      = "GS1"
	CodingStandardHIBCC    = "HIBCC"
	CodingStandardInternal = "INTERNO"
)

// Estados de la etiqueta regulatoria
const (
	LabelStatusDraft     = "BORRADOR"
	LabelStatusValidated = "VALIDADA"
	LabelStatusBlocked   = "BLOQUEADA"
)

// RegulatoryLabel etiqueta regulatoria — tabla regulatory_labels
// Unicidad de negocio: una etiqueta LOTE por lote (unit nulo) y una etiqueta
// SERIAL por unidad; la aplicación la garantiza con buscar-antes-de-crear y
// la base la cierra con índices únicos parciales.
type RegulatoryLabel struct {
	LabelID           string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"label_id"`
	ProductionBatchID string      `gorm:"type:uuid;not null;index" json:"production_batch_id"`
	BatchUnitID       *string     `gorm:"type:uuid;index" json:"batch_unit_id,omitempty"`
	ScopeType         string      `gorm:"type:varchar(10);not null" json:"scope_type"`   // LOTE | SERIAL
	DeviceType        string      `gorm:"type:varchar(20);not null" json:"device_type"`  // CLASE_I | CLASE_II | CLASE_III
	CodingStandard    string      `gorm:"type:varchar(10);not null" json:"coding_standard"` // GS1 | HIBCC | INTERNO
	LotCode           string      `gorm:"type:varchar(50);not null" json:"lot_code"`
	SerialCode        *string     `gorm:"type:varchar(50)" json:"serial_code,omitempty"`
	ManufactureDate   time.Time   `gorm:"not null" json:"manufacture_date"`
	ExpirationDate    *time.Time  `json:"expiration_date,omitempty"`
	GTIN              *string     `gorm:"column:gtin;type:varchar(14)" json:"gtin,omitempty"`
	UdiDi             *string     `gorm:"column:udi_di;type:varchar(50)" json:"udi_di,omitempty"`
	UdiPi             *string     `gorm:"column:udi_pi;type:varchar(50)" json:"udi_pi,omitempty"`
	ManufacturerName  *string     `gorm:"type:varchar(200)" json:"manufacturer_name,omitempty"`
	InvimaCode        *string     `gorm:"type:varchar(50)" json:"invima_code,omitempty"`
	InternalCode      *string     `gorm:"type:varchar(100)" json:"internal_code,omitempty"`
	CodingValue       string      `gorm:"type:text" json:"coding_value"`           // derivado, nunca editado a mano
	Status            string      `gorm:"type:varchar(20);not null;default:'BORRADOR'" json:"status"` // BORRADOR | VALIDADA | BLOQUEADA
	ValidationErrors  StringArray `gorm:"type:text[]" json:"validation_errors"`
	BaseModel

	// Asociaciones
	ProductionBatch *ProductionBatch `gorm:"foreignKey:ProductionBatchID;references:BatchID" json:"production_batch,omitempty"`
	BatchUnit       *BatchUnit       `gorm:"foreignKey:BatchUnitID;references:UnitID" json:"batch_unit,omitempty"`
}

// TableName nombre de la tabla
func (RegulatoryLabel) TableName() string { return "regulatory_labels" }
