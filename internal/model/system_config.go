package model

// Modos de operación globales
const (
	OperationModeLot    = "lote"
	OperationModeSerial = "serial"
)

// SystemConfig configuración operacional global (fila única) — tabla system_config
// El modo de operación y los códigos de documento obligatorios son de solo
// lectura para los motores del núcleo; se inyectan como snapshot por llamada.
type SystemConfig struct {
	ConfigID                string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"config_id"`
	OperationMode           string `gorm:"type:varchar(10);not null;default:'lote'" json:"operation_mode"` // lote | serial
	LabelingDocumentCode    string `gorm:"type:varchar(50);not null" json:"labeling_document_code"`
	ReleaseDocumentCode     string `gorm:"type:varchar(50);not null" json:"release_document_code"`
	BaseModel
}

// TableName nombre de la tabla
func (SystemConfig) TableName() string { return "system_config" }
