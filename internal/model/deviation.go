package model

// Tipos de incidencia de calidad
const (
	DeviationTypeProcess = "DESVIACION_PROCESO"
	DeviationTypeOOS     = "OOS"
)

// Estados de una incidencia
const (
	DeviationStatusOpen   = "ABIERTA"
	DeviationStatusClosed = "CERRADA"
)

// Deviation desviación de proceso o caso OOS — tabla deviations
// Fuente de los bloqueos de despacho del subsistema Desviaciones/OOS;
// este núcleo solo la consulta, nunca la muta.
type Deviation struct {
	DeviationID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"deviation_id"`
	Code              string  `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	ProductionBatchID *string `gorm:"type:uuid;index" json:"production_batch_id,omitempty"`
	Type              string  `gorm:"type:varchar(30);not null" json:"type"` // DESVIACION_PROCESO | OOS
	Description       string  `gorm:"type:text" json:"description,omitempty"`
	Status            string  `gorm:"type:varchar(20);not null;default:'ABIERTA';index" json:"status"`
	BaseModel
}

// TableName nombre de la tabla
func (Deviation) TableName() string { return "deviations" }
