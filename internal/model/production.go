package model

// Estados de control de calidad del lote
const (
	QCStatusPending = "PENDING"
	QCStatusPassed  = "PASSED"
	QCStatusFailed  = "FAILED"
)

// Estados de empaque del lote
const (
	PackagingStatusPending = "PENDING"
	PackagingStatusPacked  = "PACKED"
)

// ProductionBatch lote de producción — tabla production_batches
// Punto de unión entre liberación, etiquetado e incidencias de calidad.
type ProductionBatch struct {
	BatchID         string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"batch_id"`
	BatchNumber     string  `gorm:"type:varchar(50);not null;uniqueIndex" json:"batch_number"`
	ProductID       string  `gorm:"type:uuid;not null;index" json:"product_id"`
	QCStatus        string  `gorm:"column:qc_status;type:varchar(20);not null;default:'PENDING'" json:"qc_status"`
	PackagingStatus string  `gorm:"type:varchar(20);not null;default:'PENDING'" json:"packaging_status"`
	Quantity        int     `gorm:"not null;default:0" json:"quantity"`
	BaseModel

	Product *Product    `gorm:"foreignKey:ProductID;references:ProductID" json:"product,omitempty"`
	Units   []BatchUnit `gorm:"foreignKey:ProductionBatchID;references:BatchID" json:"units,omitempty"`
}

// TableName nombre de la tabla
func (ProductionBatch) TableName() string { return "production_batches" }

// BatchUnit unidad serializada de un lote — tabla batch_units
type BatchUnit struct {
	UnitID            string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"unit_id"`
	ProductionBatchID string `gorm:"type:uuid;not null;index" json:"production_batch_id"`
	SerialNumber      string `gorm:"type:varchar(50);not null" json:"serial_number"`
	Packaged          bool   `gorm:"not null;default:false" json:"packaged"`
	QCPassed          bool   `gorm:"column:qc_passed;not null;default:false" json:"qc_passed"`
	Rejected          bool   `gorm:"not null;default:false" json:"rejected"`
	BaseModel
}

// TableName nombre de la tabla
func (BatchUnit) TableName() string { return "batch_units" }
