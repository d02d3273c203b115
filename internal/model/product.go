package model

import "time"

// Estados del registro sanitario INVIMA
const (
	RegistrationStatusActive    = "ACTIVO"
	RegistrationStatusSuspended = "SUSPENDIDO"
	RegistrationStatusExpired   = "VENCIDO"
)

// Product producto (dispositivo médico) — tabla products
type Product struct {
	ProductID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"product_id"`
	Name           string  `gorm:"type:varchar(200);not null" json:"name"`
	Reference      string  `gorm:"type:varchar(50);not null;uniqueIndex" json:"reference"`
	DeviceType     string  `gorm:"type:varchar(20);not null;default:'CLASE_I'" json:"device_type"` // CLASE_I | CLASE_II | CLASE_III
	RequiresInvima bool    `gorm:"not null;default:false" json:"requires_invima"`
	GTIN           *string `gorm:"column:gtin;type:varchar(14)" json:"gtin,omitempty"`
	RegistrationID *string `gorm:"type:uuid" json:"registration_id,omitempty"`
	BaseModel

	Registration *SanitaryRegistration `gorm:"foreignKey:RegistrationID;references:RegistrationID" json:"registration,omitempty"`
}

// TableName nombre de la tabla
func (Product) TableName() string { return "products" }

// SanitaryRegistration registro sanitario INVIMA — tabla sanitary_registrations
type SanitaryRegistration struct {
	RegistrationID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"registration_id"`
	InvimaCode       string     `gorm:"type:varchar(50);not null;uniqueIndex" json:"invima_code"`
	ManufacturerName string     `gorm:"type:varchar(200);not null" json:"manufacturer_name"`
	Status           string     `gorm:"type:varchar(20);not null;default:'ACTIVO'" json:"status"` // ACTIVO | SUSPENDIDO | VENCIDO
	ValidFrom        *time.Time `json:"valid_from,omitempty"`
	ValidUntil       *time.Time `json:"valid_until,omitempty"`
	BaseModel
}

// TableName nombre de la tabla
func (SanitaryRegistration) TableName() string { return "sanitary_registrations" }
