package repository

import "gorm.io/gorm"

// Repository punto de entrada agregado de todos los repositorios
type Repository struct {
	Document      DocumentRepository
	ChangeControl ChangeControlRepository
	Label         LabelRepository
	Release       ReleaseRepository
	Recall        RecallRepository
	Batch         BatchRepository
	Product       ProductRepository
	Deviation     DeviationRepository
	SystemConfig  SystemConfigRepository
	Audit         AuditRepository
}

// NewRepository crea el agregado de repositorios
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Document:      NewDocumentRepo(db),
		ChangeControl: NewChangeControlRepo(db),
		Label:         NewLabelRepo(db),
		Release:       NewReleaseRepo(db),
		Recall:        NewRecallRepo(db),
		Batch:         NewBatchRepo(db),
		Product:       NewProductRepo(db),
		Deviation:     NewDeviationRepo(db),
		SystemConfig:  NewSystemConfigRepo(db),
		Audit:         NewAuditRepo(db),
	}
}
